// Package templates встраивает HTML-шаблоны панели в бинарник.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
