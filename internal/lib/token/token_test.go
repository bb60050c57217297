package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barberpro-web/internal/lib/token"
)

func signedToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote_secret"))
	require.NoError(t, err)
	return tokenStr
}

func TestExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		tokenStr string
		want     bool
	}{
		{
			name:     "expired token",
			tokenStr: signedToken(t, &past),
			want:     true,
		},
		{
			name:     "live token",
			tokenStr: signedToken(t, &future),
			want:     false,
		},
		{
			name:     "token without exp claim",
			tokenStr: signedToken(t, nil),
			want:     false,
		},
		{
			name:     "opaque non-jwt token",
			tokenStr: "not-a-jwt-at-all",
			want:     false,
		},
		{
			name:     "empty token",
			tokenStr: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, token.Expired(tt.tokenStr, now))
		})
	}
}
