package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barberpro-web/internal/web/response"
)

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]int{"count": 2})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("invalid request body")
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email string  `validate:"required,email"`
		Name  string  `validate:"required"`
		Price float64 `validate:"gt=0"`
	}

	tests := []struct {
		name string
		in   form
		want string
	}{
		{
			name: "missing required fields",
			in:   form{Price: 10},
			want: "field Email is a required field, field Name is a required field",
		},
		{
			name: "malformed email",
			in:   form{Email: "not-an-email", Name: "Corte", Price: 10},
			want: "field Email must be a valid email",
		},
		{
			name: "non-positive price",
			in:   form{Email: "a@b.com", Name: "Corte"},
			want: "field Price must be greater than 0",
		},
	}

	validate := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			require.Error(t, err)

			resp := response.ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}
