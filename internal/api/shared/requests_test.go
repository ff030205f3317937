package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

type petRequest struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
}

type selfValidating struct {
	Value string `json:"value"`
}

func (s *selfValidating) Validate() error {
	if s.Value != "ok" {
		return domain.NewValidationError("value", "must be ok", domain.ErrValidation)
	}
	return nil
}

func decodeBody(body string, v any) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return shared.DecodeJSON(httptest.NewRecorder(), req, v)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Rex","email":"a@b.co"}`},
		{name: "unknown field", body: `{"name":"Rex","isAdmin":true}`, wantErr: true},
		{name: "trailing data", body: `{"name":"Rex"}{"name":"Misu"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
		{name: "wrong type", body: `{"name":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req petRequest
			err := decodeBody(tt.body, &req)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Rex", req.Name)
				return
			}
			assert.ErrorIs(t, err, shared.ErrInvalidBody)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", shared.MaxJSONBodyBytes) + `"}`
	var req petRequest
	assert.ErrorIs(t, decodeBody(body, &req), shared.ErrInvalidBody)
}

func TestValidateRequest(t *testing.T) {
	t.Run("struct tags", func(t *testing.T) {
		err := shared.ValidateRequest(&petRequest{Name: " ", Email: "a@b.co"})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
		assert.ErrorIs(t, err, domain.ErrEmptyField)

		err = shared.ValidateRequest(&petRequest{Name: "Rex", Email: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		assert.NoError(t, shared.ValidateRequest(&petRequest{Name: "Rex", Email: "a@b.co"}))
	})

	t.Run("Validate method wins", func(t *testing.T) {
		assert.NoError(t, shared.ValidateRequest(&selfValidating{Value: "ok"}))
		assert.EqualError(t, shared.ValidateRequest(&selfValidating{Value: "no"}), "value must be ok")
	})
}
