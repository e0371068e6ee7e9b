package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, status int, err error) ErrorResponse {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	resp, terr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, terr)
	defer resp.Body.Close()
	assert.Equal(t, status, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRespondWithError_Details(t *testing.T) {
	cause := errors.New("token signature is invalid: signature is invalid")

	tests := []struct {
		name        string
		err         error
		wantDetails string
	}{
		{"invalid token hides cause", &AppError{Code: CodeInvalidToken, Message: "Invalid token", Err: cause}, ""},
		{"expired token hides cause", &AppError{Code: CodeTokenExpired, Message: "Token has expired", Err: cause}, ""},
		{"internal hides cause", NewInternalError(cause), ""},
		{"validation shows cause", &AppError{Code: CodeValidation, Message: "Invalid input", Err: errors.New("email: must be valid")}, "email: must be valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := respond(t, http.StatusBadRequest, tt.err)
			assert.Equal(t, CodeOf(tt.err), body.Code)
			assert.Equal(t, tt.wantDetails, body.Details)
		})
	}
}
