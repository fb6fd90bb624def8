package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	session *entity.Session
}

func (s stubSessions) GetCurrentSession(ctx context.Context) *entity.Session {
	return s.session
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, expiresAt, err := issuer.Issue("12345abcde")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	uid, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "12345abcde", uid)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenIssuer("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, _, err := past.Issue("12345abcde")
		require.NoError(t, err)

		_, err = issuer.Parse(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJwtMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	valid, _, err := issuer.Issue("12345abcde")
	require.NoError(t, err)
	stranger, _, err := issuer.Issue("someone-else")
	require.NoError(t, err)

	signedIn := stubSessions{session: &entity.Session{Uid: "12345abcde"}}

	tests := []struct {
		name     string
		header   string
		sessions SessionReader
		status   int
	}{
		{name: "missing header", header: "", sessions: signedIn, status: 401},
		{name: "not bearer", header: "Basic abc", sessions: signedIn, status: 401},
		{name: "invalid token", header: "Bearer nope", sessions: signedIn, status: 401},
		{name: "signed out since issue", header: "Bearer " + valid, sessions: stubSessions{}, status: 401},
		{name: "uid mismatch", header: "Bearer " + stranger, sessions: signedIn, status: 401},
		{name: "ok", header: "Bearer " + valid, sessions: signedIn, status: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/guarded", JwtMiddleware(issuer, tt.sessions), func(ctx *fiber.Ctx) error {
				return ctx.JSON(SuccessResponse("ok", ctx.Locals(LocalsUID)))
			})

			req := httptest.NewRequest("GET", "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status == 200, body.Success)
			if tt.status == 200 {
				assert.Equal(t, "12345abcde", body.Data)
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "Invalid request body") })
	app.Get("/plain", func(ctx *fiber.Ctx) error { return errors.New("database exploded") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/fiber", status: 400, message: "Invalid request body"},
		{path: "/plain", status: 500, message: "Ocurrió un error inesperado."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
