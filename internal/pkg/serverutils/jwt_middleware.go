// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bible-study-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalsUID       = "uid"
	DefaultTokenTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 access tokens bound to a session uid.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(uid string) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (i *TokenIssuer) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}

// SessionReader is the slice of the session store the guard needs.
type SessionReader interface {
	GetCurrentSession(ctx context.Context) *entity.Session
}

// JwtMiddleware requires a bearer token whose uid is the currently stored
// session; a token outliving a sign-out is refused.
func JwtMiddleware(issuer *TokenIssuer, sessions SessionReader) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}

		uid, err := issuer.Parse(authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		current := sessions.GetCurrentSession(ctx.UserContext())
		if current == nil || current.Uid != uid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Session expired"))
		}

		ctx.Locals(LocalsUID, uid)
		return ctx.Next()
	}
}
