// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"context"

	apperrors "antifraud/internal/errors"
	"antifraud/internal/logging"
	"antifraud/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"go.uber.org/zap"
)

const (
	// Realm announced in WWW-Authenticate challenges.
	Realm = "antifraud"

	usernameKey = "username"
)

// CredentialVerifier checks a username/password pair against the account
// directory.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) bool
}

// AuthMiddleware gates routes behind HTTP Basic credentials.
type AuthMiddleware struct {
	verifier CredentialVerifier
	logger   *logging.Logger
}

func NewAuthMiddleware(verifier CredentialVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logging.Global().Named("auth"),
	}
}

// Handler rejects requests without valid credentials with 401 and a Basic
// challenge. On success the username is stored in the request locals.
// Verification runs under the request's user context.
func (m *AuthMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// basicauth's Authorizer has no access to the request, so the gate is
		// built per request around its context.
		return m.gate(c.UserContext())(c)
	}
}

func (m *AuthMiddleware) gate(ctx context.Context) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm:           Realm,
		ContextUsername: usernameKey,
		Authorizer: func(username, password string) bool {
			return m.verifier.Verify(ctx, username, password)
		},
		Unauthorized: m.unauthorized,
	})
}

func (m *AuthMiddleware) unauthorized(c *fiber.Ctx) error {
	m.logger.Debug("rejected credentials",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+Realm+`"`)
	return utils.RespondError(c, apperrors.ErrInvalidCredentials)
}

// UsernameFromContext returns the authenticated username, or "" on
// unprotected routes.
func UsernameFromContext(c *fiber.Ctx) string {
	username, _ := c.Locals(usernameKey).(string)
	return username
}
