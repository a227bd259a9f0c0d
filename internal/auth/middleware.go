package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/adagio/visitor-lookup/internal/domain"
	apperrors "github.com/adagio/visitor-lookup/pkg/util/errorutil"
)

const bearerPrefix = "Bearer "

// TokenProvider supplies the currently valid API tokens.
type TokenProvider interface {
	Tokens(ctx context.Context) domain.TokenSet
}

// AuthMiddleware validates static bearer tokens against the token provider.
type AuthMiddleware struct {
	tokens TokenProvider
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenProvider, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Authorize reports whether header is "Bearer <token>" for a known token.
// The token set is fetched fresh on every call.
func (m *AuthMiddleware) Authorize(ctx context.Context, header string) bool {
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return false
	}
	return m.tokens.Tokens(ctx).Contains(token, constantTimeEqual)
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("API key required in Authorization header")
	}
	if !m.Authorize(c.UserContext(), authHeader) {
		m.logger.Warn("rejected API key", zap.String("path", c.Path()), zap.String("ip", c.IP()))
		return apperrors.NewUnauthorized("Invalid API key")
	}
	return c.Next()
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
