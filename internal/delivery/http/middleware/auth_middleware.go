package middleware

import (
	"errors"
	"strings"

	"talentflow/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxOperatorIDKey = "operator_id"
	CtxEmailKey      = "email"
	CtxRoleKey       = "role"
)

// OperatorMiddleware attaches the operator identity parsed from the bearer
// token. With no jwt service configured it passes everything through,
// leaving the locals unset.
type OperatorMiddleware struct {
	jwt jwt.Service
}

func NewOperatorMiddleware(jwtSvc jwt.Service) *OperatorMiddleware {
	return &OperatorMiddleware{jwt: jwtSvc}
}

func (m *OperatorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.jwt == nil {
			return c.Next()
		}

		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxOperatorIDKey, claims.OperatorID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
