package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/kernel"
)

// actorContextKey is the echo context key the auth middleware stores the
// resolved actor under.
const actorContextKey = "actor"

// Actor is the authenticated identity attached to each request. Handlers
// trust it; all credential work happens in the middleware.
type Actor struct {
	ID   kernel.UUID
	Role account.Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueToken creates a signed HS256 bearer token for the account.
// The subject carries the account ID and a custom claim carries the role.
func IssueToken(secret string, accountID kernel.UUID, role account.Role, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role.String(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(token, secret string) (Actor, error) {
	if strings.TrimSpace(secret) == "" {
		return Actor{}, errors.New("jwt secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &tokenClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Actor{}, err
	}
	if !parsed.Valid {
		return Actor{}, errors.New("invalid token")
	}

	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Actor{}, err
	}

	role, err := account.RoleFromString(claims.Role)
	if err != nil {
		return Actor{}, err
	}

	return Actor{ID: actorID, Role: role}, nil
}

func bearerToken(authorization string) (string, bool) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// NewAuthMiddleware returns an echo middleware that authenticates the
// Authorization bearer token and stores the resolved Actor on the context.
// Requests without a valid token get 401 before reaching any handler.
func NewAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "authentication required",
				})
			}

			actor, err := parseToken(token, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid credentials",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFromContext retrieves the Actor the auth middleware resolved.
func actorFromContext(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}
