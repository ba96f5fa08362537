// middleware/admin_middleware.go
package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// AdminTokenHeader carries the shared secret in static mode
const AdminTokenHeader = "X-Admin-Token"

// Authorizer decides whether a request may use the admin endpoints.
// Implementations stay opaque to the handlers so the credential scheme can be
// swapped without touching workflow code.
type Authorizer interface {
	Authorize(c echo.Context) bool
}

// StaticTokenAuthorizer compares the admin token header against a single
// process-wide shared secret.
type StaticTokenAuthorizer struct {
	secret string
}

// NewStaticTokenAuthorizer creates an authorizer around the given secret
func NewStaticTokenAuthorizer(secret string) *StaticTokenAuthorizer {
	return &StaticTokenAuthorizer{secret: secret}
}

func (a *StaticTokenAuthorizer) Authorize(c echo.Context) bool {
	if a.secret == "" {
		return false
	}
	token := c.Request().Header.Get(AdminTokenHeader)
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.secret)) == 1
}

// AdminClaims is the token payload in JWT mode
type AdminClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// JWTAuthorizer accepts bearer tokens signed with the configured secret
type JWTAuthorizer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTAuthorizer creates an authorizer around JWT_SECRET
func NewJWTAuthorizer(secret string) *JWTAuthorizer {
	return &JWTAuthorizer{
		secret: []byte(secret),
		ttl:    12 * time.Hour,
	}
}

// IssueToken signs a short-lived admin token
func (a *JWTAuthorizer) IssueToken() (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("JWT_SECRET environment variable is required")
	}
	claims := &AdminClaims{
		Role: "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(a.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *JWTAuthorizer) Authorize(c echo.Context) bool {
	if len(a.secret) == 0 {
		return false
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*AdminClaims)
	return ok && claims.Role == "admin"
}

// NewAuthorizerFromEnv picks the admin credential scheme from ADMIN_AUTH_MODE
func NewAuthorizerFromEnv() Authorizer {
	if os.Getenv("ADMIN_AUTH_MODE") == "jwt" {
		return NewJWTAuthorizer(os.Getenv("JWT_SECRET"))
	}
	return NewStaticTokenAuthorizer(os.Getenv("ADMIN_SECRET"))
}

// RequireAdmin gates a route group behind the authorizer. Failures get a
// uniform response regardless of cause.
func RequireAdmin(a Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Authorize(c) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "not authorized",
				})
			}
			return next(c)
		}
	}
}
