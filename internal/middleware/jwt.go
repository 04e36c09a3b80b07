package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// parseBearer extracts and validates the Bearer token from the request,
// returning its claims.  The boolean result is false when the header is
// absent, malformed, signed with an unexpected method, or expired.
func parseBearer(c echo.Context, secret string) (jwt.MapClaims, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject and role claims into the request context.  The
// provided secret must match the one used when issuing tokens.  This
// middleware should wrap protected routes so that handlers can access
// authenticated user information via `c.Get("user_id")` and `c.Get("role")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseBearer(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing or invalid bearer token"})
			}
			// Store the subject (user ID) and role claims in the context.
			// Handlers and downstream middleware access these via c.Get();
			// type assertions are left to the consumers.
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// OptionalJWTAuth is like JWTAuth but never rejects.  A valid token
// injects user_id/role as usual; anything else leaves the request
// anonymous.  The seat availability endpoint uses it so signed-in
// viewers see their own holds while guests still get the seat map.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := parseBearer(c, secret); ok {
				c.Set("user_id", claims["sub"])
				c.Set("role", claims["role"])
			}
			return next(c)
		}
	}
}
