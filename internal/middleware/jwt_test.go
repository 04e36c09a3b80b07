package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleCustomer, 15)
	require.NoError(t, err)

	rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	// JSON numbers decode to float64; handlers normalize via getUserID.
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, model.RoleCustomer, c.Get("role"))
}

func TestJWTAuthRejects(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, JWTAuth(testSecret), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	tok, err := utils.NewAccessToken("other-secret", 42, model.RoleCustomer, 15)
	require.NoError(t, err)
	rec, _ = doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	// No token: request goes through anonymously.
	rec, c := doRequest(t, OptionalJWTAuth(testSecret), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))

	// Garbage token: still anonymous, never rejected.
	rec, c = doRequest(t, OptionalJWTAuth(testSecret), "Bearer junk")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))

	// Valid token: identity is attached.
	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleAdmin, 15)
	require.NoError(t, err)
	rec, c = doRequest(t, OptionalJWTAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, model.RoleAdmin, c.Get("role"))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", model.RoleAdmin)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", model.RoleCustomer)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
