package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

func testAuth() *Auth { return NewAuth("test-secret", time.Hour) }

func contextWithToken(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestIssueAndRequireRoundTrip(t *testing.T) {
	a := testAuth()
	token, err := a.IssueToken(&model.Auth{AuthID: 42, Email: "jamie@example.com", Role: "user"})
	require.NoError(t, err)

	c, _ := contextWithToken(t, token)
	called := false
	h := a.Require()(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		require.NotNil(t, claims)
		assert.Equal(t, int64(42), claims.AuthID)
		assert.Equal(t, "jamie@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
}

func TestRequireRejectsForeignSecret(t *testing.T) {
	token, err := NewAuth("other-secret", time.Hour).IssueToken(&model.Auth{AuthID: 1, Role: "user"})
	require.NoError(t, err)

	c, rec := contextWithToken(t, token)
	h := testAuth().Require()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRejectsMissingToken(t *testing.T) {
	c, rec := contextWithToken(t, "")
	h := testAuth().Require()(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	a := testAuth()
	cases := map[string]int{
		"admin": http.StatusOK,
		"user":  http.StatusForbidden,
	}
	for role, want := range cases {
		token, err := a.IssueToken(&model.Auth{AuthID: 1, Role: role})
		require.NoError(t, err)

		c, rec := contextWithToken(t, token)
		h := a.Require()(AdminOnly(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))
		require.NoError(t, h(c))
		assert.Equal(t, want, rec.Code, role)
	}
}

func TestOptionalClaims(t *testing.T) {
	a := testAuth()

	c, _ := contextWithToken(t, "")
	assert.Nil(t, a.OptionalClaims(c), "no header means anonymous")

	c, _ = contextWithToken(t, "garbage")
	assert.Nil(t, a.OptionalClaims(c), "a bad token means anonymous, not an error")

	token, err := a.IssueToken(&model.Auth{AuthID: 9, Role: "user"})
	require.NoError(t, err)
	c, _ = contextWithToken(t, token)
	claims := a.OptionalClaims(c)
	require.NotNil(t, claims)
	assert.Equal(t, int64(9), claims.AuthID)
}
