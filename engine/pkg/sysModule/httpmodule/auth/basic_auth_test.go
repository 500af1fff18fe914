package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(accounts map[string]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BasicAuth(accounts))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(gin.AuthUserKey))
	})
	return r
}

func do(r http.Handler, user, password string, withAuth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withAuth {
		req.SetBasicAuth(user, password)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBasicAuth(t *testing.T) {
	r := newRouter(map[string]string{"admin": "secret", "ops": "p:w"})

	rec := do(r, "admin", "secret", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())

	assert.Equal(t, http.StatusOK, do(r, "ops", "p:w", true).Code)

	rec = do(r, "", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	assert.Equal(t, http.StatusUnauthorized, do(r, "admin", "wrong", true).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "nobody", "secret", true).Code)
}

func TestBasicAuth_NoAccounts(t *testing.T) {
	r := newRouter(nil)
	assert.Equal(t, http.StatusUnauthorized, do(r, "admin", "secret", true).Code)

	r = newRouter(map[string]string{"": "secret"})
	assert.Equal(t, http.StatusUnauthorized, do(r, "", "secret", true).Code)
}
