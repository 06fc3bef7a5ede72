package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSetSessionCookie(t *testing.T) {
	c, w := newTestContext()
	SetSessionCookie(c, CookieConfig{MaxAge: 7 * 24 * time.Hour, Secure: true}, "tok")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, DefaultCookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 7*24*60*60, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	c, w := newTestContext()
	ClearSessionCookie(c, CookieConfig{Name: "Custom"})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "Custom", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestSessionToken(t *testing.T) {
	c, _ := newTestContext()
	assert.Equal(t, "", SessionToken(c, CookieConfig{}))

	c.Request.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "abc"})
	assert.Equal(t, "abc", SessionToken(c, CookieConfig{}))
}
