package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig session cookie attributes
// CookieConfig 会话 Cookie 属性
type CookieConfig struct {
	Name   string
	Path   string
	MaxAge time.Duration
	Secure bool
}

// DefaultCookieName 默认 Cookie 名称
const DefaultCookieName = "NoteApp"

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func (c CookieConfig) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

// SetSessionCookie writes the token as an http-only, SameSite=Strict cookie
// SetSessionCookie 写入会话 Cookie
func SetSessionCookie(ctx *gin.Context, cfg CookieConfig, token string) {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultTokenExpiry
	}
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(cfg.name(), token, int(maxAge/time.Second), cfg.path(), "", cfg.Secure, true)
}

// ClearSessionCookie deletes the session cookie
// ClearSessionCookie 删除会话 Cookie
func ClearSessionCookie(ctx *gin.Context, cfg CookieConfig) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(cfg.name(), "", -1, cfg.path(), "", cfg.Secure, true)
}

// SessionToken reads the raw token from the session cookie, "" when absent
// SessionToken 读取 Cookie 中的 Token
func SessionToken(ctx *gin.Context, cfg CookieConfig) string {
	token, err := ctx.Cookie(cfg.name())
	if err != nil {
		return ""
	}
	return token
}
