package middleware

import (
	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// SessionAuth 会话 Cookie 认证中间件
// A missing cookie is ErrorNotUserAuthToken, an unverifiable one ErrorInvalidUserAuthToken (both 401).
func SessionAuth(tm app.TokenManager, cookie app.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := app.SessionToken(c, cookie)
		if token == "" {
			app.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, ok := tm.Verify(token)
		if !ok {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Set(app.UserTokenKey, user)
		c.Next()
	}
}
