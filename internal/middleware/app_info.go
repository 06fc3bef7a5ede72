package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo exposes the service name and version to handlers and in the X-App-Version header
// AppInfo 注入应用名称与版本
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Header("X-App-Version", version)

		c.Next()
	}
}
