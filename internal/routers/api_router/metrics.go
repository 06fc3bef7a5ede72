package api_router

import (
	"encoding/json"
	"expvar"

	"github.com/gin-gonic/gin"
)

// Expvar 导出 expvar 运行时指标（memstats, cmdline 以及注册的自定义变量）
func Expvar(c *gin.Context) {
	vars := make(map[string]json.RawMessage)
	expvar.Do(func(kv expvar.KeyValue) {
		vars[kv.Key] = json.RawMessage(kv.Value.String())
	})
	c.JSON(200, vars)
}
