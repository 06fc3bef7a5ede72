package middleware

import (
	"math"
	"strconv"

	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter rejects requests whose bucket is empty with 429 and a Retry-After hint.
// Paths without a bucket are not limited.
// RateLimiter 令牌桶限流，无对应桶的路径不限流
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if !ok || bucket.TakeAvailable(1) > 0 {
			c.Next()
			return
		}

		// 补充一个令牌所需的秒数，向上取整
		retry := 1.0
		if rate := bucket.Rate(); rate > 0 {
			retry = math.Max(1, math.Ceil(1/rate))
		}
		c.Header("Retry-After", strconv.Itoa(int(retry)))
		app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
		c.Abort()
	}
}
