// Package limiter 基于令牌桶的接口限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face rate limiter used by middleware.RateLimiter
// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter holds one token bucket per key
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule bucket refilled with Quantum tokens every FillInterval, holding at most Capacity
// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string
	FillInterval time.Duration
	Capacity     int64
	Quantum      int64
}
