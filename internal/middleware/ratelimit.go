package middleware

import (
	"fmt"
	"time"

	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	loginRateLimitMax    = 10
	loginRateLimitWindow = time.Minute
)

// LoginRateLimit returns a middleware that caps login attempts per client IP
// in a fixed window, to slow down credential guessing. Redis errors let the
// request through; the bcrypt check is the actual gate.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(loginRateLimitWindow.Seconds())
		key := fmt.Sprintf("etx:login_rate:%s:%d", ip, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, loginRateLimitWindow+time.Second)
		}
		if count > loginRateLimitMax {
			response.TooManyRequests(c, "登入嘗試過於頻繁，請稍後再試。")
			return
		}

		c.Next()
	}
}
