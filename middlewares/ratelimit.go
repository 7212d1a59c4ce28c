package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"vitascreen/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware caps requests per client IP within a fixed window.
// When redis is not configured the middleware passes everything through, so
// a missing cache never takes the endpoint down.
func RateLimitMiddleware(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ratelimit.Enabled() {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate:%s:%s", name, c.ClientIP())
		allowed, err := ratelimit.Allow(key, max, window)
		if err != nil {
			log.Printf("Rate limit check failed for %s: %v", key, err)
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
