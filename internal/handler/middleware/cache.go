package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"

	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// cacheWriter captures the response body while forwarding to the client.
type cacheWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKeyFrom(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return fmt.Sprintf("respcache:%x", sum[:])
}

// NewResponseCache serves repeated catalog reads from Redis for a short TTL.
// A nil client (Redis not configured) disables caching entirely, the route
// just hits the database every time.
func NewResponseCache(cfg config.RedisConfig, rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKeyFrom(c)

		if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Header("X-Cache", "MISS")

		c.Next()

		if w.Status() == http.StatusOK && w.buf.Len() > 0 {
			// Best effort: a failed cache write never fails the request.
			_ = rdb.SetEx(ctx, key, w.buf.Bytes(), cfg.CacheTTL).Err()
		}
	}
}
