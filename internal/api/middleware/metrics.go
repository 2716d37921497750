package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver 接收每個請求的結果
type RequestObserver interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Metrics 以路由樣板作為 path 標籤，避免路徑參數造成標籤爆量
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
