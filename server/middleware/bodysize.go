package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/meetscribe/util"
)

const defaultMaxBodySize = 200 * 1024 * 1024 // 200MB, sized for audio uploads

// BodySizeLimit caps the request body at the given size string (e.g.
// "200MB", "512KB"). Oversized bodies fail with 413 when read.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
