package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip encoded request bodies so handlers and the
// binding layer always see plain payloads.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		gz, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer gz.Close()
		defer body.Close()

		c.Request.Body = io.NopCloser(gz)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
