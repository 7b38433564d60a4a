package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamelth/ocr-to-markdown/internal/domain"
)

// BodySizeLimit rejects requests whose body exceeds maxBytes. Uploads with an
// honest Content-Length are refused before the body is read; MaxBytesReader
// backstops chunked requests that lie about their size.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, domain.OcrFailure{
				Success: false,
				Error:   "file too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
