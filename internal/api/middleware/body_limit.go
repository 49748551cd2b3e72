package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workday-attendance/backend/pkg/response"
)

// BodyLimit 请求体大小限制
// 声明的 Content-Length 超限时直接返回 413；未声明长度的请求在读取时截断，
// 后续表单绑定会因读取失败返回 400
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
