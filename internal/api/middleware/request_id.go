package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shiftdesk/pkg/requestid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 外部传入的 Request-ID 最大长度
const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 优先沿用调用方的 X-Request-ID；缺失、过长或含不可见字符时生成 UUID。
// ID 同时写入 gin.Context、请求 context 与响应头，上游 API 调用会透传该 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestid.Header)
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Request = c.Request.WithContext(requestid.With(c.Request.Context(), rid))
		c.Header(requestid.Header, rid)

		c.Next()
	}
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}
