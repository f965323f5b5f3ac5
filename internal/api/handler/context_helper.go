package handler

import (
	"github.com/gin-gonic/gin"

	"shiftdesk/internal/api/middleware"
	"shiftdesk/internal/model"
	"shiftdesk/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetCredential 由已验证的 Bearer Token 构造调用方凭证
func MustGetCredential(c *gin.Context) (model.Credential, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return model.Credential{}, false
	}
	token := c.GetString(middleware.CtxAccessToken)
	if token == "" {
		response.Unauthorized(c, 10002, "未认证")
		return model.Credential{}, false
	}
	return model.Credential{Token: token, Subject: userID}, true
}
