package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// 上下文键
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// JWTAuth 认证中间件
// 从 Authorization 头解析 Bearer 令牌，验证通过后把用户信息放入上下文。
func JWTAuth(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}
		claims, err := tokenService.ValidateToken(c.Request.Context(), token)
		if err != nil || claims.Type != service.TokenTypeAccess {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth 可选认证中间件
// 带有效令牌时填充上下文，缺失或无效时放行匿名请求。
func OptionalJWTAuth(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := tokenService.ValidateToken(c.Request.Context(), token)
		if err != nil || claims.Type != service.TokenTypeAccess {
			c.Next()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin 管理员校验中间件，必须串在 JWTAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get(CtxRole); role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Code:  response.CodeForbidden,
				Msg:   "无权访问该资源",
				Error: "无权访问该资源",
			})
			return
		}
		c.Next()
	}
}

// CurrentUserID 从上下文取当前用户 ID
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Code:  response.CodeInvalidToken,
		Msg:   "令牌无效或已过期",
		Error: "令牌无效或已过期",
	})
}
