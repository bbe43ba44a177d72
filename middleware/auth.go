package middleware

import (
	"context"
	"strings"

	"homestay/constants"
	"homestay/errors"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

// Các key lưu trong gin context
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextToken    = "accessToken"
	contextActor    = "actor"
)

// Authenticator xác minh access token, cài đặt bởi services.AuthService
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Actor, error)
}

// AuthMiddleware xử lý authentication bằng header Authorization: Bearer <token>
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, errors.ErrMissingToken)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" || tokenString == authHeader {
			response.Fail(c, errors.ErrInvalidToken)
			return
		}

		actor, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.Fail(c, err)
			return
		}

		// Lưu thông tin user vào context
		c.Set(ContextUserID, actor.ID)
		c.Set(ContextUserRole, actor.Role)
		c.Set(ContextToken, tokenString)
		c.Set(contextActor, actor)
		c.Next()
	}
}

// RequireCapability chặn request nếu role hiện tại không có quyền c
func RequireCapability(capability constants.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c)
			return
		}
		if !actor.Can(capability) {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// CurrentActor lấy user đã xác thực từ context
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	v, exists := c.Get(contextActor)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := v.(services.Actor)
	return actor, ok
}
