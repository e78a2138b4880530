package middleware

import (
	"crypto/subtle"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware 机器人等服务端调用方的静态密钥校验
func APIKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" || cfg.API.Key == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(cfg.API.Key)) != 1 {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthMiddleware 管理后台的 JWT 校验
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware 记录用户最近活跃时间，路径里带 :userId 的路由适用
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := util.MustParseUint(c.Param("userId")); userID != 0 {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastSeen(userID)
		}
		c.Next()
	}
}
