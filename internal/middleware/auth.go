package middleware

import (
	"net/http"
	"strings"

	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		userRep := &redis.UserRepository{}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		// 和 redis 里的会话 token 比对，旧会话被新登录挤掉
		originToken, err := userRep.GetUserToken(claims.UserID)
		if err != nil || originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account has been logged in elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后顺延过期时间
		if err = userRep.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID 取中间件注入的用户ID
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
