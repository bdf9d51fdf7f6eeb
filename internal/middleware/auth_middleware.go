// nti-admin/internal/middleware/auth_middleware.go

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// CachedUserData is the per-user payload kept in Redis so that request
// authentication does not hit the database on every call.
type CachedUserData struct {
	UserID   uint   `json:"user_id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

const userCacheTTL = 10 * time.Minute

// UserCacheKey is the Redis key holding a user's cached identity.
// Handlers that change a user's role or delete the user remove this
// key so the change takes effect on the next request.
func UserCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

// Auth authenticates the request from the auth_token cookie or a
// Bearer header and places the resolved identity in the gin context
// under user_id, login, userName and role.
func Auth(db *gorm.DB, rdb *redis.Client, jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			handleAuthError(c, "invalid user ID in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := UserCacheKey(userID)
		if rdb != nil {
			cached, err := rdb.Get(c.Request.Context(), cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cached), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("failed to unmarshal cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("redis GET failed", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := db.WithContext(c.Request.Context()).Preload("Role").First(&dbUser, userID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "user from token not found")
			return
		}

		userData := CachedUserData{
			UserID:   dbUser.ID,
			Login:    dbUser.Login,
			FullName: dbUser.FullName,
		}
		if dbUser.Role != nil {
			userData.Role = dbUser.Role.Name
		}

		if rdb != nil {
			if jsonData, err := json.Marshal(userData); err == nil {
				if err := rdb.Set(c.Request.Context(), cacheKey, jsonData, userCacheTTL).Err(); err != nil {
					slog.Error("failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &userData)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("login", userData.Login)
	c.Set("userName", userData.FullName)
	c.Set("role", userData.Role)
	c.Next()
}

// RequirePermission gates a route group on one permission name. The
// check goes through the resolver, so role overrides and the
// superadmin short-circuit apply uniformly.
func RequirePermission(resolver *perm.Resolver, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !resolver.Has(c.Request.Context(), role, permission) {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func handleAuthError(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/login")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	}
	c.Abort()
}
