// nti-admin/internal/handlers/auth_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamagold/nti-admin/models"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and issues a signed token, both as the
// auth_token cookie and in the response body for API clients.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	var user models.User
	if err := a.DB.WithContext(c.Request.Context()).Preload("Role").Where("login = ?", req.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
		return
	}
	if user.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is disabled"})
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.JWTKey)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}
	slog.Info("user logged in", "login", user.Login, "role", role)

	c.SetCookie("auth_token", signed, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user": gin.H{
			"id":       user.ID,
			"login":    user.Login,
			"fullName": user.FullName,
			"role":     role,
		},
	})
}

// Logout clears the auth cookie.
func (a *API) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated identity together with its resolved
// permission set, which the frontend uses to hide unavailable actions.
func (a *API) Me(c *gin.Context) {
	role := c.GetString("role")
	resolved := a.Perms.Resolve(c.Request.Context(), role)
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          c.GetUint("user_id"),
		"login":       c.GetString("login"),
		"fullName":    c.GetString("userName"),
		"role":        role,
		"permissions": names,
	})
}
