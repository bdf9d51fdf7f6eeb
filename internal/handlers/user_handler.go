// nti-admin/internal/handlers/user_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamagold/nti-admin/internal/middleware"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// ListUsers returns all accounts with their roles.
func (a *API) ListUsers(c *gin.Context) {
	var users []models.User
	if err := a.DB.WithContext(c.Request.Context()).
		Preload("Role").
		Order("login").
		Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Login    string `json:"login" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser provisions an account. Creating another superadmin is
// not allowed; the bootstrap account stays the only one.
func (a *API) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == perm.RoleSuperadmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot create superadmin accounts"})
		return
	}

	var role models.Role
	if err := a.DB.WithContext(c.Request.Context()).Where("name = ?", req.Role).First(&role).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Login:        req.Login,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := a.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivityAccount,
		"created account "+user.Login+" with role "+req.Role, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	user.Role = &role
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
	Status   string `json:"status"`
}

// UpdateUser changes an account's role, password or status.
func (a *API) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.DB.WithContext(c.Request.Context()).Preload("Role").First(&user, id).Error; err != nil {
		respondError(c, err)
		return
	}
	if user.Role != nil && user.Role.Name == perm.RoleSuperadmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "the superadmin account cannot be modified"})
		return
	}

	updates := map[string]interface{}{}
	if req.Role != "" {
		if req.Role == perm.RoleSuperadmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot assign the superadmin role"})
			return
		}
		var role models.Role
		if err := a.DB.WithContext(c.Request.Context()).Where("name = ?", req.Role).First(&role).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		updates["role_id"] = role.ID
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		updates["password_hash"] = string(hash)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := a.DB.WithContext(c.Request.Context()).Model(&user).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
		if a.RDB != nil {
			a.RDB.Del(c.Request.Context(), middleware.UserCacheKey(user.ID))
		}
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivityAccount,
		"updated account "+user.Login, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account updated"})
}

// DeleteUser removes an account.
func (a *API) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var user models.User
	if err := a.DB.WithContext(c.Request.Context()).Preload("Role").First(&user, id).Error; err != nil {
		respondError(c, err)
		return
	}
	if user.Role != nil && user.Role.Name == perm.RoleSuperadmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "the superadmin account cannot be deleted"})
		return
	}

	if err := a.DB.WithContext(c.Request.Context()).Delete(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	if a.RDB != nil {
		a.RDB.Del(c.Request.Context(), middleware.UserCacheKey(user.ID))
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivityAccount,
		"deleted account "+user.Login, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
