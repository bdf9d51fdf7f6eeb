// nti-admin/internal/handlers/role_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamagold/nti-admin/internal/middleware"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// ListRoles returns the four fixed roles with their resolved
// permission sets.
func (a *API) ListRoles(c *gin.Context) {
	out := make([]gin.H, 0, len(perm.FixedRoles))
	for _, role := range perm.FixedRoles {
		resolved := a.Perms.Resolve(c.Request.Context(), role)
		names := make([]string, 0, len(resolved))
		for name := range resolved {
			names = append(names, name)
		}
		out = append(out, gin.H{
			"name":        role,
			"permissions": names,
			"locked":      role == perm.RoleSuperadmin,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListPermissions returns the full permission catalog grouped by
// category, for the role editing screen.
func (a *API) ListPermissions(c *gin.Context) {
	grouped := make(map[string][]models.Permission)
	for _, p := range perm.Catalog() {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	c.JSON(http.StatusOK, grouped)
}

type updateRoleRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateRolePermissions replaces a role's permission set. Cached user
// identities are flushed so the change applies on the next request.
func (a *API) UpdateRolePermissions(c *gin.Context) {
	role := c.Param("name")

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.Perms.Update(c.Request.Context(), role, req.Permissions); err != nil {
		switch err {
		case perm.ErrSuperadminLocked:
			c.JSON(http.StatusForbidden, gin.H{"error": "the superadmin permission set cannot be changed"})
		case perm.ErrUnknownRole:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown role"})
		default:
			respondError(c, err)
		}
		return
	}

	a.invalidateUsersWithRole(c, role)

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivityPermission,
		"updated permissions for role "+role, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "permissions updated"})
}

// invalidateUsersWithRole drops the cached identity of every user
// holding the role so stale permission sets do not outlive the change.
func (a *API) invalidateUsersWithRole(c *gin.Context, role string) {
	if a.RDB == nil {
		return
	}
	var ids []uint
	a.DB.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", role).
		Pluck("users.id", &ids)
	for _, id := range ids {
		a.RDB.Del(c.Request.Context(), middleware.UserCacheKey(id))
	}
}
