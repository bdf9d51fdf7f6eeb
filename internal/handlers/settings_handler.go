// nti-admin/internal/handlers/settings_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/hamagold/nti-admin/internal/notify"
	"github.com/hamagold/nti-admin/models"
)

// GetSettings returns the editable settings with effective values.
func (a *API) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notificationDays": a.Deriver.ThresholdDays(c.Request.Context()),
		"defaultDays":      notify.DefaultThresholdDays,
	})
}

type updateSettingsRequest struct {
	NotificationDays int `json:"notificationDays" binding:"required,min=1"`
}

// UpdateSettings stores the overdue notification threshold.
func (a *API) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting := models.Setting{
		Key:   models.SettingNotificationDays,
		Value: strconv.Itoa(req.NotificationDays),
	}
	err := a.DB.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		respondError(c, err)
		return
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivitySetting,
		"set notification threshold to "+setting.Value+" days", actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notificationDays": req.NotificationDays})
}
