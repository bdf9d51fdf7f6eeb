// nti-admin/internal/handlers/activity_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListActivity returns the audit trail, newest first. The trail is
// capped, so the whole of it fits in one response.
func (a *API) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := a.Recorder.Entries(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if category := c.Query("category"); category != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	c.JSON(http.StatusOK, entries)
}

// ClearActivity empties the audit trail.
func (a *API) ClearActivity(c *gin.Context) {
	actor := actorFrom(c)
	if err := a.Recorder.Clear(c.Request.Context(), actor.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity log cleared"})
}
