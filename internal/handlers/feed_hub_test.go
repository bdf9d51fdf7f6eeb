package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/models"
)

// Entries recorded while nothing is draining the hub queue up instead
// of being dropped.
func TestBroadcastQueuesWithoutReader(t *testing.T) {
	h := NewFeedHub()

	h.BroadcastActivity(models.ActivityLog{Category: models.ActivityPayment, Description: "first"})
	h.BroadcastActivity(models.ActivityLog{Category: models.ActivityEnrollment, Description: "second"})
	assert.Equal(t, 2, len(h.broadcast))

	var msg feedMessage
	require.NoError(t, json.Unmarshal(<-h.broadcast, &msg))
	assert.Equal(t, "activity", msg.Type)
	assert.Equal(t, "first", msg.Payload.Description)

	require.NoError(t, json.Unmarshal(<-h.broadcast, &msg))
	assert.Equal(t, "second", msg.Payload.Description)
}
