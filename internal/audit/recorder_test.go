package audit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/internal/audit"
	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/internal/store/inmem"
	"github.com/hamagold/nti-admin/models"
)

func TestRecordAndEntries(t *testing.T) {
	ctx := context.Background()
	r := audit.NewRecorder(inmem.New(), nil)

	amount := decimal.NewFromInt(900_000)
	require.NoError(t, r.Record(ctx, models.ActivityPayment, "payment of 900,000 from NTI-NET-01-001", "admin", &amount))
	require.NoError(t, r.Record(ctx, models.ActivityEnrollment, "enrolled Aram Hassan", "admin", nil))

	entries, err := r.Entries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, models.ActivityEnrollment, entries[0].Category)
	assert.Nil(t, entries[0].Amount)
	assert.Equal(t, models.ActivityPayment, entries[1].Category)
	require.NotNil(t, entries[1].Amount)
	assert.True(t, entries[1].Amount.Equal(amount))
	assert.Equal(t, "admin", entries[1].Actor)
}

func TestCapHoldsNewestHundred(t *testing.T) {
	ctx := context.Background()
	r := audit.NewRecorder(inmem.New(), nil)

	for i := 1; i <= 150; i++ {
		require.NoError(t, r.Record(ctx, models.ActivitySetting, fmt.Sprintf("change %d", i), "admin", nil))
	}

	entries, err := r.Entries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, store.ActivityCap)

	// The survivors are the most recent hundred, newest first.
	assert.Equal(t, "change 150", entries[0].Description)
	assert.Equal(t, "change 51", entries[store.ActivityCap-1].Description)
}

func TestEntriesLimit(t *testing.T) {
	ctx := context.Background()
	r := audit.NewRecorder(inmem.New(), nil)

	for i := 1; i <= 30; i++ {
		require.NoError(t, r.Record(ctx, models.ActivitySetting, fmt.Sprintf("change %d", i), "admin", nil))
	}

	entries, err := r.Entries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, "change 30", entries[0].Description)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	r := audit.NewRecorder(inmem.New(), nil)

	require.NoError(t, r.Record(ctx, models.ActivityDelete, "removed expense", "admin", nil))
	require.NoError(t, r.Clear(ctx, "root"))

	entries, err := r.Entries(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
