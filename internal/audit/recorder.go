// Package audit keeps the bounded, append-only trail of mutating
// actions. Retention is a hard cap: the oldest entries beyond
// store.ActivityCap are dropped, not archived.
package audit

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

// Broadcaster pushes a freshly recorded entry to connected dashboard
// clients. A nil broadcaster disables the live feed.
type Broadcaster interface {
	BroadcastActivity(entry models.ActivityLog)
}

// Recorder appends audit entries and fans them out to the live feed.
type Recorder struct {
	store store.Store
	hub   Broadcaster
}

func NewRecorder(st store.Store, hub Broadcaster) *Recorder {
	return &Recorder{store: st, hub: hub}
}

// Entry builds an audit row without persisting it. Engine operations
// use this to include the entry in the same transaction as the writes
// it describes, then call Announce after commit.
func (r *Recorder) Entry(category, description, actor string, amount *decimal.Decimal) *models.ActivityLog {
	return &models.ActivityLog{
		Category:    category,
		Description: description,
		Actor:       actor,
		Amount:      amount,
	}
}

// Record persists a standalone entry and announces it.
func (r *Recorder) Record(ctx context.Context, category, description, actor string, amount *decimal.Decimal) error {
	entry := r.Entry(category, description, actor, amount)
	if err := r.store.AppendActivity(ctx, entry); err != nil {
		return err
	}
	r.Announce(*entry)
	return nil
}

// Announce pushes an already persisted entry to the live feed.
func (r *Recorder) Announce(entry models.ActivityLog) {
	if r.hub == nil {
		return
	}
	r.hub.BroadcastActivity(entry)
}

// Entries returns the newest entries first, at most limit of them.
func (r *Recorder) Entries(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return r.store.ActivityEntries(ctx, limit)
}

// Clear empties the log unconditionally. There is no undo.
func (r *Recorder) Clear(ctx context.Context, actor string) error {
	if err := r.store.ClearActivity(ctx); err != nil {
		return err
	}
	slog.Info("activity log cleared", "actor", actor)
	return nil
}
