// Package ledger owns every financial state transition of the
// institute: tuition payments, year promotion, staff salaries and
// expenses, plus the derived aggregates. All operations authorize the
// acting role before touching state and write their audit entry in the
// same transaction as the data they change.
package ledger

import (
	"context"
	"fmt"

	"github.com/hamagold/nti-admin/internal/audit"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/internal/store"
)

// Engine is the single entry point for ledger mutations. It is
// constructed once and injected wherever operations are invoked; it
// keeps no state of its own beyond its collaborators.
type Engine struct {
	store    store.Store
	perms    *perm.Resolver
	recorder *audit.Recorder
}

func NewEngine(st store.Store, perms *perm.Resolver, recorder *audit.Recorder) *Engine {
	return &Engine{store: st, perms: perms, recorder: recorder}
}

// authorize fails closed: callers may have checked the permission at
// the route already, the engine verifies it again regardless.
func (e *Engine) authorize(ctx context.Context, actor Actor, permission string) error {
	if !e.perms.Has(ctx, actor.Role, permission) {
		return fmt.Errorf("%w: %s requires %s", ErrForbidden, actor.Role, permission)
	}
	return nil
}
