// nti-admin/internal/perm/resolver.go

package perm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hamagold/nti-admin/internal/store"
)

var (
	// ErrSuperadminLocked is returned on attempts to edit the
	// superadmin permission set.
	ErrSuperadminLocked = errors.New("superadmin permissions are fixed")
	// ErrUnknownRole is returned when the role is not one of the four
	// fixed roles.
	ErrUnknownRole = errors.New("unknown role")
)

const cacheTTL = 10 * time.Minute

// Resolver answers capability queries for a role. Resolved sets are
// cached in redis when a client is configured; a nil client disables
// caching, the resolver still works.
type Resolver struct {
	store store.Store
	rdb   *redis.Client
}

func NewResolver(st store.Store, rdb *redis.Client) *Resolver {
	return &Resolver{store: st, rdb: rdb}
}

func cacheKey(role string) string {
	return "role:" + role + ":perms"
}

// Resolve returns the role's effective permission set. Superadmin
// always resolves to the full fixed set regardless of any stored
// override; other roles fall back to the hard-coded defaults when no
// override exists.
func (r *Resolver) Resolve(ctx context.Context, role string) map[string]bool {
	set := make(map[string]bool)
	if role == "" {
		return set
	}
	if role == RoleSuperadmin {
		for _, name := range AllNames() {
			set[name] = true
		}
		return set
	}

	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey(role)).Result(); err == nil {
			var names []string
			if json.Unmarshal([]byte(cached), &names) == nil {
				for _, name := range names {
					set[name] = true
				}
				return set
			}
			slog.Warn("failed to unmarshal cached role permissions", "role", role)
		} else if !errors.Is(err, redis.Nil) {
			slog.Error("redis GET failed for role permissions", "error", err, "role", role)
		}
	}

	names, found, err := r.store.RolePermissions(ctx, role)
	if err != nil {
		slog.Error("could not load role permissions, failing closed", "error", err, "role", role)
		return set
	}
	if !found {
		names = DefaultSets()[role]
	}
	valid := known()
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if valid[name] {
			set[name] = true
			kept = append(kept, name)
		}
	}

	if r.rdb != nil {
		if data, err := json.Marshal(kept); err == nil {
			if err := r.rdb.Set(ctx, cacheKey(role), data, cacheTTL).Err(); err != nil {
				slog.Error("failed to cache role permissions", "error", err, "role", role)
			}
		}
	}
	return set
}

// Has reports whether the role holds the permission. Unauthenticated
// actors (empty role) and unknown permissions are always false.
func (r *Resolver) Has(ctx context.Context, role, permission string) bool {
	if role == "" || permission == "" {
		return false
	}
	return r.Resolve(ctx, role)[permission]
}

// Update replaces the stored set for an editable role. Superadmin is
// rejected; unknown permission names are dropped.
func (r *Resolver) Update(ctx context.Context, role string, perms []string) error {
	if role == RoleSuperadmin {
		return ErrSuperadminLocked
	}
	editable := false
	for _, fixed := range FixedRoles {
		if role == fixed {
			editable = true
			break
		}
	}
	if !editable {
		return ErrUnknownRole
	}
	valid := known()
	kept := make([]string, 0, len(perms))
	for _, name := range perms {
		if valid[name] {
			kept = append(kept, name)
		}
	}
	if err := r.store.ReplaceRolePermissions(ctx, role, kept); err != nil {
		return err
	}
	r.Invalidate(ctx, role)
	return nil
}

// Invalidate drops the cached set for a role after its permissions or
// the catalog changed.
func (r *Resolver) Invalidate(ctx context.Context, role string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, cacheKey(role)).Err(); err != nil {
		slog.Warn("failed to invalidate role permission cache", "error", err, "role", role)
	}
}

// Convenience capability queries. These are plain name lookups built
// by convention; nothing is special-cased beyond the concatenation.

func (r *Resolver) CanView(ctx context.Context, role, entity string) bool {
	return r.Has(ctx, role, "view_"+entity)
}

func (r *Resolver) CanAdd(ctx context.Context, role, entity string) bool {
	return r.Has(ctx, role, "add_"+entity)
}

func (r *Resolver) CanEdit(ctx context.Context, role, entity string) bool {
	return r.Has(ctx, role, "edit_"+entity)
}

func (r *Resolver) CanDelete(ctx context.Context, role, entity string) bool {
	return r.Has(ctx, role, "delete_"+entity)
}

func (r *Resolver) CanManage(ctx context.Context, role, setting string) bool {
	return r.Has(ctx, role, "manage_"+setting)
}
