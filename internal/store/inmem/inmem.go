// Package inmem implements the store boundary on plain maps behind a
// mutex. It mirrors the transactional semantics of the gorm store,
// including version conflicts and activity trimming, and backs the
// engine tests and local development without postgres.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

type seqKey struct {
	departmentID uint
	year         int
}

type salaryKey struct {
	staffID     uint
	month, year int
}

// Store holds every table in memory. One lock is enough here: the
// whole store mutates under it, which gives each operation the same
// atomicity the gorm implementation gets from a transaction.
type Store struct {
	mu sync.RWMutex

	nextID      uint
	students    map[uint]*models.Student
	staff       map[uint]*models.Staff
	expenses    map[uint]*models.Expense
	departments map[uint]*models.Department
	roles       map[string][]string
	activity    []models.ActivityLog
	settings    map[string]string
	seqs        map[seqKey]int
	salaries    map[salaryKey]bool
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		students:    make(map[uint]*models.Student),
		staff:       make(map[uint]*models.Staff),
		expenses:    make(map[uint]*models.Expense),
		departments: make(map[uint]*models.Department),
		roles:       make(map[string][]string),
		settings:    make(map[string]string),
		seqs:        make(map[seqKey]int),
		salaries:    make(map[salaryKey]bool),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddDepartment registers reference data directly; departments are
// plain config rows and need no engine path.
func (s *Store) AddDepartment(dep models.Department) models.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dep.ID == 0 {
		dep.ID = s.id()
	}
	s.departments[dep.ID] = &dep
	return dep
}

func (s *Store) DepartmentByID(_ context.Context, id uint) (models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dep, ok := s.departments[id]
	if !ok {
		return models.Department{}, store.ErrNotFound
	}
	return *dep, nil
}

func (s *Store) Departments(_ context.Context) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deps := make([]models.Department, 0, len(s.departments))
	for _, dep := range s.departments {
		deps = append(deps, *dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps, nil
}

func (s *Store) appendActivityLocked(entry *models.ActivityLog) {
	if entry == nil {
		return
	}
	entry.ID = s.id()
	// Newest first, trimmed to the cap.
	s.activity = append([]models.ActivityLog{*entry}, s.activity...)
	if len(s.activity) > store.ActivityCap {
		s.activity = s.activity[:store.ActivityCap]
	}
}

func (s *Store) AppendActivity(_ context.Context, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) ActivityEntries(_ context.Context, limit int) ([]models.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.activity) {
		limit = len(s.activity)
	}
	entries := make([]models.ActivityLog, limit)
	copy(entries, s.activity[:limit])
	return entries, nil
}

func (s *Store) ClearActivity(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = nil
	return nil
}

func (s *Store) RolePermissions(_ context.Context, role string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	perms, ok := s.roles[role]
	if !ok {
		return nil, false, nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out, true, nil
}

func (s *Store) ReplaceRolePermissions(_ context.Context, role string, perms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(perms))
	copy(out, perms)
	s.roles[role] = out
	return nil
}

func (s *Store) Setting(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *Store) PutSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}
