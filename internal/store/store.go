// Package store implements the task store controller: the canonical
// in-memory task collection, initialized from the local cache and the
// remote backend, mutated through four intents, and mirrored to the
// cache after every canonical change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"tasko/internal/cache"
	"tasko/internal/service"
)

var (
	// ErrEmptyDescription is returned by Add for empty or
	// whitespace-only input. Validated here so it never reaches the
	// backend.
	ErrEmptyDescription = errors.New("description is empty")

	// ErrCreateInFlight is returned by Add while a previous create has
	// not resolved. Submissions are rejected, not queued.
	ErrCreateInFlight = errors.New("create already in flight")

	// ErrNoSuchTask is returned by Toggle when the id is not in the
	// collection.
	ErrNoSuchTask = errors.New("no such task")
)

// snapshot is the cache encoding of the task collection.
type snapshot struct {
	Tasks []service.Task `json:"tasks"`
}

// Store owns the canonical task collection. All state lives behind one
// mutex; a mutation and its cache rewrite are applied atomically, so
// the cache always reflects a mutation's outcome before the next
// intent's effect. Remote calls run outside the lock.
type Store struct {
	svc    service.Service
	cache  *cache.Cache // nil disables persistence
	logger *slog.Logger

	mu      sync.Mutex
	tasks   []service.Task
	filter  Filter
	pending bool
}

// New creates a store controller. cache may be nil, in which case
// snapshots are skipped. logger may be nil.
func New(svc service.Service, c *cache.Cache, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		svc:    svc,
		cache:  c,
		logger: logger,
		filter: FilterAll,
	}
}

// LoadCached populates the collection from the cache snapshot, if one
// is present and parseable. A malformed snapshot is treated as absent.
// Best-effort: the caller renders whatever this yields and reconciles
// with Refresh.
func (s *Store) LoadCached() {
	if s.cache == nil {
		return
	}
	data, ok, err := s.cache.Read(cache.SnapshotKey)
	if err != nil {
		s.logger.Warn("cache read failed", "error", err)
		return
	}
	if !ok {
		return
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Debug("cache snapshot malformed, ignoring", "error", err)
		return
	}
	s.mu.Lock()
	s.tasks = snap.Tasks
	s.mu.Unlock()
}

// Refresh fetches the authoritative task list from the backend and
// replaces the collection wholesale. On failure the current (possibly
// cache-derived) collection is kept.
func (s *Store) Refresh(ctx context.Context) error {
	remote, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.logger.Warn("refresh failed, keeping local state", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The overwrite discards tasks created locally after the fetch
	// started. Flag what gets dropped instead of losing it silently.
	if dropped := missingIDs(s.tasks, remote); len(dropped) > 0 {
		s.logger.Warn("authoritative refresh dropped local tasks", "ids", dropped)
	}

	s.tasks = remote
	s.writeSnapshotLocked()
	return nil
}

// Initialize runs the two-phase startup: synchronous cache read for an
// immediate render, then remote reconciliation. A refresh failure is
// logged and swallowed (silent degradation to the cached view).
func (s *Store) Initialize(ctx context.Context) {
	s.LoadCached()
	_ = s.Refresh(ctx)
}

// Add creates a task with the given description. At most one create is
// in flight at a time; a second submission is rejected while the first
// has not resolved. On success the returned task (with server-assigned
// ID) is appended to the collection.
func (s *Store) Add(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return ErrCreateInFlight
	}
	s.pending = true
	s.mu.Unlock()

	created, err := s.svc.CreateTask(ctx, description)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		s.logger.Warn("create failed", "error", err)
		return err
	}
	s.tasks = append(s.tasks, created)
	s.writeSnapshotLocked()
	return nil
}

// Toggle inverts a task's completion flag via the backend. State only
// changes on success, and the entry is replaced with the server's
// returned representation; there is no optimistic flip to revert.
func (s *Store) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	cur, ok := s.findLocked(id)
	s.mu.Unlock()
	if !ok {
		return ErrNoSuchTask
	}

	updated, err := s.svc.UpdateTask(ctx, id, cur.Description, !cur.Completed)
	if err != nil {
		s.logger.Warn("toggle failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The entry may have been deleted by a concurrent intent; then
	// there is nothing to replace.
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = updated
			s.writeSnapshotLocked()
			break
		}
	}
	return nil
}

// Delete removes a task via the backend. State only changes on
// success. A second delete of an already-removed id simply finds no
// entry to remove.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.logger.Warn("delete failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.writeSnapshotLocked()
			break
		}
	}
	return nil
}

// SetFilter changes the view filter. No I/O, no cache rewrite.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the current view filter.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Pending reports whether a create is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Tasks returns a copy of the canonical collection.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filtered returns the collection projected through the current filter.
func (s *Store) Filtered() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered, _ := Derive(s.tasks, s.filter)
	return filtered
}

// Stats returns counts derived from the canonical collection.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, stats := Derive(s.tasks, s.filter)
	return stats
}

// findLocked looks up a task by id. Caller holds s.mu.
func (s *Store) findLocked(id string) (service.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// writeSnapshotLocked mirrors the collection to the cache. Caller
// holds s.mu. Cache write failures are logged and otherwise ignored.
func (s *Store) writeSnapshotLocked() {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(snapshot{Tasks: s.tasks})
	if err != nil {
		s.logger.Warn("snapshot encode failed", "error", err)
		return
	}
	if err := s.cache.Write(cache.SnapshotKey, data); err != nil {
		s.logger.Warn("snapshot write failed", "error", err)
	}
}

// missingIDs returns ids present in old but absent from new.
func missingIDs(old, new []service.Task) []string {
	seen := make(map[string]struct{}, len(new))
	for _, t := range new {
		seen[t.ID] = struct{}{}
	}
	var missing []string
	for _, t := range old {
		if _, ok := seen[t.ID]; !ok {
			missing = append(missing, t.ID)
		}
	}
	return missing
}
