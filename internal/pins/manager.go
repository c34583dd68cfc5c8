package pins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"winpin/internal/logging"
	"winpin/internal/match"
	"winpin/internal/window"
)

// ErrNotFound is returned when no reference carries the requested ID.
var ErrNotFound = errors.New("pin not found")

// ErrUnknownWindow is returned when a runtime ID does not appear in the most
// recent enumeration pass.
var ErrUnknownWindow = errors.New("window not present in last enumeration")

// Store persists the ordered reference list. Implementations must treat the
// list as a full replacement on save.
type Store interface {
	LoadReferences(ctx context.Context) ([]Reference, error)
	SaveReferences(ctx context.Context, refs []Reference) error
}

// Manager owns the reference list and serializes every engine invocation.
// External callers read published snapshots and mutate state only through
// the defined operations, never by editing cached fields directly.
type Manager struct {
	store      Store
	reconciler *Reconciler
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	refs     []*Reference
	lastSeen []window.Snapshot
	items    []Item
	diag     Diagnostics
}

// ManagerOption customises the Manager.
type ManagerOption func(*Manager)

// WithClock overrides the time source (primarily for tests).
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithReconciler injects a custom reconciler.
func WithReconciler(r *Reconciler) ManagerOption {
	return func(m *Manager) {
		if r != nil {
			m.reconciler = r
		}
	}
}

// NewManager loads the persisted reference list and prepares the engine.
// Load failure is absorbed: the user starts with zero pins rather than a
// crashed daemon.
func NewManager(ctx context.Context, store Store, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NewComponentLogger(logger, "pins"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.reconciler == nil {
		m.reconciler = NewReconciler(match.New(match.DefaultPolicy()), logger)
	}

	if store != nil {
		loaded, err := store.LoadReferences(ctx)
		if err != nil {
			m.logger.Warn("load pinned references failed; starting empty", logging.Error(err))
		} else {
			m.refs = make([]*Reference, 0, len(loaded))
			for i := range loaded {
				ref := loaded[i]
				m.refs = append(m.refs, &ref)
			}
		}
	}
	m.rebuildItemsLocked()
	return m
}

// SetWindows replaces the live window inventory and reconciles against it.
func (m *Manager) SetWindows(ctx context.Context, live []window.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeen = append([]window.Snapshot(nil), live...)
	m.reconcileLocked(ctx, false)
}

// Items returns the most recently published reconciled items.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...)
}

// Item returns the reconciled item for a reference ID.
func (m *Manager) Item(id string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Windows returns the most recently seen live window inventory.
func (m *Manager) Windows() []window.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]window.Snapshot(nil), m.lastSeen...)
}

// Diagnostics returns aggregate counts from the last reconciliation pass.
func (m *Manager) Diagnostics() Diagnostics {
	m.mu.Lock()
	defer m.mu.Unlock()
	diag := m.diag
	diag.TierCounts = make(map[string]int, len(m.diag.TierCounts))
	for tier, count := range m.diag.TierCounts {
		diag.TierCounts[tier] = count
	}
	return diag
}

// Pin tracks the window with the given runtime ID. If the window is already
// claimed by an existing reference (by exact runtime-ID or window-number
// identity, independent of the matcher), that reference is removed instead:
// pinning is a toggle. Returns the affected item and whether a pin was added.
func (m *Manager) Pin(ctx context.Context, runtimeID string) (Item, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.findWindowLocked(runtimeID)
	if !ok {
		return Item{}, false, fmt.Errorf("%w: %s", ErrUnknownWindow, runtimeID)
	}

	for idx, ref := range m.refs {
		if ref.identifiesWindow(target) {
			removed := *ref
			m.refs = append(m.refs[:idx], m.refs[idx+1:]...)
			m.reconcileLocked(ctx, true)
			return Item{ID: removed.ID, Reference: removed}, false, nil
		}
	}

	ref := NewReference(target, m.now())
	m.refs = append(m.refs, &ref)
	m.reconcileLocked(ctx, true)

	item, err := m.itemLocked(ref.ID)
	if err != nil {
		return Item{}, true, err
	}
	m.logger.Info("window pinned",
		logging.String("pin_id", ref.ID),
		logging.String("bundle_id", ref.OwnerBundleID),
		logging.String("title", ref.Title),
	)
	return item, true, nil
}

// Unpin removes the reference with the given stable ID.
func (m *Manager) Unpin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for idx, ref := range m.refs {
		if ref.ID == id {
			m.refs = append(m.refs[:idx], m.refs[idx+1:]...)
			m.reconcileLocked(ctx, true)
			m.logger.Info("window unpinned", logging.String("pin_id", id))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Rename sets or clears the display override. Names trimming to empty are
// stored as unset so display logic falls back to the cached title.
func (m *Manager) Rename(ctx context.Context, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.refLocked(id)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(name)
	if ref.CustomName == trimmed {
		return nil
	}
	ref.CustomName = trimmed
	m.reconcileLocked(ctx, true)
	return nil
}

// Reassign rebinds a reference's identity fields to a different, user-chosen
// live window while preserving its ID and custom name. This is the escape
// hatch for ambiguity the matcher deliberately refuses to resolve.
func (m *Manager) Reassign(ctx context.Context, id, runtimeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.refLocked(id)
	if err != nil {
		return err
	}
	target, ok := m.findWindowLocked(runtimeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWindow, runtimeID)
	}
	ref.adopt(target)
	m.reconcileLocked(ctx, true)
	m.logger.Info("pin reassigned",
		logging.String("pin_id", id),
		logging.String("runtime_id", target.RuntimeID),
	)
	return nil
}

// Move places the reference at the given zero-based position in stored
// order. Order affects display and future claim priority only.
func (m *Manager) Move(ctx context.Context, id string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := -1
	for idx, ref := range m.refs {
		if ref.ID == id {
			from = idx
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if position < 0 {
		position = 0
	}
	if position >= len(m.refs) {
		position = len(m.refs) - 1
	}
	if position == from {
		return nil
	}

	ref := m.refs[from]
	m.refs = append(m.refs[:from], m.refs[from+1:]...)
	m.refs = append(m.refs[:position], append([]*Reference{ref}, m.refs[position:]...)...)
	m.reconcileLocked(ctx, true)
	return nil
}

func (m *Manager) refLocked(id string) (*Reference, error) {
	for _, ref := range m.refs {
		if ref.ID == id {
			return ref, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (m *Manager) itemLocked(id string) (Item, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (m *Manager) findWindowLocked(runtimeID string) (window.Snapshot, bool) {
	for _, snapshot := range m.lastSeen {
		if snapshot.RuntimeID == runtimeID {
			return snapshot, true
		}
	}
	return window.Snapshot{}, false
}

// reconcileLocked re-runs the engine against the most recently seen inventory
// and persists when the pass dirtied any reference or the caller mutated the
// list. Persistence failure is absorbed: the in-memory state stands and the
// next mutation retries the save.
func (m *Manager) reconcileLocked(ctx context.Context, mutated bool) {
	outcome := m.reconciler.Reconcile(m.refs, m.lastSeen)
	m.items = outcome.Items
	m.diag = outcome.Diagnostics

	if m.store == nil || (!outcome.Dirty && !mutated) {
		return
	}
	refs := make([]Reference, 0, len(m.refs))
	for _, ref := range m.refs {
		refs = append(refs, *ref)
	}
	if err := m.store.SaveReferences(ctx, refs); err != nil {
		m.logger.Warn("persist pinned references failed; will retry on next change", logging.Error(err))
	}
}

func (m *Manager) rebuildItemsLocked() {
	outcome := m.reconciler.Reconcile(m.refs, m.lastSeen)
	m.items = outcome.Items
	m.diag = outcome.Diagnostics
}
