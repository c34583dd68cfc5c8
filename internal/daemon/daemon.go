package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"winpin/internal/activate"
	"winpin/internal/config"
	"winpin/internal/enumerate"
	"winpin/internal/logging"
	"winpin/internal/pins"
)

// ErrAlreadyRunning indicates another daemon instance holds the lock.
var ErrAlreadyRunning = errors.New("another winpind instance is already running")

// ErrPinMissing indicates a jump target is currently unmatched.
var ErrPinMissing = errors.New("pinned window is currently missing")

// Daemon owns the reconciliation engine: it serializes refresh triggers onto
// one goroutine, enumerates through the configured source, feeds the pin
// manager, and exposes the published state to IPC handlers.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	manager   *pins.Manager
	source    enumerate.Source
	activator activate.Activator
	lock      *flock.Flock
	monitor   *displayMonitor

	refreshCh chan struct{}

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	lastRefresh time.Time
	lastErr     string
}

// New acquires the single-instance lock and assembles the daemon.
func New(cfg *config.Config, logger *slog.Logger, manager *pins.Manager, source enumerate.Source, activator activate.Activator) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires configuration")
	}
	if manager == nil {
		return nil, errors.New("daemon requires a pin manager")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	d := &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		manager:   manager,
		source:    source,
		activator: activator,
		lock:      lock,
		refreshCh: make(chan struct{}, 1),
	}
	d.monitor = newDisplayMonitor(logger, d.RequestRefresh)
	return d, nil
}

// Start launches the refresh loop, poll ticker, and display monitor.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true

	d.wg.Add(1)
	go d.run(loopCtx)

	if d.monitor != nil {
		if err := d.monitor.Start(loopCtx); err != nil {
			d.logger.Warn("display monitor unavailable; refreshing on poll only", logging.Error(err))
		}
	}

	// Prime the published state so clients see windows immediately.
	d.RequestRefresh()
	return nil
}

// Stop halts the refresh loop.
func (d *Daemon) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if d.monitor != nil {
		d.monitor.Stop()
	}
	if cancel != nil {
		cancel()
	}
	d.wg.Wait()
}

// Close stops the daemon and releases the instance lock.
func (d *Daemon) Close() error {
	d.Stop()
	if d.lock != nil {
		return d.lock.Unlock()
	}
	return nil
}

// Manager exposes the pin manager to IPC handlers.
func (d *Daemon) Manager() *pins.Manager {
	return d.manager
}

// RequestRefresh queues a coalesced refresh; safe from any goroutine.
func (d *Daemon) RequestRefresh() {
	select {
	case d.refreshCh <- struct{}{}:
	default:
	}
}

// RefreshNow enumerates synchronously and reconciles against the result.
func (d *Daemon) RefreshNow(ctx context.Context) error {
	if d.source == nil {
		return enumerate.ErrNoCommand
	}
	snapshots, err := d.source.Snapshots(ctx)

	d.mu.Lock()
	d.lastRefresh = time.Now()
	if err != nil {
		d.lastErr = err.Error()
	} else {
		d.lastErr = ""
	}
	d.mu.Unlock()

	if err != nil {
		return fmt.Errorf("enumerate windows: %w", err)
	}
	d.manager.SetWindows(ctx, snapshots)
	return nil
}

// Activate raises the live window bound to the given pin.
func (d *Daemon) Activate(ctx context.Context, pinID string) error {
	item, err := d.manager.Item(pinID)
	if err != nil {
		return err
	}
	if item.IsMissing() {
		return fmt.Errorf("%w: %s", ErrPinMissing, pinID)
	}
	if d.activator == nil {
		return activate.ErrNoCommand
	}
	return d.activator.Activate(ctx, *item.Matched)
}

// Status reports daemon liveness and last-pass diagnostics.
type Status struct {
	Running     bool
	PID         int
	LastRefresh time.Time
	LastError   string
	LockPath    string
	DBPath      string
	Diagnostics pins.Diagnostics
}

// Status returns a point-in-time view of the daemon.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		Running:     d.running,
		PID:         os.Getpid(),
		LastRefresh: d.lastRefresh,
		LastError:   d.lastErr,
		LockPath:    d.cfg.LockPath(),
		DBPath:      d.cfg.DatabasePath(),
		Diagnostics: d.manager.Diagnostics(),
	}
}

// run is the single goroutine that owns engine invocations, satisfying the
// "caller serializes" contract of the reconciler.
func (d *Daemon) run(ctx context.Context) {
	defer d.wg.Done()

	pollInterval := time.Duration(d.cfg.Enumeration.PollIntervalSeconds) * time.Second
	debounce := time.Duration(d.cfg.Enumeration.DebounceMillis) * time.Millisecond

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.refresh(ctx)
		case <-d.refreshCh:
			// Coalesce bursts of triggers into one enumeration pass.
			timer := time.NewTimer(debounce)
		drain:
			for {
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-d.refreshCh:
				case <-timer.C:
					break drain
				}
			}
			d.refresh(ctx)
		}
	}
}

func (d *Daemon) refresh(ctx context.Context) {
	if err := d.RefreshNow(ctx); err != nil {
		if errors.Is(err, enumerate.ErrNoCommand) {
			d.logger.Debug("enumeration skipped", logging.Error(err))
			return
		}
		d.logger.Warn("window enumeration failed", logging.Error(err))
	}
}
