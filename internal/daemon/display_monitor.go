package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"winpin/internal/logging"
)

// displayMonitor listens for udev drm events so display hotplug (a monitor
// connected or removed) triggers re-enumeration immediately: window frames
// shift wholesale when the display layout changes, and waiting for the next
// poll leaves pins pointing at stale geometry.
type displayMonitor struct {
	logger  *slog.Logger
	trigger func()

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

func newDisplayMonitor(logger *slog.Logger, trigger func()) *displayMonitor {
	return &displayMonitor{
		logger:  logging.NewComponentLogger(logger, "display-monitor"),
		trigger: trigger,
	}
}

// Start begins listening for udev netlink events. Failure to connect is
// non-fatal: the daemon still refreshes on its poll interval.
func (m *displayMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("display hotplug monitor started")
	return nil
}

// Stop shuts down the monitor.
func (m *displayMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
}

func (m *displayMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	events := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(events, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case event := <-events:
			m.logger.Debug("display change detected",
				logging.String("action", string(event.Action)),
				logging.String("kobj", event.KObj),
			)
			if m.trigger != nil {
				m.trigger()
			}
		case err := <-errs:
			m.logger.Warn("display monitor error", logging.Error(err))
		}
	}
}

// buildMatcher matches SUBSYSTEM=drm change events, which the kernel emits
// on connector hotplug.
func (m *displayMonitor) buildMatcher() netlink.Matcher {
	action := "change"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "drm",
		},
	})
	return rules
}
