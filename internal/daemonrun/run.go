package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"winpin/internal/activate"
	"winpin/internal/config"
	"winpin/internal/daemon"
	"winpin/internal/enumerate"
	"winpin/internal/ipc"
	"winpin/internal/logging"
	"winpin/internal/pins"
	"winpin/internal/store"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the winpind runtime loop and blocks until a termination signal.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logger, err := logging.NewFromConfig(&config.Config{
		Paths:   cfg.Paths,
		Logging: config.Logging{Level: level, Format: cfg.Logging.Format},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pinStore, err := store.Open(cfg.DatabasePath())
	if err != nil {
		// Unreadable state means the user starts with zero pins, not a
		// crashed daemon; pins made this session stay in memory.
		logger.Warn("open pin store failed; continuing without persistence", logging.Error(err))
		pinStore = nil
	} else {
		defer pinStore.Close()
	}

	var managerStore pins.Store
	if pinStore != nil {
		managerStore = pinStore
	}
	manager := pins.NewManager(signalCtx, managerStore, logger)

	source := enumerate.NewCommandSource(
		cfg.Enumeration.Command,
		time.Duration(cfg.Enumeration.TimeoutSeconds)*time.Second,
	)
	activator := activate.NewCommandActivator(
		cfg.Activation.Command,
		time.Duration(cfg.Activation.TimeoutSeconds)*time.Second,
	)

	d, err := daemon.New(cfg, logger, manager, source, activator)
	if err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			return err
		}
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := WritePIDFile(cfg.PIDPath()); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(cfg.PIDPath())

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	if len(cfg.Enumeration.Command) == 0 {
		logger.Warn("no enumeration command configured; pins reconcile only on explicit refreshes with empty inventories")
	}
	logger.Info("winpind running",
		logging.String("socket", cfg.SocketPath()),
		logging.String("db", cfg.DatabasePath()),
		logging.Int("pid", os.Getpid()),
	)

	<-signalCtx.Done()
	logger.Info("winpind shutting down")
	return nil
}

// WritePIDFile records the current process id at path.
func WritePIDFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

// ReadPIDFile returns the recorded pid, or 0 when absent or malformed.
func ReadPIDFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// ProcessAlive reports whether a process with the given pid exists.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// SignalStop sends SIGTERM to the recorded daemon process.
func SignalStop(pid int) error {
	if pid <= 0 {
		return errors.New("no daemon pid recorded")
	}
	if err := unix.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon %d: %w", pid, err)
	}
	return nil
}
