package activate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"winpin/internal/window"
)

// Activator brings a live window to the foreground. The engine only ever
// hands over an identifier; it performs no window control itself.
type Activator interface {
	Activate(ctx context.Context, snapshot window.Snapshot) error
}

// ErrNoCommand indicates no activation helper is configured.
var ErrNoCommand = errors.New("no activation command configured")

// CommandActivator executes an external helper with the target window's
// runtime ID appended as the final argument.
type CommandActivator struct {
	command []string
	timeout time.Duration
}

// NewCommandActivator builds an activator around the configured helper.
func NewCommandActivator(command []string, timeout time.Duration) *CommandActivator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CommandActivator{
		command: append([]string(nil), command...),
		timeout: timeout,
	}
}

// Activate invokes the helper for the snapshot's runtime ID.
func (a *CommandActivator) Activate(ctx context.Context, snapshot window.Snapshot) error {
	if len(a.command) == 0 {
		return ErrNoCommand
	}

	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := append(append([]string(nil), a.command[1:]...), snapshot.RuntimeID)
	cmd := exec.CommandContext(runCtx, a.command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run activation helper: %w (stderr: %s)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// Recorder captures activation requests for tests.
type Recorder struct {
	Activated []window.Snapshot
	Err       error
}

// Activate records the snapshot and returns the configured error.
func (r *Recorder) Activate(_ context.Context, snapshot window.Snapshot) error {
	r.Activated = append(r.Activated, snapshot)
	return r.Err
}
