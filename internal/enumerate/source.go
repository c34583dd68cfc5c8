package enumerate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"winpin/internal/window"
)

// Source supplies a complete snapshot list of eligible live windows. Each
// call is a full replacement, never a delta.
type Source interface {
	Snapshots(ctx context.Context) ([]window.Snapshot, error)
}

// ErrNoCommand indicates no enumeration helper is configured.
var ErrNoCommand = errors.New("no enumeration command configured")

// CommandSource executes an external helper that prints a JSON array of
// window snapshots on stdout. The engine never inspects raw platform values;
// the helper owns all OS-specific window metadata access.
type CommandSource struct {
	command []string
	timeout time.Duration
}

// NewCommandSource builds a source around the configured helper command.
func NewCommandSource(command []string, timeout time.Duration) *CommandSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CommandSource{
		command: append([]string(nil), command...),
		timeout: timeout,
	}
}

// Snapshots runs the helper and decodes its output. Windows reported without
// a runtime ID receive synthetic fallback IDs before the list is returned.
func (s *CommandSource) Snapshots(ctx context.Context) ([]window.Snapshot, error) {
	if len(s.command) == 0 {
		return nil, ErrNoCommand
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.command[0], s.command[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run enumeration helper: %w (stderr: %s)", err, bytes.TrimSpace(stderr.Bytes()))
	}

	snapshots, err := Decode(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Decode parses a JSON snapshot array and assigns fallback runtime IDs.
func Decode(data []byte) ([]window.Snapshot, error) {
	var snapshots []window.Snapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("decode window snapshots: %w", err)
	}
	window.AssignFallbackIDs(snapshots)
	return snapshots, nil
}

// StaticSource serves a fixed snapshot list (primarily for tests).
type StaticSource struct {
	windows []window.Snapshot
	err     error
}

// NewStaticSource returns a source that always yields the given windows.
func NewStaticSource(windows []window.Snapshot) *StaticSource {
	return &StaticSource{windows: windows}
}

// NewFailingSource returns a source that always fails with err.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

// Set replaces the served snapshot list.
func (s *StaticSource) Set(windows []window.Snapshot) {
	s.windows = windows
}

// Snapshots returns a copy of the configured list.
func (s *StaticSource) Snapshots(context.Context) ([]window.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]window.Snapshot(nil), s.windows...), nil
}
