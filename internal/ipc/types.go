package ipc

import (
	"time"

	"winpin/internal/pins"
	"winpin/internal/window"
)

// PingRequest checks daemon liveness.
type PingRequest struct{}

// PingResponse carries the daemon pid.
type PingResponse struct {
	PID int `json:"pid"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse reports daemon state and last-pass diagnostics.
type StatusResponse struct {
	Running     bool             `json:"running"`
	PID         int              `json:"pid"`
	LastRefresh time.Time        `json:"last_refresh"`
	LastError   string           `json:"last_error,omitempty"`
	LockPath    string           `json:"lock_path"`
	DBPath      string           `json:"db_path"`
	Diagnostics pins.Diagnostics `json:"diagnostics"`
}

// RefreshRequest forces a synchronous enumeration pass.
type RefreshRequest struct{}

// RefreshResponse reports the resulting diagnostics.
type RefreshResponse struct {
	Diagnostics pins.Diagnostics `json:"diagnostics"`
}

// WindowsRequest lists the most recently enumerated live windows.
type WindowsRequest struct{}

// WindowsResponse contains live window snapshots.
type WindowsResponse struct {
	Windows []window.Snapshot `json:"windows"`
}

// ListRequest fetches the reconciled pin list.
type ListRequest struct{}

// ListResponse contains reconciled pin items in stored order.
type ListResponse struct {
	Items []pins.Item `json:"items"`
}

// PinRequest pins (or toggles off) the window with the given runtime ID.
type PinRequest struct {
	RuntimeID string `json:"runtime_id"`
}

// PinResponse reports the affected item and whether a pin was added.
type PinResponse struct {
	Item   pins.Item `json:"item"`
	Pinned bool      `json:"pinned"`
}

// UnpinRequest removes a pin by its stable ID.
type UnpinRequest struct {
	ID string `json:"id"`
}

// UnpinResponse acknowledges removal.
type UnpinResponse struct{}

// RenameRequest sets or clears a pin's custom name.
type RenameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RenameResponse acknowledges the rename.
type RenameResponse struct{}

// MoveRequest repositions a pin in stored order.
type MoveRequest struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// MoveResponse acknowledges the move.
type MoveResponse struct{}

// ReassignRequest rebinds a pin to a different live window.
type ReassignRequest struct {
	ID        string `json:"id"`
	RuntimeID string `json:"runtime_id"`
}

// ReassignResponse acknowledges the reassignment.
type ReassignResponse struct{}

// JumpRequest activates the live window bound to a pin.
type JumpRequest struct {
	ID string `json:"id"`
}

// JumpResponse acknowledges the activation.
type JumpResponse struct{}
