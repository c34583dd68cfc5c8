package window

import (
	"fmt"
	"strings"
)

// Frame is a window rectangle in screen coordinates.
type Frame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ManhattanDistance sums the absolute deltas of all four frame components.
func (f Frame) ManhattanDistance(other Frame) int {
	return absInt(f.X-other.X) + absInt(f.Y-other.Y) +
		absInt(f.Width-other.Width) + absInt(f.Height-other.Height)
}

// MaxDelta returns the largest absolute delta across the four components.
func (f Frame) MaxDelta(other Frame) int {
	d := absInt(f.X - other.X)
	if v := absInt(f.Y - other.Y); v > d {
		d = v
	}
	if v := absInt(f.Width - other.Width); v > d {
		d = v
	}
	if v := absInt(f.Height - other.Height); v > d {
		d = v
	}
	return d
}

// Snapshot is an immutable description of one live window, captured fresh on
// every enumeration pass. RuntimeID is only meaningful for the current process
// lifetime of the owning app; enumeration fills in a synthetic fallback ID
// when the helper reports none.
type Snapshot struct {
	RuntimeID      string `json:"runtime_id"`
	OwnerBundleID  string `json:"owner_bundle_id"`
	OwnerAppName   string `json:"owner_app_name"`
	OwnerPID       int    `json:"owner_pid"`
	Title          string `json:"title"`
	OSWindowNumber int64  `json:"os_window_number,omitempty"`
	Role           string `json:"role,omitempty"`
	Subrole        string `json:"subrole,omitempty"`
	Frame          *Frame `json:"frame,omitempty"`
	IsMinimized    bool   `json:"is_minimized"`
}

// HasWindowNumber reports whether the snapshot carries a stable-per-session
// OS window number. Zero is the absent sentinel; real window numbers are
// positive.
func (s Snapshot) HasWindowNumber() bool {
	return s.OSWindowNumber > 0
}

// NormalizedTitle returns the case- and diacritic-folded, trimmed title.
func (s Snapshot) NormalizedTitle() string {
	return NormalizeTitle(s.Title)
}

// Signature returns the mid-confidence identity fingerprint for the snapshot.
func (s Snapshot) Signature() string {
	return BuildSignature(s.Role, s.Subrole, s.NormalizedTitle(), s.Frame)
}

// DisplayTitle returns the title, or a placeholder for untitled windows.
func (s Snapshot) DisplayTitle() string {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Sprintf("(untitled %s window)", strings.TrimSpace(s.OwnerAppName))
	}
	return s.Title
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
