package pins

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"winpin/internal/match"
	"winpin/internal/window"
)

// Reference is a persisted user intent to keep tracking one specific window.
// ID is assigned once at pin time and never reused; every other identity
// field is a cache refreshed from the matched window on each successful
// reconciliation and never mutated speculatively.
type Reference struct {
	ID                 string        `json:"id"`
	OwnerBundleID      string        `json:"owner_bundle_id"`
	OwnerAppName       string        `json:"owner_app_name"`
	Title              string        `json:"title"`
	OSWindowNumber     int64         `json:"os_window_number,omitempty"`
	LastKnownRuntimeID string        `json:"last_known_runtime_id,omitempty"`
	Role               string        `json:"role,omitempty"`
	Subrole            string        `json:"subrole,omitempty"`
	Frame              *window.Frame `json:"frame,omitempty"`
	NormalizedTitle    string        `json:"normalized_title"`
	Signature          string        `json:"signature"`
	CustomName         string        `json:"custom_name,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// NewReference seeds a reference from a directly observed window. The window
// was just picked by the user, so its snapshot fields are authoritative.
func NewReference(snapshot window.Snapshot, now time.Time) Reference {
	ref := Reference{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
	}
	ref.adopt(snapshot)
	return ref
}

// MatchProfile exposes the cached identity signals the matcher consumes.
func (r *Reference) MatchProfile() match.Reference {
	return match.Reference{
		OwnerBundleID:      r.OwnerBundleID,
		LastKnownRuntimeID: r.LastKnownRuntimeID,
		OSWindowNumber:     r.OSWindowNumber,
		Role:               r.Role,
		Subrole:            r.Subrole,
		NormalizedTitle:    r.NormalizedTitle,
		Frame:              r.Frame,
		Signature:          r.Signature,
	}
}

// DisplayName returns the custom name when set, else the cached title.
func (r *Reference) DisplayName() string {
	if name := strings.TrimSpace(r.CustomName); name != "" {
		return name
	}
	if strings.TrimSpace(r.Title) != "" {
		return r.Title
	}
	return r.OwnerAppName
}

// refreshFrom overwrites the cached fields from a freshly matched snapshot
// and reports whether anything actually changed.
func (r *Reference) refreshFrom(snapshot window.Snapshot) bool {
	if r.matchesCache(snapshot) {
		return false
	}
	r.adopt(snapshot)
	return true
}

func (r *Reference) matchesCache(s window.Snapshot) bool {
	return r.OwnerBundleID == s.OwnerBundleID &&
		r.OwnerAppName == s.OwnerAppName &&
		r.Title == s.Title &&
		r.OSWindowNumber == s.OSWindowNumber &&
		r.LastKnownRuntimeID == s.RuntimeID &&
		r.Role == s.Role &&
		r.Subrole == s.Subrole &&
		framesEqual(r.Frame, s.Frame) &&
		r.NormalizedTitle == s.NormalizedTitle() &&
		r.Signature == s.Signature()
}

func (r *Reference) adopt(s window.Snapshot) {
	r.OwnerBundleID = s.OwnerBundleID
	r.OwnerAppName = s.OwnerAppName
	r.Title = s.Title
	r.OSWindowNumber = s.OSWindowNumber
	r.LastKnownRuntimeID = s.RuntimeID
	r.Role = s.Role
	r.Subrole = s.Subrole
	r.Frame = cloneFrame(s.Frame)
	r.NormalizedTitle = s.NormalizedTitle()
	r.Signature = s.Signature()
}

// identifiesWindow reports whether the reference's cached identifiers point
// at the snapshot directly. Used by pin-toggle detection, which must not
// involve the fuzzy matcher.
func (r *Reference) identifiesWindow(s window.Snapshot) bool {
	if r.LastKnownRuntimeID != "" && r.LastKnownRuntimeID == s.RuntimeID {
		return true
	}
	return r.OSWindowNumber > 0 && r.OSWindowNumber == s.OSWindowNumber &&
		r.OwnerBundleID == s.OwnerBundleID
}

func framesEqual(a, b *window.Frame) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneFrame(f *window.Frame) *window.Frame {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
