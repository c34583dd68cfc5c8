package pins

import (
	"testing"

	"winpin/internal/window"
)

func TestNewReferenceSeedsCacheFromSnapshot(t *testing.T) {
	snapshot := editorSnapshot("w-1", 5)
	ref := NewReference(snapshot, testTime)

	if ref.ID == "" {
		t.Fatal("reference without an ID")
	}
	if ref.LastKnownRuntimeID != "w-1" || ref.OSWindowNumber != 5 {
		t.Fatalf("cached identity = %+v", ref)
	}
	if ref.NormalizedTitle != snapshot.NormalizedTitle() {
		t.Fatalf("normalized title = %q", ref.NormalizedTitle)
	}
	if ref.Signature != snapshot.Signature() {
		t.Fatalf("signature = %q", ref.Signature)
	}
	if !ref.CreatedAt.Equal(testTime) {
		t.Fatalf("created at = %v", ref.CreatedAt)
	}

	// The frame is a copy, not an alias into the snapshot.
	snapshot.Frame.X = 9999
	if ref.Frame.X == 9999 {
		t.Fatal("reference frame aliases the snapshot frame")
	}
}

func TestIdentifiesWindowUsesExactIdentityOnly(t *testing.T) {
	ref := NewReference(editorSnapshot("w-1", 5), testTime)

	if !ref.identifiesWindow(editorSnapshot("w-1", 5)) {
		t.Fatal("exact runtime ID not recognized")
	}
	byNumber := editorSnapshot("w-other", 5)
	if !ref.identifiesWindow(byNumber) {
		t.Fatal("bundle plus window number not recognized")
	}

	// Same structure, different identity: the toggle check must not use the
	// fuzzy matcher.
	lookalike := editorSnapshot("w-2", 7)
	if ref.identifiesWindow(lookalike) {
		t.Fatal("structural lookalike treated as the same window")
	}
}

func TestDisplayNameFallsBackToAppName(t *testing.T) {
	ref := Reference{OwnerAppName: "Editor"}
	if got := ref.DisplayName(); got != "Editor" {
		t.Fatalf("display name = %q", got)
	}
	ref.Title = "Notes"
	if got := ref.DisplayName(); got != "Notes" {
		t.Fatalf("display name = %q", got)
	}
	ref.CustomName = "Main"
	if got := ref.DisplayName(); got != "Main" {
		t.Fatalf("display name = %q", got)
	}
}

func TestRefreshFromReportsChange(t *testing.T) {
	snapshot := editorSnapshot("w-1", 5)
	ref := NewReference(snapshot, testTime)

	if ref.refreshFrom(snapshot) {
		t.Fatal("identical snapshot reported as a change")
	}

	moved := snapshot
	moved.Frame = &window.Frame{X: 500, Y: 500, Width: 800, Height: 600}
	if !ref.refreshFrom(moved) {
		t.Fatal("frame change not reported")
	}
	if ref.Frame.X != 500 {
		t.Fatalf("frame not adopted: %+v", ref.Frame)
	}
}
