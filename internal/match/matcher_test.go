package match

import (
	"testing"

	"winpin/internal/window"
)

const testBundle = "com.example.editor"

func editorWindow(runtimeID, title string, number int64, frame *window.Frame) window.Snapshot {
	return window.Snapshot{
		RuntimeID:      runtimeID,
		OwnerBundleID:  testBundle,
		OwnerAppName:   "Editor",
		Title:          title,
		OSWindowNumber: number,
		Role:           "AXWindow",
		Frame:          frame,
	}
}

func referenceFor(s window.Snapshot) Reference {
	return Reference{
		OwnerBundleID:      s.OwnerBundleID,
		LastKnownRuntimeID: s.RuntimeID,
		OSWindowNumber:     s.OSWindowNumber,
		Role:               s.Role,
		Subrole:            s.Subrole,
		NormalizedTitle:    s.NormalizedTitle(),
		Frame:              s.Frame,
		Signature:          s.Signature(),
	}
}

func TestRuntimeIDMatchWins(t *testing.T) {
	target := editorWindow("w-2", "Notes", 2, &window.Frame{X: 0, Y: 0, Width: 800, Height: 600})
	pool := []window.Snapshot{
		editorWindow("w-1", "Notes", 1, &window.Frame{X: 0, Y: 0, Width: 800, Height: 600}),
		target,
	}

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(referenceFor(target), pool, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Tier != TierRuntimeID {
		t.Fatalf("tier = %s, want %s", result.Tier, TierRuntimeID)
	}
	if result.Snapshot.RuntimeID != "w-2" {
		t.Fatalf("matched %q, want w-2", result.Snapshot.RuntimeID)
	}
}

func TestFallbackIDTrustedWhenSignatureUnique(t *testing.T) {
	target := editorWindow("fallback:aaaa:0", "Notes", 0, &window.Frame{X: 0, Y: 0, Width: 800, Height: 600})
	other := editorWindow("fallback:bbbb:0", "Scratch", 0, &window.Frame{X: 900, Y: 500, Width: 400, Height: 300})

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(referenceFor(target), []window.Snapshot{other, target}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Tier != TierRuntimeID {
		t.Fatalf("tier = %s, want %s", result.Tier, TierRuntimeID)
	}
}

func TestFallbackIDRefusedWhenSiblingsShareSignature(t *testing.T) {
	// Two windows share title and near-identical frames, so the reference's
	// signature has two live holders. Occurrence-indexed IDs can swap between
	// passes, so the stored fallback ID must not be trusted here, and the
	// signature tier sees the same ambiguity. Missing beats wrong.
	frame := &window.Frame{X: 0, Y: 0, Width: 800, Height: 600}
	first := editorWindow("fallback:cccc:0", "Workspace", 0, frame)
	second := editorWindow("fallback:cccc:1", "Workspace", 0, &window.Frame{X: 10, Y: 5, Width: 800, Height: 600})

	m := New(DefaultPolicy())
	if _, ok := m.FindBestMatch(referenceFor(first), []window.Snapshot{first, second}, nil); ok {
		t.Fatal("matcher guessed between signature-sharing siblings")
	}
}

func TestFallbackIDTrustedForSoleCandidateWithoutSignature(t *testing.T) {
	// Title-only reference: no structural fields, so no computable signature.
	sole := window.Snapshot{
		RuntimeID:     "fallback:dddd:0",
		OwnerBundleID: testBundle,
		Title:         "Notes",
	}
	ref := Reference{
		OwnerBundleID:      testBundle,
		LastKnownRuntimeID: sole.RuntimeID,
		NormalizedTitle:    sole.NormalizedTitle(),
	}

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(ref, []window.Snapshot{sole}, nil)
	if !ok || result.Tier != TierRuntimeID {
		t.Fatalf("ok=%v tier=%s, want runtime-ID match", ok, result.Tier)
	}
}

func TestWindowNumberMatch(t *testing.T) {
	target := editorWindow("w-new", "Notes", 5, &window.Frame{X: 0, Y: 0, Width: 800, Height: 600})
	ref := referenceFor(target)
	ref.LastKnownRuntimeID = "w-stale"
	ref.Signature = ""
	ref.Role = ""
	ref.Frame = nil

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(ref, []window.Snapshot{
		editorWindow("w-other", "Scratch", 6, nil),
		target,
	}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Tier != TierWindowNumber {
		t.Fatalf("tier = %s, want %s", result.Tier, TierWindowNumber)
	}
}

func TestDuplicateWindowNumbersFallThroughToSignature(t *testing.T) {
	frame := &window.Frame{X: 0, Y: 0, Width: 800, Height: 600}
	target := editorWindow("w-new", "Notes", 5, frame)
	impostor := editorWindow("w-imp", "Scratch", 5, &window.Frame{X: 900, Y: 500, Width: 400, Height: 300})

	ref := referenceFor(target)
	ref.LastKnownRuntimeID = "w-stale"

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(ref, []window.Snapshot{impostor, target}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if result.Tier != TierSignature {
		t.Fatalf("tier = %s, want %s", result.Tier, TierSignature)
	}
	if result.Snapshot.RuntimeID != "w-new" {
		t.Fatalf("matched %q, want w-new", result.Snapshot.RuntimeID)
	}
}

func TestSignatureRematchesRelaunchedWindow(t *testing.T) {
	// App relaunch: new runtime ID, new window number, same structure.
	frame := &window.Frame{X: 100, Y: 200, Width: 800, Height: 600}
	before := editorWindow("w-old", "Notes", 5, frame)
	after := editorWindow("w-relaunched", "Notes", 9, &window.Frame{X: 110, Y: 195, Width: 800, Height: 600})

	m := New(DefaultPolicy())
	result, ok := m.FindBestMatch(referenceFor(before), []window.Snapshot{after}, nil)
	if !ok {
		t.Fatal("expected a signature rematch")
	}
	if result.Tier != TierSignature {
		t.Fatalf("tier = %s, want %s", result.Tier, TierSignature)
	}
	if result.Snapshot.OSWindowNumber != 9 {
		t.Fatalf("matched window number %d, want 9", result.Snapshot.OSWindowNumber)
	}
}

func TestSignatureCollisionRefusesWithoutFallthrough(t *testing.T) {
	// The stricter-of-the-two behaviors: a signature collision is genuine
	// ambiguity and must not degrade into a scored guess, even when one
	// candidate's title would score well.
	frame := &window.Frame{X: 0, Y: 0, Width: 800, Height: 600}
	a := editorWindow("w-a", "Workspace", 0, frame)
	b := editorWindow("w-b", "Workspace", 0, &window.Frame{X: 8, Y: 4, Width: 800, Height: 600})

	ref := referenceFor(a)
	ref.LastKnownRuntimeID = "w-stale"

	m := New(DefaultPolicy())
	if _, ok := m.FindBestMatch(ref, []window.Snapshot{a, b}, nil); ok {
		t.Fatal("signature collision produced a match")
	}
}

func TestCandidatesFilteredByBundle(t *testing.T) {
	foreign := editorWindow("w-1", "Notes", 1, nil)
	foreign.OwnerBundleID = "com.other.app"

	ref := referenceFor(editorWindow("w-1", "Notes", 1, nil))
	m := New(DefaultPolicy())
	if _, ok := m.FindBestMatch(ref, []window.Snapshot{foreign}, nil); ok {
		t.Fatal("matched a window from a different bundle")
	}
}

func TestClaimedWindowsAreInvisible(t *testing.T) {
	target := editorWindow("w-1", "Notes", 1, &window.Frame{X: 0, Y: 0, Width: 800, Height: 600})
	claimed := map[string]struct{}{"w-1": {}}

	m := New(DefaultPolicy())
	if _, ok := m.FindBestMatch(referenceFor(target), []window.Snapshot{target}, claimed); ok {
		t.Fatal("matched an already-claimed window")
	}
}

func TestReferenceWithoutBundleMatchesNothing(t *testing.T) {
	m := New(DefaultPolicy())
	pool := []window.Snapshot{editorWindow("w-1", "Notes", 1, nil)}
	if _, ok := m.FindBestMatch(Reference{LastKnownRuntimeID: "w-1"}, pool, nil); ok {
		t.Fatal("matched without an owner bundle")
	}
}
