package window

import "testing"

func TestAssignFallbackIDsDeterministic(t *testing.T) {
	build := func() []Snapshot {
		return []Snapshot{
			{OwnerPID: 42, Title: "Editor", Frame: &Frame{X: 0, Y: 0, Width: 800, Height: 600}},
			{OwnerPID: 42, Title: "Editor", Frame: &Frame{X: 0, Y: 0, Width: 800, Height: 600}},
			{OwnerPID: 42, Title: "Terminal", Frame: &Frame{X: 900, Y: 0, Width: 800, Height: 600}},
		}
	}

	first := build()
	second := build()
	AssignFallbackIDs(first)
	AssignFallbackIDs(second)

	for i := range first {
		if first[i].RuntimeID == "" {
			t.Fatalf("snapshot %d left without runtime ID", i)
		}
		if !IsFallbackID(first[i].RuntimeID) {
			t.Fatalf("snapshot %d ID %q not tagged as fallback", i, first[i].RuntimeID)
		}
		if first[i].RuntimeID != second[i].RuntimeID {
			t.Fatalf("fallback IDs not reproducible: %q vs %q", first[i].RuntimeID, second[i].RuntimeID)
		}
	}
}

func TestAssignFallbackIDsDistinguishesSiblings(t *testing.T) {
	snapshots := []Snapshot{
		{OwnerPID: 42, Title: "Editor"},
		{OwnerPID: 42, Title: "Editor"},
	}
	AssignFallbackIDs(snapshots)
	if snapshots[0].RuntimeID == snapshots[1].RuntimeID {
		t.Fatalf("same-fingerprint siblings share ID %q", snapshots[0].RuntimeID)
	}
}

func TestAssignFallbackIDsLeavesRealIDsAlone(t *testing.T) {
	snapshots := []Snapshot{
		{RuntimeID: "real-1", OwnerPID: 42, Title: "Editor"},
		{OwnerPID: 42, Title: "Editor"},
	}
	AssignFallbackIDs(snapshots)
	if snapshots[0].RuntimeID != "real-1" {
		t.Fatalf("helper-provided ID overwritten: %q", snapshots[0].RuntimeID)
	}
	if !IsFallbackID(snapshots[1].RuntimeID) {
		t.Fatalf("missing ID not filled: %q", snapshots[1].RuntimeID)
	}
}

func TestIsFallbackID(t *testing.T) {
	if IsFallbackID("real-window-7") {
		t.Fatal("real ID misclassified as fallback")
	}
	if !IsFallbackID("fallback:deadbeefdeadbeef:0") {
		t.Fatal("fallback ID not recognized")
	}
}
