package store_test

import (
	"context"
	"testing"
	"time"

	"winpin/internal/pins"
	"winpin/internal/testsupport"
	"winpin/internal/window"
)

func sampleReference(id, title string, frame *window.Frame) pins.Reference {
	return pins.Reference{
		ID:                 id,
		OwnerBundleID:      "com.example.editor",
		OwnerAppName:       "Editor",
		Title:              title,
		OSWindowNumber:     5,
		LastKnownRuntimeID: "w-" + id,
		Role:               "AXWindow",
		Subrole:            "AXStandardWindow",
		Frame:              frame,
		NormalizedTitle:    window.NormalizeTitle(title),
		Signature:          window.BuildSignature("AXWindow", "AXStandardWindow", window.NormalizeTitle(title), frame),
		CreatedAt:          time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	refs := []pins.Reference{
		sampleReference("a", "Notes", &window.Frame{X: 100, Y: 200, Width: 800, Height: 600}),
		sampleReference("b", "Scratch", nil),
	}
	refs[1].CustomName = "Side Project"

	if err := s.SaveReferences(ctx, refs); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := s.LoadReferences(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d references, want 2", len(loaded))
	}

	if loaded[0].ID != "a" || loaded[1].ID != "b" {
		t.Fatalf("order not preserved: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if loaded[0].Frame == nil || *loaded[0].Frame != *refs[0].Frame {
		t.Fatalf("frame round trip: %+v", loaded[0].Frame)
	}
	if loaded[1].Frame != nil {
		t.Fatalf("absent frame resurrected: %+v", loaded[1].Frame)
	}
	if loaded[1].CustomName != "Side Project" {
		t.Fatalf("custom name round trip: %q", loaded[1].CustomName)
	}
	if loaded[0].Signature != refs[0].Signature {
		t.Fatalf("signature round trip: %q", loaded[0].Signature)
	}
	if !loaded[0].CreatedAt.Equal(refs[0].CreatedAt) {
		t.Fatalf("created_at round trip: %v", loaded[0].CreatedAt)
	}
}

func TestSaveReplacesWholeList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	initial := []pins.Reference{
		sampleReference("a", "Notes", nil),
		sampleReference("b", "Scratch", nil),
	}
	if err := s.SaveReferences(ctx, initial); err != nil {
		t.Fatalf("save initial: %v", err)
	}

	// Unpin "a" and reorder: the save is a full replacement.
	if err := s.SaveReferences(ctx, []pins.Reference{initial[1]}); err != nil {
		t.Fatalf("save replacement: %v", err)
	}
	loaded, err := s.LoadReferences(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "b" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestLoadFromEmptyDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	loaded, err := s.LoadReferences(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("fresh database returned %d references", len(loaded))
	}
}
