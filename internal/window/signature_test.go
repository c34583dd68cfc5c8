package window

import "testing"

func TestBuildSignatureComposesComponents(t *testing.T) {
	frame := &Frame{X: 100, Y: 200, Width: 800, Height: 600}
	got := BuildSignature("AXWindow", "AXStandardWindow", "project notes", frame)
	want := "AXWindow|AXStandardWindow|project notes|96,192,792,600"
	if got != want {
		t.Fatalf("signature = %q, want %q", got, want)
	}
}

func TestBuildSignatureDashesAbsentSubroleAndFrame(t *testing.T) {
	got := BuildSignature("AXWindow", "", "doc", nil)
	if got != "AXWindow|-|doc|-" {
		t.Fatalf("signature = %q", got)
	}
}

func TestBuildSignatureEmptyWithoutStructuralComponents(t *testing.T) {
	if got := BuildSignature("", "", "", nil); got != "" {
		t.Fatalf("expected empty signature, got %q", got)
	}
	// A bare title does not make a signature; those records go through the
	// scored fallback tier.
	if got := BuildSignature("", "", "notes", nil); got != "" {
		t.Fatalf("title-only input produced signature %q", got)
	}
}

func TestSignatureStableUnderSmallDrag(t *testing.T) {
	before := Snapshot{Role: "AXWindow", Title: "Notes", Frame: &Frame{X: 100, Y: 200, Width: 800, Height: 600}}
	after := before
	after.Frame = &Frame{X: 115, Y: 190, Width: 800, Height: 600}
	if before.Signature() != after.Signature() {
		t.Fatalf("small drag changed signature: %q vs %q", before.Signature(), after.Signature())
	}
}

func TestSignatureDivergesForDistantWindows(t *testing.T) {
	a := Snapshot{Role: "AXWindow", Title: "Notes", Frame: &Frame{X: 100, Y: 200, Width: 800, Height: 600}}
	b := Snapshot{Role: "AXWindow", Title: "Notes", Frame: &Frame{X: 400, Y: 200, Width: 800, Height: 600}}
	if a.Signature() == b.Signature() {
		t.Fatalf("distant windows share signature %q", a.Signature())
	}
}

func TestSnapToGridRoundsHalvesAwayFromZero(t *testing.T) {
	cases := []struct {
		value, grid, want int
	}{
		{0, 48, 0},
		{23, 48, 0},
		{24, 48, 48},
		{100, 48, 96},
		{-24, 48, -48},
		{-100, 48, -96},
		{11, 24, 0},
		{12, 24, 24},
	}
	for _, tc := range cases {
		if got := snapToGrid(tc.value, tc.grid); got != tc.want {
			t.Fatalf("snapToGrid(%d, %d) = %d, want %d", tc.value, tc.grid, got, tc.want)
		}
	}
}
