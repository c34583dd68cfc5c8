package daemon

import (
	"context"
	"errors"
	"testing"

	"winpin/internal/activate"
	"winpin/internal/enumerate"
	"winpin/internal/pins"
	"winpin/internal/testsupport"
	"winpin/internal/window"
)

func liveWindows() []window.Snapshot {
	return []window.Snapshot{
		{
			RuntimeID:      "w-1",
			OwnerBundleID:  "com.example.editor",
			OwnerAppName:   "Editor",
			Title:          "Notes",
			OSWindowNumber: 5,
			Role:           "AXWindow",
			Frame:          &window.Frame{X: 100, Y: 200, Width: 800, Height: 600},
		},
	}
}

func newTestDaemon(t *testing.T, source enumerate.Source, activator activate.Activator) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	manager := pins.NewManager(context.Background(), nil, nil)
	d, err := New(cfg, nil, manager, source, activator)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSecondInstanceRefused(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	manager := pins.NewManager(context.Background(), nil, nil)

	first, err := New(cfg, nil, manager, enumerate.NewStaticSource(nil), nil)
	if err != nil {
		t.Fatalf("first instance: %v", err)
	}
	defer first.Close()

	if _, err := New(cfg, nil, manager, enumerate.NewStaticSource(nil), nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("err = %v, want ErrAlreadyRunning", err)
	}
}

func TestRefreshNowFeedsManager(t *testing.T) {
	d := newTestDaemon(t, enumerate.NewStaticSource(liveWindows()), nil)

	if err := d.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	windows := d.Manager().Windows()
	if len(windows) != 1 || windows[0].RuntimeID != "w-1" {
		t.Fatalf("manager windows = %+v", windows)
	}
	if status := d.Status(); status.LastRefresh.IsZero() || status.LastError != "" {
		t.Fatalf("status = %+v", status)
	}
}

func TestRefreshNowRecordsFailure(t *testing.T) {
	d := newTestDaemon(t, enumerate.NewFailingSource(errors.New("helper crashed")), nil)

	if err := d.RefreshNow(context.Background()); err == nil {
		t.Fatal("expected an enumeration error")
	}
	if status := d.Status(); status.LastError == "" {
		t.Fatal("failure not surfaced in status")
	}

	// A later successful pass clears the recorded error.
	d.source = enumerate.NewStaticSource(liveWindows())
	if err := d.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if status := d.Status(); status.LastError != "" {
		t.Fatalf("stale error survived: %q", status.LastError)
	}
}

func TestActivateRoutesToActivator(t *testing.T) {
	recorder := &activate.Recorder{}
	d := newTestDaemon(t, enumerate.NewStaticSource(liveWindows()), recorder)
	ctx := context.Background()

	if err := d.RefreshNow(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	item, _, err := d.Manager().Pin(ctx, "w-1")
	if err != nil {
		t.Fatalf("pin: %v", err)
	}

	if err := d.Activate(ctx, item.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(recorder.Activated) != 1 || recorder.Activated[0].RuntimeID != "w-1" {
		t.Fatalf("recorded activations = %+v", recorder.Activated)
	}
}

func TestActivateMissingPin(t *testing.T) {
	recorder := &activate.Recorder{}
	d := newTestDaemon(t, enumerate.NewStaticSource(liveWindows()), recorder)
	ctx := context.Background()

	if err := d.RefreshNow(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	item, _, err := d.Manager().Pin(ctx, "w-1")
	if err != nil {
		t.Fatalf("pin: %v", err)
	}

	// The window vanishes; jumping to it must fail instead of activating a
	// stale identifier.
	d.source = enumerate.NewStaticSource(nil)
	if err := d.RefreshNow(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := d.Activate(ctx, item.ID); !errors.Is(err, ErrPinMissing) {
		t.Fatalf("err = %v, want ErrPinMissing", err)
	}
	if len(recorder.Activated) != 0 {
		t.Fatal("activator invoked for a missing pin")
	}
}

func TestRequestRefreshCoalesces(t *testing.T) {
	d := newTestDaemon(t, enumerate.NewStaticSource(nil), nil)

	// The trigger channel has capacity one; a burst must not block.
	for i := 0; i < 10; i++ {
		d.RequestRefresh()
	}
	if len(d.refreshCh) != 1 {
		t.Fatalf("queued triggers = %d, want 1", len(d.refreshCh))
	}
}
