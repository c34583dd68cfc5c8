package main

import (
	"fmt"
	"strconv"
	"strings"

	"winpin/internal/match"
	"winpin/internal/pins"
	"winpin/internal/window"
)

// resolvePinItem maps a user-supplied selector to one reconciled pin. The
// selector is a 1-based list position, a full pin ID, or a unique ID prefix.
func resolvePinItem(items []pins.Item, selector string) (pins.Item, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return pins.Item{}, fmt.Errorf("empty pin selector")
	}
	if len(items) == 0 {
		return pins.Item{}, fmt.Errorf("no pinned windows")
	}

	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx < 1 || idx > len(items) {
			return pins.Item{}, fmt.Errorf("pin index %d out of range (1-%d)", idx, len(items))
		}
		return items[idx-1], nil
	}

	var matches []pins.Item
	for _, item := range items {
		if item.ID == trimmed {
			return item, nil
		}
		if strings.HasPrefix(item.ID, trimmed) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return pins.Item{}, fmt.Errorf("no pin matches %q", trimmed)
	case 1:
		return matches[0], nil
	default:
		return pins.Item{}, fmt.Errorf("pin selector %q is ambiguous (%d matches); use a longer prefix", trimmed, len(matches))
	}
}

// resolveWindow maps a selector to one live window. The selector is a 1-based
// position in the windows listing, an exact runtime ID, or a unique
// case-insensitive title substring.
func resolveWindow(windows []window.Snapshot, selector string) (window.Snapshot, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return window.Snapshot{}, fmt.Errorf("empty window selector")
	}
	if len(windows) == 0 {
		return window.Snapshot{}, fmt.Errorf("no live windows; run `winpin refresh` first")
	}

	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx < 1 || idx > len(windows) {
			return window.Snapshot{}, fmt.Errorf("window index %d out of range (1-%d)", idx, len(windows))
		}
		return windows[idx-1], nil
	}

	for _, snapshot := range windows {
		if snapshot.RuntimeID == trimmed {
			return snapshot, nil
		}
	}

	needle := strings.ToLower(trimmed)
	var matches []window.Snapshot
	for _, snapshot := range windows {
		if strings.Contains(strings.ToLower(snapshot.Title), needle) {
			matches = append(matches, snapshot)
		}
	}
	switch len(matches) {
	case 0:
		return window.Snapshot{}, fmt.Errorf("no window matches %q", trimmed)
	case 1:
		return matches[0], nil
	default:
		return window.Snapshot{}, fmt.Errorf("window selector %q is ambiguous (%d matches); use the runtime ID", trimmed, len(matches))
	}
}

func formatFrame(f *window.Frame) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d @ %d,%d", f.Width, f.Height, f.X, f.Y)
}

func itemState(item pins.Item) string {
	if item.IsMissing() {
		return "missing"
	}
	return "visible"
}

func tierLabel(tier match.Tier) string {
	if tier == match.TierNone {
		return "-"
	}
	return tier.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
