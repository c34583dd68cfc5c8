package window

import (
	"strconv"
	"strings"
)

// Signature coarsening grids. Position snaps to 48-unit cells and size to
// 24-unit cells so small drags and resizes do not change the signature while
// windows at meaningfully different locations still diverge.
const (
	positionGrid = 48
	sizeGrid     = 24
)

// BuildSignature composes the mid-confidence identity fingerprint:
// role | subrole | normalized title | bucketed frame. Absent subrole and
// frame render as "-". A signature needs at least one structural component
// (role, subrole, or frame); a bare title is not a signature, and title-only
// records are served by the scored fallback tier instead. Returns "" when no
// signature is computable.
func BuildSignature(role, subrole, normalizedTitle string, frame *Frame) string {
	role = strings.TrimSpace(role)
	subrole = strings.TrimSpace(subrole)
	if role == "" && subrole == "" && frame == nil {
		return ""
	}
	parts := []string{
		role,
		orDash(subrole),
		normalizedTitle,
		bucketFrame(frame),
	}
	return strings.Join(parts, "|")
}

func bucketFrame(frame *Frame) string {
	if frame == nil {
		return "-"
	}
	var b strings.Builder
	b.Grow(32)
	b.WriteString(strconv.Itoa(snapToGrid(frame.X, positionGrid)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(snapToGrid(frame.Y, positionGrid)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(snapToGrid(frame.Width, sizeGrid)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(snapToGrid(frame.Height, sizeGrid)))
	return b.String()
}

// snapToGrid rounds to the nearest multiple of grid, with halves rounding
// away from zero so the bucket is stable for negative coordinates too.
func snapToGrid(value, grid int) int {
	if grid <= 0 {
		return value
	}
	half := grid / 2
	if value >= 0 {
		return ((value + half) / grid) * grid
	}
	return -(((-value + half) / grid) * grid)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
