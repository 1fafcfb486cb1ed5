package style

import (
	"slices"
	"strconv"
)

// TokenSteps are the semantic size tokens used by token-scaled themes.
var TokenSteps = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl"}

var tokenCSS = map[string]string{
	"xs":   "0.75rem",
	"sm":   "0.875rem",
	"base": "1rem",
	"lg":   "1.125rem",
	"xl":   "1.25rem",
	"2xl":  "1.5rem",
	"3xl":  "1.875rem",
	"4xl":  "2.25rem",
	"5xl":  "3rem",
	"6xl":  "3.75rem",
}

// PixelSteps are the explicit pixel sizes 4, 6, 8, ... 128 used by
// pixel-scaled themes.
var PixelSteps = pixelSteps(4, 128, 2)

func pixelSteps(from, to, step int) []string {
	out := make([]string, 0, (to-from)/step+1)
	for px := from; px <= to; px += step {
		out = append(out, strconv.Itoa(px))
	}
	return out
}

// Scale moves base by level positions within steps, clamping at both ends of
// the list. A base that is not in steps is returned unchanged.
func Scale(steps []string, base string, level int) string {
	idx := slices.Index(steps, base)
	if idx < 0 {
		return base
	}
	idx = clamp(idx+level, 0, len(steps)-1)
	return steps[idx]
}

// ClampLevel bounds a font scale level to [min, max].
func ClampLevel(level, min, max int) int {
	return clamp(level, min, max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Size is a resolved font size step together with its CSS value.
type Size struct {
	Step string
	CSS  string
}

func sizeOf(step string) Size {
	if css, ok := tokenCSS[step]; ok {
		return Size{Step: step, CSS: css}
	}
	if _, err := strconv.Atoi(step); err == nil {
		return Size{Step: step, CSS: step + "px"}
	}
	return Size{Step: step, CSS: step}
}
