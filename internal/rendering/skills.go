package rendering

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-studio/internal/types"
)

// SkillShare is one domain's slice of the skill distribution bar.
type SkillShare struct {
	Domain string
	Count  int
	// Share is count/total in [0, 1], unrounded.
	Share float64
}

// Percent is the unrounded percentage used for the bar width.
func (s SkillShare) Percent() float64 {
	return s.Share * 100
}

// Width is the CSS width of the bar segment.
func (s SkillShare) Width() string {
	return strconv.FormatFloat(s.Percent(), 'f', -1, 64) + "%"
}

// Label is the legend text, rounded to one decimal place.
func (s SkillShare) Label() string {
	return fmt.Sprintf("%.1f%%", s.Percent())
}

// SkillDistribution computes each domain's share of the total language count.
// When no languages are listed at all every share is zero.
func SkillDistribution(skills []types.Skill) []SkillShare {
	total := 0
	for _, s := range skills {
		total += len(s.Languages)
	}
	out := make([]SkillShare, 0, len(skills))
	for _, s := range skills {
		share := SkillShare{Domain: s.Domain, Count: len(s.Languages)}
		if total > 0 {
			share.Share = float64(share.Count) / float64(total)
		}
		out = append(out, share)
	}
	return out
}
