// Package registry holds the static per-template section metadata: the
// canonical section identifiers, their grouping, and default order and
// visibility.
package registry

import (
	"fmt"
	"slices"

	"github.com/jonathan/resume-studio/internal/types"
)

// Variant identifies a template layout.
type Variant string

// Template variants.
const (
	Classic  Variant = "classic"
	Modern   Variant = "modern"
	Standard Variant = "standard"
	Sidebar  Variant = "sidebar"
)

// Section identifiers.
const (
	SectionName         = "name"
	SectionDetails      = "details"
	SectionDescription  = "description"
	SectionEducation    = "education"
	SectionSkills       = "skills"
	SectionProjects     = "projects"
	SectionExperience   = "experience"
	SectionAchievements = "achievements"
)

// Group names for two-column templates.
const (
	GroupSidebar = "sidebar"
	GroupMain    = "main"
)

// AllSections lists every section kind the renderer knows.
var AllSections = []string{
	SectionName, SectionDetails, SectionDescription, SectionEducation,
	SectionSkills, SectionProjects, SectionExperience, SectionAchievements,
}

// GroupDefinition is one independently ordered column.
type GroupDefinition struct {
	Name     string
	Sections []string
}

// TemplateDefinition is the registry entry for a variant.
type TemplateDefinition struct {
	Variant  Variant
	Title    string
	CacheKey string
	// Order is the default section order. For grouped templates it is the
	// concatenation of the groups.
	Order  []string
	Groups []GroupDefinition
	// MinScale and MaxScale bound the font scale level.
	MinScale int
	MaxScale int
}

// Defaults is the initial order and visibility of a variant.
type Defaults struct {
	Order      []string
	Visibility map[string]bool
}

var templates = map[Variant]TemplateDefinition{
	Classic: {
		Variant:  Classic,
		Title:    "Classic",
		CacheKey: "classicTemplateConfig",
		Order: []string{
			SectionName, SectionDetails, SectionDescription, SectionEducation,
			SectionSkills, SectionProjects, SectionExperience, SectionAchievements,
		},
		MinScale: -2,
		MaxScale: 3,
	},
	Modern: {
		Variant:  Modern,
		Title:    "Modern",
		CacheKey: "modernTemplateConfig",
		Groups: []GroupDefinition{
			{Name: GroupSidebar, Sections: []string{SectionName, SectionDetails, SectionDescription, SectionSkills}},
			{Name: GroupMain, Sections: []string{SectionExperience, SectionProjects, SectionEducation, SectionAchievements}},
		},
		MinScale: -2,
		MaxScale: 3,
	},
	Standard: {
		Variant:  Standard,
		Title:    "Standard",
		CacheKey: "standardTemplateConfig",
		Order: []string{
			SectionName, SectionDetails, SectionDescription, SectionExperience,
			SectionProjects, SectionSkills, SectionEducation, SectionAchievements,
		},
		MinScale: -10,
		MaxScale: 10,
	},
	Sidebar: {
		Variant:  Sidebar,
		Title:    "Sidebar",
		CacheKey: "sidebarTemplateConfig",
		Groups: []GroupDefinition{
			{Name: GroupSidebar, Sections: []string{SectionName, SectionDetails, SectionSkills, SectionEducation}},
			{Name: GroupMain, Sections: []string{SectionDescription, SectionExperience, SectionProjects, SectionAchievements}},
		},
		MinScale: -10,
		MaxScale: 10,
	},
}

func init() {
	for v, def := range templates {
		if len(def.Groups) > 0 {
			def.Order = nil
			for _, g := range def.Groups {
				def.Order = append(def.Order, g.Sections...)
			}
			templates[v] = def
		}
	}
}

// Variants returns every registered variant in display order.
func Variants() []Variant {
	return []Variant{Classic, Modern, Standard, Sidebar}
}

// ParseVariant converts a string into a registered Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, ok := templates[v]; !ok {
		return "", &UnknownTemplateError{Variant: s}
	}
	return v, nil
}

// Lookup returns the definition of a variant.
func Lookup(v Variant) (TemplateDefinition, error) {
	def, ok := templates[v]
	if !ok {
		return TemplateDefinition{}, &UnknownTemplateError{Variant: string(v)}
	}
	return def, nil
}

// GetDefaults returns fresh copies of the default order and visibility.
func GetDefaults(v Variant) (Defaults, error) {
	def, err := Lookup(v)
	if err != nil {
		return Defaults{}, err
	}
	vis := make(map[string]bool, len(def.Order))
	for _, id := range def.Order {
		vis[id] = true
	}
	return Defaults{Order: slices.Clone(def.Order), Visibility: vis}, nil
}

// Sections returns the canonical section set of a variant in default order.
func Sections(v Variant) ([]string, error) {
	def, err := Lookup(v)
	if err != nil {
		return nil, err
	}
	return slices.Clone(def.Order), nil
}

// Grouped reports whether the variant partitions sections into groups.
func (d TemplateDefinition) Grouped() bool {
	return len(d.Groups) > 0
}

// Has reports whether id belongs to the variant.
func (d TemplateDefinition) Has(id string) bool {
	return slices.Contains(d.Order, id)
}

// GroupOf returns the group of id, or "" for ungrouped templates.
func (d TemplateDefinition) GroupOf(id string) (string, error) {
	if !d.Has(id) {
		return "", &UnknownSectionError{Variant: d.Variant, Section: id}
	}
	for _, g := range d.Groups {
		if slices.Contains(g.Sections, id) {
			return g.Name, nil
		}
	}
	return "", nil
}

// GetGroup returns the group a section belongs to, or "" when the variant is
// not group-partitioned.
func GetGroup(v Variant, id string) (string, error) {
	def, err := Lookup(v)
	if err != nil {
		return "", err
	}
	return def.GroupOf(id)
}

// CacheKey returns the fixed local cache key of a variant.
func CacheKey(v Variant) (string, error) {
	def, err := Lookup(v)
	if err != nil {
		return "", err
	}
	return def.CacheKey, nil
}

// DefaultConfig returns a configuration holding the registry defaults and
// empty style maps.
func DefaultConfig(v Variant) (types.TemplateConfig, error) {
	d, err := GetDefaults(v)
	if err != nil {
		return types.TemplateConfig{}, err
	}
	return types.TemplateConfig{
		SectionOrder:    d.Order,
		VisibleSections: d.Visibility,
		SkillColors:     map[string]string{},
	}, nil
}

// Validate checks the section and scale invariants of cfg for variant v.
func Validate(v Variant, cfg types.TemplateConfig) error {
	def, err := Lookup(v)
	if err != nil {
		return err
	}

	var issues []string
	seen := make(map[string]bool, len(cfg.SectionOrder))
	for _, id := range cfg.SectionOrder {
		if !def.Has(id) {
			issues = append(issues, fmt.Sprintf("unknown section %q in sectionOrder", id))
			continue
		}
		if seen[id] {
			issues = append(issues, fmt.Sprintf("duplicate section %q in sectionOrder", id))
		}
		seen[id] = true
	}
	for _, id := range def.Order {
		if !seen[id] {
			issues = append(issues, fmt.Sprintf("section %q missing from sectionOrder", id))
		}
	}
	for id := range cfg.VisibleSections {
		if !def.Has(id) {
			issues = append(issues, fmt.Sprintf("unknown section %q in visibleSections", id))
		}
	}
	if cfg.FontScaleLevel < def.MinScale || cfg.FontScaleLevel > def.MaxScale {
		issues = append(issues, fmt.Sprintf("fontScaleLevel %d outside [%d, %d]", cfg.FontScaleLevel, def.MinScale, def.MaxScale))
	}

	if len(issues) > 0 {
		return &ValidationError{Variant: v, Issues: issues}
	}
	return nil
}

// Normalize repairs a stored configuration against the current registry:
// unknown and duplicate ids are dropped, missing ids are appended in default
// order, every section gets a visibility entry (default true) and the scale
// level is clamped. It reports whether anything changed.
func Normalize(v Variant, cfg types.TemplateConfig) (types.TemplateConfig, bool, error) {
	def, err := Lookup(v)
	if err != nil {
		return cfg, false, err
	}
	out := cfg.Clone()
	changed := false

	order := make([]string, 0, len(def.Order))
	seen := make(map[string]bool, len(def.Order))
	for _, id := range cfg.SectionOrder {
		if def.Has(id) && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, id := range def.Order {
		if !seen[id] {
			order = append(order, id)
		}
	}
	if !slices.Equal(order, cfg.SectionOrder) {
		changed = true
	}
	out.SectionOrder = order

	vis := make(map[string]bool, len(def.Order))
	for _, id := range def.Order {
		shown, ok := cfg.VisibleSections[id]
		if !ok {
			shown = true
			changed = true
		}
		vis[id] = shown
	}
	if len(cfg.VisibleSections) != len(vis) {
		changed = true
	}
	out.VisibleSections = vis

	if out.FontScaleLevel < def.MinScale {
		out.FontScaleLevel = def.MinScale
		changed = true
	}
	if out.FontScaleLevel > def.MaxScale {
		out.FontScaleLevel = def.MaxScale
		changed = true
	}
	if out.SkillColors == nil {
		out.SkillColors = map[string]string{}
	}

	return out, changed, nil
}
