package style

import (
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/types"
)

// Column selects which heading color set applies. Ungrouped templates only
// use ColumnSidebar's set (textColors).
type Column int

// Columns.
const (
	ColumnSidebar Column = iota
	ColumnMain
)

// Border is a resolved border declaration.
type Border struct {
	Width  string
	Style  string
	Color  string
	Radius string
}

var paddingTokens = map[string]string{
	"0": "0",
	"1": "0.25rem",
	"2": "0.5rem",
	"3": "0.75rem",
	"4": "1rem",
	"6": "1.5rem",
	"8": "2rem",
}

// Resolver resolves style slots for one template configuration. Every slot
// has an unconditional theme default, so no method fails.
type Resolver struct {
	theme    Theme
	cfg      types.TemplateConfig
	minScale int
	maxScale int
}

// NewResolver builds a resolver for variant v and its configuration.
func NewResolver(v registry.Variant, cfg types.TemplateConfig) (*Resolver, error) {
	theme, err := ThemeFor(v)
	if err != nil {
		return nil, err
	}
	def, err := registry.Lookup(v)
	if err != nil {
		return nil, err
	}
	return &Resolver{theme: theme, cfg: cfg, minScale: def.MinScale, maxScale: def.MaxScale}, nil
}

// Theme returns the underlying theme descriptor.
func (r *Resolver) Theme() Theme {
	return r.theme
}

// Level returns the configured font scale level clamped to the template bound.
func (r *Resolver) Level() int {
	return ClampLevel(r.cfg.FontScaleLevel, r.minScale, r.maxScale)
}

// FontSize resolves the size of a text role at the current scale level.
func (r *Resolver) FontSize(role Role) Size {
	base, ok := r.theme.BaseSteps[role]
	if !ok {
		base = r.theme.BaseSteps[RoleBody]
	}
	return sizeOf(Scale(r.theme.Steps, base, r.Level()))
}

// HeadingColor resolves a heading color in the sidebar (or only) column.
func (r *Resolver) HeadingColor(level types.HeadingLevel) string {
	return pick(r.cfg.TextColors.Get(level), r.theme.HeadingColors.Get(level))
}

// MainHeadingColor resolves a heading color in the main column.
func (r *Resolver) MainHeadingColor(level types.HeadingLevel) string {
	return pick(r.cfg.MainTextColors.Get(level), r.theme.MainHeadingColors.Get(level))
}

// ColumnHeadingColor dispatches to HeadingColor or MainHeadingColor.
func (r *Resolver) ColumnHeadingColor(col Column, level types.HeadingLevel) string {
	if col == ColumnMain {
		return r.MainHeadingColor(level)
	}
	return r.HeadingColor(level)
}

// BackgroundColor resolves the page background.
func (r *Resolver) BackgroundColor() string {
	return pick(r.cfg.BackgroundColor, r.theme.BackgroundColor)
}

// SidebarColor resolves the sidebar column background.
func (r *Resolver) SidebarColor() string {
	return pick(r.cfg.SidebarColor, r.theme.SidebarColor)
}

// LinkColor resolves the anchor color.
func (r *Resolver) LinkColor() string {
	return pick(r.cfg.LinkColor, r.theme.LinkColor)
}

// Border resolves each border attribute independently.
func (r *Resolver) Border() Border {
	return Border{
		Width:  pick(r.cfg.BorderWidth, r.theme.Border.Width),
		Style:  pick(r.cfg.BorderStyle, r.theme.Border.Style),
		Color:  pick(r.cfg.BorderColor, r.theme.Border.Color),
		Radius: pick(r.cfg.BorderRadius, r.theme.Border.Radius),
	}
}

// SkillColor resolves the color of a skill domain; unset domains cycle
// through the theme palette by position.
func (r *Resolver) SkillColor(domain string, index int) string {
	if c := r.cfg.SkillColors[domain]; c != "" {
		return c
	}
	palette := r.theme.SkillPalette
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

// FontFamily resolves the font stack.
func (r *Resolver) FontFamily() string {
	return pick(r.cfg.FontFamily, r.theme.FontFamily)
}

// Align resolves the description alignment.
func (r *Resolver) Align() types.Align {
	switch r.cfg.DescriptionAlign {
	case types.AlignLeft, types.AlignCenter, types.AlignRight, types.AlignJustify:
		return r.cfg.DescriptionAlign
	}
	return r.theme.Align
}

// TextAlign is the CSS text-align value for paragraph blocks.
func (r *Resolver) TextAlign() string {
	return string(r.Align())
}

// RowJustify is the justify-content value for two-column header rows such
// as company/role against dates. Justify maps to space-between because the
// rows are flex layouts, not paragraphs.
func (r *Resolver) RowJustify() string {
	switch r.Align() {
	case types.AlignCenter:
		return "center"
	case types.AlignRight:
		return "flex-end"
	case types.AlignJustify:
		return "space-between"
	}
	return "flex-start"
}

// SectionGap resolves the vertical gap between sections in px.
func (r *Resolver) SectionGap() int {
	if r.cfg.SectionGap != nil && *r.cfg.SectionGap >= 0 {
		return *r.cfg.SectionGap
	}
	return r.theme.SectionGap
}

// SectionPaddingY resolves the vertical section padding as a CSS length.
func (r *Resolver) SectionPaddingY() string {
	if css, ok := paddingTokens[r.cfg.SectionPaddingY]; ok {
		return css
	}
	return paddingTokens[r.theme.SectionPaddingY]
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
