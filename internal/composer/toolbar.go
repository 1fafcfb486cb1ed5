package composer

import (
	"context"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
)

// SetBackgroundColor sets the page background.
func (c *Composer) SetBackgroundColor(ctx context.Context, hex string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.BackgroundColor = hex
		return cfg
	})
}

// SetSidebarColor sets the sidebar column background.
func (c *Composer) SetSidebarColor(ctx context.Context, hex string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.SidebarColor = hex
		return cfg
	})
}

// SetLinkColor sets the anchor color.
func (c *Composer) SetLinkColor(ctx context.Context, hex string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.LinkColor = hex
		return cfg
	})
}

// SetFontFamily sets the font stack. An empty family restores the default.
func (c *Composer) SetFontFamily(ctx context.Context, family string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.FontFamily = family
		return cfg
	})
}

// SetFontScale sets the font scale level, clamped to the template bound.
func (c *Composer) SetFontScale(ctx context.Context, level int) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.FontScaleLevel = style.ClampLevel(level, c.def.MinScale, c.def.MaxScale)
		return cfg
	})
}

// StepFontScale moves the font scale level by delta. Steps past the bound
// leave the level at the bound.
func (c *Composer) StepFontScale(ctx context.Context, delta int) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.FontScaleLevel = style.ClampLevel(cfg.FontScaleLevel+delta, c.def.MinScale, c.def.MaxScale)
		return cfg
	})
}

// SetHeadingColor sets one heading level's color in a column. Ungrouped
// templates only have the sidebar (textColors) set.
func (c *Composer) SetHeadingColor(ctx context.Context, col style.Column, level types.HeadingLevel, hex string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		if col == style.ColumnMain && c.def.Grouped() {
			cfg.MainTextColors = cfg.MainTextColors.With(level, hex)
		} else {
			cfg.TextColors = cfg.TextColors.With(level, hex)
		}
		return cfg
	})
}

// SetBorder updates the border attributes that are non-empty in b.
func (c *Composer) SetBorder(ctx context.Context, b style.Border) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		if b.Width != "" {
			cfg.BorderWidth = b.Width
		}
		if b.Style != "" {
			cfg.BorderStyle = b.Style
		}
		if b.Color != "" {
			cfg.BorderColor = b.Color
		}
		if b.Radius != "" {
			cfg.BorderRadius = b.Radius
		}
		return cfg
	})
}

// SetSkillColor sets the color of a skill domain. An empty hex removes the
// override.
func (c *Composer) SetSkillColor(ctx context.Context, domain, hex string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		if cfg.SkillColors == nil {
			cfg.SkillColors = map[string]string{}
		}
		if hex == "" {
			delete(cfg.SkillColors, domain)
		} else {
			cfg.SkillColors[domain] = hex
		}
		return cfg
	})
}

// SetAlign sets the description alignment.
func (c *Composer) SetAlign(ctx context.Context, align types.Align) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.DescriptionAlign = align
		return cfg
	})
}

// SetSectionGap sets the vertical gap between sections in px.
func (c *Composer) SetSectionGap(ctx context.Context, px int) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.SectionGap = &px
		return cfg
	})
}

// SetSectionPadding sets the vertical section padding token.
func (c *Composer) SetSectionPadding(ctx context.Context, token string) (types.TemplateConfig, error) {
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		cfg.SectionPaddingY = token
		return cfg
	})
}

// ToggleSection flips the visibility of a section. The section keeps its
// place in the order.
func (c *Composer) ToggleSection(ctx context.Context, id string) (types.TemplateConfig, error) {
	if !c.def.Has(id) {
		return types.TemplateConfig{}, &registry.UnknownSectionError{Variant: c.variant, Section: id}
	}
	return c.patch(ctx, func(cfg types.TemplateConfig) types.TemplateConfig {
		if cfg.VisibleSections == nil {
			cfg.VisibleSections = map[string]bool{}
		}
		shown, ok := cfg.VisibleSections[id]
		if !ok {
			shown = true
		}
		cfg.VisibleSections[id] = !shown
		return cfg
	})
}

// Reset restores the registry defaults and drops every style override.
func (c *Composer) Reset(ctx context.Context) (types.TemplateConfig, error) {
	defaults, err := registry.DefaultConfig(c.variant)
	if err != nil {
		return types.TemplateConfig{}, err
	}
	return c.patch(ctx, func(types.TemplateConfig) types.TemplateConfig {
		return defaults.Clone()
	})
}
