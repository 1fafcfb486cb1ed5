// Package style resolves concrete style values for a template from its
// configuration overrides and the template's theme defaults.
package style

import (
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/types"
)

// Role is the semantic text role a font size is resolved for.
type Role int

// Text roles.
const (
	RoleName Role = iota
	RoleSectionTitle
	RoleItemTitle
	RoleMeta
	RoleBody
)

// Roles lists every text role.
var Roles = []Role{RoleName, RoleSectionTitle, RoleItemTitle, RoleMeta, RoleBody}

// Theme is the per-template descriptor every default is drawn from.
type Theme struct {
	Variant   registry.Variant
	Steps     []string
	BaseSteps map[Role]string

	HeadingColors     types.HeadingColors
	MainHeadingColors types.HeadingColors

	BackgroundColor string
	SidebarColor    string
	LinkColor       string
	Border          Border
	SkillPalette    []string
	FontFamily      string
	Align           types.Align
	SectionGap      int
	SectionPaddingY string
}

var themes = map[registry.Variant]Theme{
	registry.Classic: {
		Variant: registry.Classic,
		Steps:   TokenSteps,
		BaseSteps: map[Role]string{
			RoleName: "3xl", RoleSectionTitle: "xl", RoleItemTitle: "lg", RoleMeta: "sm", RoleBody: "base",
		},
		HeadingColors:     types.HeadingColors{H1: "#111827", H2: "#1f2937", H3: "#374151", H4: "#6b7280"},
		MainHeadingColors: types.HeadingColors{H1: "#111827", H2: "#1f2937", H3: "#374151", H4: "#6b7280"},
		BackgroundColor:   "#ffffff",
		SidebarColor:      "#ffffff",
		LinkColor:         "#2563eb",
		Border:            Border{Width: "0px", Style: "solid", Color: "#d1d5db", Radius: "0px"},
		SkillPalette:      []string{"#2563eb", "#16a34a", "#d97706", "#dc2626", "#7c3aed", "#0891b2"},
		FontFamily:        "Georgia, serif",
		Align:             types.AlignLeft,
		SectionGap:        16,
		SectionPaddingY:   "2",
	},
	registry.Modern: {
		Variant: registry.Modern,
		Steps:   TokenSteps,
		BaseSteps: map[Role]string{
			RoleName: "4xl", RoleSectionTitle: "xl", RoleItemTitle: "lg", RoleMeta: "sm", RoleBody: "sm",
		},
		HeadingColors:     types.HeadingColors{H1: "#ffffff", H2: "#e5e7eb", H3: "#f3f4f6", H4: "#d1d5db"},
		MainHeadingColors: types.HeadingColors{H1: "#0f172a", H2: "#1e3a8a", H3: "#1e293b", H4: "#64748b"},
		BackgroundColor:   "#ffffff",
		SidebarColor:      "#1e293b",
		LinkColor:         "#38bdf8",
		Border:            Border{Width: "0px", Style: "solid", Color: "#e2e8f0", Radius: "0px"},
		SkillPalette:      []string{"#38bdf8", "#34d399", "#fbbf24", "#f87171", "#a78bfa", "#f472b6"},
		FontFamily:        "Inter, sans-serif",
		Align:             types.AlignLeft,
		SectionGap:        20,
		SectionPaddingY:   "3",
	},
	registry.Standard: {
		Variant: registry.Standard,
		Steps:   PixelSteps,
		BaseSteps: map[Role]string{
			RoleName: "32", RoleSectionTitle: "20", RoleItemTitle: "16", RoleMeta: "12", RoleBody: "14",
		},
		HeadingColors:     types.HeadingColors{H1: "#000000", H2: "#1f2937", H3: "#111827", H4: "#4b5563"},
		MainHeadingColors: types.HeadingColors{H1: "#000000", H2: "#1f2937", H3: "#111827", H4: "#4b5563"},
		BackgroundColor:   "#ffffff",
		SidebarColor:      "#ffffff",
		LinkColor:         "#1d4ed8",
		Border:            Border{Width: "1px", Style: "solid", Color: "#000000", Radius: "0px"},
		SkillPalette:      []string{"#1d4ed8", "#15803d", "#b45309", "#b91c1c", "#6d28d9", "#0e7490"},
		FontFamily:        "Arial, sans-serif",
		Align:             types.AlignJustify,
		SectionGap:        12,
		SectionPaddingY:   "1",
	},
	registry.Sidebar: {
		Variant: registry.Sidebar,
		Steps:   PixelSteps,
		BaseSteps: map[Role]string{
			RoleName: "28", RoleSectionTitle: "18", RoleItemTitle: "16", RoleMeta: "12", RoleBody: "14",
		},
		HeadingColors:     types.HeadingColors{H1: "#ffffff", H2: "#fde68a", H3: "#f9fafb", H4: "#e5e7eb"},
		MainHeadingColors: types.HeadingColors{H1: "#111827", H2: "#b45309", H3: "#1f2937", H4: "#6b7280"},
		BackgroundColor:   "#ffffff",
		SidebarColor:      "#374151",
		LinkColor:         "#f59e0b",
		Border:            Border{Width: "0px", Style: "solid", Color: "#e5e7eb", Radius: "8px"},
		SkillPalette:      []string{"#f59e0b", "#10b981", "#3b82f6", "#ef4444", "#8b5cf6", "#ec4899"},
		FontFamily:        "Roboto, sans-serif",
		Align:             types.AlignLeft,
		SectionGap:        16,
		SectionPaddingY:   "2",
	},
}

// ThemeFor returns the theme descriptor of a variant.
func ThemeFor(v registry.Variant) (Theme, error) {
	t, ok := themes[v]
	if !ok {
		return Theme{}, &registry.UnknownTemplateError{Variant: string(v)}
	}
	return t, nil
}
