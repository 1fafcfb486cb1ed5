// Package types provides type definitions for structured data used throughout the resume studio.
package types

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Align is the description alignment applied to every body block of a template.
type Align string

// Supported alignments.
const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// FontFamilies lists the font stacks a template may use. Family names are
// unquoted so the stack is a plain CSS value.
var FontFamilies = []string{
	"Georgia, serif",
	"Times New Roman, serif",
	"Garamond, serif",
	"Inter, sans-serif",
	"Arial, sans-serif",
	"Helvetica, Arial, sans-serif",
	"Roboto, sans-serif",
	"Open Sans, sans-serif",
	"Lato, sans-serif",
	"Courier New, monospace",
}

// HeadingLevel identifies one of the four heading tags a template styles.
type HeadingLevel int

// Heading levels.
const (
	H1 HeadingLevel = iota + 1
	H2
	H3
	H4
)

// HeadingLevels lists every heading level in tag order.
var HeadingLevels = []HeadingLevel{H1, H2, H3, H4}

func (l HeadingLevel) String() string {
	return fmt.Sprintf("h%d", int(l))
}

// ParseHeadingLevel converts "h1".."h4" into a HeadingLevel.
func ParseHeadingLevel(s string) (HeadingLevel, error) {
	for _, l := range HeadingLevels {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown heading level: %q", s)
}

// HeadingColors holds optional per-heading color overrides. Empty means unset.
type HeadingColors struct {
	H1 string `json:"h1,omitempty" validate:"omitempty,rgbhex"`
	H2 string `json:"h2,omitempty" validate:"omitempty,rgbhex"`
	H3 string `json:"h3,omitempty" validate:"omitempty,rgbhex"`
	H4 string `json:"h4,omitempty" validate:"omitempty,rgbhex"`
}

// Get returns the override for level, or "" when unset.
func (c HeadingColors) Get(level HeadingLevel) string {
	switch level {
	case H1:
		return c.H1
	case H2:
		return c.H2
	case H3:
		return c.H3
	case H4:
		return c.H4
	}
	return ""
}

// With returns a copy of c with level set to color.
func (c HeadingColors) With(level HeadingLevel, color string) HeadingColors {
	switch level {
	case H1:
		c.H1 = color
	case H2:
		c.H2 = color
	case H3:
		c.H3 = color
	case H4:
		c.H4 = color
	}
	return c
}

// TemplateConfig is the persisted customization document of one template
// variant for one user. Style fields left empty fall back to theme defaults.
type TemplateConfig struct {
	SectionOrder    []string        `json:"sectionOrder"`
	VisibleSections map[string]bool `json:"visibleSections"`
	FontScaleLevel  int             `json:"fontScaleLevel"`

	FontFamily       string `json:"fontFamily,omitempty" validate:"omitempty,fontfamily"`
	DescriptionAlign Align  `json:"descriptionAlign,omitempty" validate:"omitempty,oneof=left center right justify"`

	BackgroundColor string `json:"backgroundColor,omitempty" validate:"omitempty,rgbhex"`
	SidebarColor    string `json:"sidebarColor,omitempty" validate:"omitempty,rgbhex"`
	LinkColor       string `json:"linkColor,omitempty" validate:"omitempty,rgbhex"`

	BorderWidth  string `json:"borderWidth,omitempty" validate:"omitempty,pixels"`
	BorderStyle  string `json:"borderStyle,omitempty" validate:"omitempty,oneof=none solid dashed dotted double groove ridge inset outset"`
	BorderColor  string `json:"borderColor,omitempty" validate:"omitempty,rgbhex"`
	BorderRadius string `json:"borderRadius,omitempty" validate:"omitempty,pixels"`

	TextColors     HeadingColors     `json:"textColors"`
	MainTextColors HeadingColors     `json:"mainTextColors"`
	SkillColors    map[string]string `json:"skillColors,omitempty" validate:"dive,rgbhex"`

	SectionGap      *int   `json:"sectionGap,omitempty" validate:"omitempty,min=0,max=96"`
	SectionPaddingY string `json:"sectionPaddingY,omitempty" validate:"omitempty,oneof=0 1 2 3 4 6 8"`
}

// Clone returns a deep copy so updaters can never alias stored state.
func (c TemplateConfig) Clone() TemplateConfig {
	out := c
	out.SectionOrder = slices.Clone(c.SectionOrder)
	out.VisibleSections = maps.Clone(c.VisibleSections)
	out.SkillColors = maps.Clone(c.SkillColors)
	if c.SectionGap != nil {
		gap := *c.SectionGap
		out.SectionGap = &gap
	}
	return out
}

var (
	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	pixelsPattern   = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?px$`)
)

// configValidator accepts exactly what the persisted document schema accepts.
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pixels", func(fl validator.FieldLevel) bool {
		return pixelsPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fontfamily", func(fl validator.FieldLevel) bool {
		return slices.Contains(FontFamilies, fl.Field().String())
	})
	return v
}

// Validate checks the style field formats using the validator tags.
// Section invariants are checked by the registry.
func (c *TemplateConfig) Validate() error {
	return configValidator.Struct(c)
}
