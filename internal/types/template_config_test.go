package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateConfig_Clone(t *testing.T) {
	gap := 16
	orig := TemplateConfig{
		SectionOrder:    []string{"name", "skills"},
		VisibleSections: map[string]bool{"name": true, "skills": false},
		SkillColors:     map[string]string{"Go": "#00add8"},
		SectionGap:      &gap,
	}

	clone := orig.Clone()
	clone.SectionOrder[0] = "skills"
	clone.VisibleSections["name"] = false
	clone.SkillColors["Go"] = "#000000"
	*clone.SectionGap = 32

	assert.Equal(t, "name", orig.SectionOrder[0])
	assert.True(t, orig.VisibleSections["name"])
	assert.Equal(t, "#00add8", orig.SkillColors["Go"])
	assert.Equal(t, 16, *orig.SectionGap)
}

func TestTemplateConfig_Validate(t *testing.T) {
	gap := 24
	valid := TemplateConfig{
		DescriptionAlign: AlignJustify,
		BackgroundColor:  "#fff",
		BorderWidth:      "2px",
		BorderStyle:      "dashed",
		FontFamily:       "Times New Roman, serif",
		TextColors:       HeadingColors{H1: "#123456"},
		SkillColors:      map[string]string{"Go": "#00add8"},
		SectionGap:       &gap,
		SectionPaddingY:  "4",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *TemplateConfig)
	}{
		{"color name", func(c *TemplateConfig) { c.LinkColor = "blue" }},
		{"heading color", func(c *TemplateConfig) { c.MainTextColors.H3 = "#12345" }},
		{"alpha color", func(c *TemplateConfig) { c.BackgroundColor = "#11223344" }},
		{"short alpha color", func(c *TemplateConfig) { c.BorderColor = "#1234" }},
		{"bare px", func(c *TemplateConfig) { c.BorderRadius = "px" }},
		{"negative px", func(c *TemplateConfig) { c.BorderWidth = "-2px" }},
		{"quoted font", func(c *TemplateConfig) { c.FontFamily = `"Times New Roman", serif` }},
		{"unknown font", func(c *TemplateConfig) { c.FontFamily = "Comic Sans MS, cursive" }},
		{"skill color", func(c *TemplateConfig) { c.SkillColors["Rust"] = "orange" }},
		{"align", func(c *TemplateConfig) { c.DescriptionAlign = "middle" }},
		{"border style", func(c *TemplateConfig) { c.BorderStyle = "wavy" }},
		{"border width unit", func(c *TemplateConfig) { c.BorderWidth = "2em" }},
		{"gap", func(c *TemplateConfig) { g := 200; c.SectionGap = &g }},
		{"padding token", func(c *TemplateConfig) { c.SectionPaddingY = "5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid.Clone()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHeadingColors(t *testing.T) {
	var c HeadingColors
	c = c.With(H2, "#ff0000").With(H4, "#00ff00")

	assert.Equal(t, "", c.Get(H1))
	assert.Equal(t, "#ff0000", c.Get(H2))
	assert.Equal(t, "#00ff00", c.Get(H4))
	assert.Equal(t, "", c.Get(HeadingLevel(9)))
}

func TestParseHeadingLevel(t *testing.T) {
	for _, l := range HeadingLevels {
		got, err := ParseHeadingLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseHeadingLevel("h5")
	assert.Error(t, err)
}

func TestResumeData_Normalize(t *testing.T) {
	r := (&ResumeData{Skills: []Skill{{Domain: "Go"}}}).Normalize()

	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Achievements)
	assert.NotNil(t, r.Skills[0].Languages)
	assert.False(t, r.Education.HasSchooling())

	r.Education.Board = "CBSE"
	assert.True(t, r.Education.HasSchooling())
}
