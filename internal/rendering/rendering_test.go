package rendering

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverFor(t *testing.T, v registry.Variant, mutate func(*types.TemplateConfig)) *style.Resolver {
	t.Helper()
	cfg, err := registry.DefaultConfig(v)
	require.NoError(t, err)
	if mutate != nil {
		mutate(&cfg)
	}
	res, err := style.NewResolver(v, cfg)
	require.NoError(t, err)
	return res
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestSkillDistribution(t *testing.T) {
	shares := SkillDistribution([]types.Skill{
		{Domain: "Frontend", Languages: []string{"JS", "TS", "CSS"}},
		{Domain: "Backend", Languages: []string{"Go"}},
	})
	require.Len(t, shares, 2)
	assert.Equal(t, "75%", shares[0].Width())
	assert.Equal(t, "75.0%", shares[0].Label())
	assert.Equal(t, "25%", shares[1].Width())
	assert.Equal(t, "25.0%", shares[1].Label())
}

func TestSkillDistribution_Unrounded(t *testing.T) {
	shares := SkillDistribution([]types.Skill{
		{Domain: "A", Languages: []string{"x"}},
		{Domain: "B", Languages: []string{"y", "z"}},
	})
	assert.InDelta(t, 33.333333, shares[0].Percent(), 0.0001)
	assert.Equal(t, "33.3%", shares[0].Label())
	assert.Equal(t, "66.7%", shares[1].Label())
	assert.True(t, strings.HasPrefix(shares[0].Width(), "33.33333"))
}

func TestSkillDistribution_ZeroTotal(t *testing.T) {
	shares := SkillDistribution([]types.Skill{{Domain: "Empty"}})
	require.Len(t, shares, 1)
	assert.Equal(t, "0%", shares[0].Width())
	assert.Equal(t, "0.0%", shares[0].Label())
	assert.Empty(t, SkillDistribution(nil))
}

func TestSanitize(t *testing.T) {
	out := Sanitize(`<script>alert(1)</script><b>Hello</b>`)
	assert.Contains(t, out, "<b>Hello</b>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")

	out = Sanitize(`<p onclick="x()" style="color:red">Hi <a href="javascript:alert(1)">x</a> <a href="https://example.com">ok</a></p>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "style=")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Equal(t, "<ul><li>a</li></ul>", Sanitize("<ul><li>a</li></ul>"))

	assert.Equal(t, "", Sanitize("   "))
}

func TestRender_Skills(t *testing.T) {
	resume := &types.ResumeData{Skills: []types.Skill{
		{Domain: "Frontend", Languages: []string{"JS", "TS", "CSS"}},
		{Domain: "Backend", Languages: []string{"Go"}},
	}}
	res := resolverFor(t, registry.Classic, func(c *types.TemplateConfig) {
		c.SkillColors = map[string]string{"Backend": "#abcdef"}
	})

	block, err := NewRenderer().Render(registry.SectionSkills, resume, res, style.ColumnSidebar)
	require.NoError(t, err)
	assert.False(t, block.Empty)

	doc := parse(t, string(block.HTML))
	segments := doc.Find(".skill-segment")
	require.Equal(t, 2, segments.Length())
	assert.Contains(t, segments.Eq(0).AttrOr("style", ""), "width: 75%")
	assert.Contains(t, segments.Eq(1).AttrOr("style", ""), "width: 25%")
	assert.Contains(t, segments.Eq(1).AttrOr("style", ""), "#abcdef")
	assert.Equal(t, "75.0%", doc.Find(`.skill-legend li[data-domain="Frontend"] .percent`).Text())
	assert.Equal(t, "25.0%", doc.Find(`.skill-legend li[data-domain="Backend"] .percent`).Text())
	assert.Contains(t, doc.Find(".skill-list").Text(), "JS, TS, CSS")
}

func TestRender_DescriptionSanitized(t *testing.T) {
	resume := &types.ResumeData{Description: `<script>alert(1)</script><b>Hello</b>`}
	block, err := NewRenderer().Render(registry.SectionDescription, resume, resolverFor(t, registry.Standard, nil), style.ColumnSidebar)
	require.NoError(t, err)

	assert.Contains(t, string(block.HTML), "<b>Hello</b>")
	doc := parse(t, string(block.HTML))
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "justify", styleValue(doc.Find(".rich").AttrOr("style", ""), "text-align"))
}

func TestRender_EmptySections(t *testing.T) {
	rd := NewRenderer()
	res := resolverFor(t, registry.Sidebar, nil)
	for _, id := range registry.AllSections {
		t.Run(id, func(t *testing.T) {
			block, err := rd.Render(id, nil, res, style.ColumnMain)
			require.NoError(t, err)
			assert.True(t, block.Empty)
			assert.Equal(t, id, block.ID)

			doc := parse(t, string(block.HTML))
			sel := doc.Find(`section[data-section="` + id + `"]`)
			require.Equal(t, 1, sel.Length())
			assert.True(t, sel.HasClass("section-empty"))
			assert.Equal(t, 0, sel.Children().Length())
		})
	}
}

func TestRender_UnknownSection(t *testing.T) {
	_, err := NewRenderer().Render("photo", &types.ResumeData{}, resolverFor(t, registry.Classic, nil), style.ColumnSidebar)
	var unknown *registry.UnknownSectionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "photo", unknown.Section)
}

func TestRender_Experience(t *testing.T) {
	resume := &types.ResumeData{Experience: []types.Experience{
		{Company: "Acme", Role: "Engineer", Years: "2020-2024", Technologies: "Go, Postgres", Description: "<ul><li>Built things</li></ul>"},
	}}
	res := resolverFor(t, registry.Modern, func(c *types.TemplateConfig) {
		c.MainTextColors = types.HeadingColors{H3: "#123456"}
		c.DescriptionAlign = types.AlignJustify
	})

	block, err := NewRenderer().Render(registry.SectionExperience, resume, res, style.ColumnMain)
	require.NoError(t, err)
	doc := parse(t, string(block.HTML))

	assert.Equal(t, "Experience", doc.Find("h2").Text())
	assert.Equal(t, "Acme", doc.Find("h3").Text())
	assert.Equal(t, "#123456", styleValue(doc.Find("h3").AttrOr("style", ""), "color"))
	assert.Equal(t, "space-between", styleValue(doc.Find(".row").AttrOr("style", ""), "justify-content"))
	assert.Equal(t, "2020-2024", doc.Find(".meta").Text())
	assert.Equal(t, 1, doc.Find(".rich li").Length())
}

func TestRender_Details(t *testing.T) {
	resume := &types.ResumeData{Contact: types.Contact{Email: "a@b.co", Phone: "+1 555", GitHub: "https://github.com/a"}}
	block, err := NewRenderer().Render(registry.SectionDetails, resume, resolverFor(t, registry.Classic, nil), style.ColumnSidebar)
	require.NoError(t, err)
	doc := parse(t, string(block.HTML))

	assert.Equal(t, 3, doc.Find("li").Length())
	assert.Equal(t, "mailto:a@b.co", doc.Find(`li[data-contact="email"] a`).AttrOr("href", ""))
	assert.Equal(t, 0, doc.Find(`li[data-contact="phone"] a`).Length())
	assert.Equal(t, "+1 555", doc.Find(`li[data-contact="phone"]`).Text())
}

func TestRender_Education(t *testing.T) {
	resume := &types.ResumeData{Education: types.Education{College: "MIT", Degree: "BSc", StartYear: "2010", EndYear: "2014"}}
	block, err := NewRenderer().Render(registry.SectionEducation, resume, resolverFor(t, registry.Classic, nil), style.ColumnSidebar)
	require.NoError(t, err)
	doc := parse(t, string(block.HTML))

	assert.Equal(t, 1, doc.Find("h3").Length())
	assert.Contains(t, doc.Text(), "2010 - 2014")

	resume.Education.School = "Central High"
	block, err = NewRenderer().Render(registry.SectionEducation, resume, resolverFor(t, registry.Classic, nil), style.ColumnSidebar)
	require.NoError(t, err)
	assert.Equal(t, 2, parse(t, string(block.HTML)).Find("h3").Length())
}

func TestRenderPage(t *testing.T) {
	rd := NewRenderer()
	res := resolverFor(t, registry.Modern, func(c *types.TemplateConfig) {
		c.SidebarColor = "#101010"
		c.BorderStyle = "dashed"
	})
	resume := &types.ResumeData{Name: "Ada"}

	name, err := rd.Render(registry.SectionName, resume, res, style.ColumnSidebar)
	require.NoError(t, err)
	exp, err := rd.Render(registry.SectionExperience, resume, res, style.ColumnMain)
	require.NoError(t, err)

	html, err := RenderPage(PageInput{
		Title:    "Ada <resume>",
		Variant:  "modern",
		Resolver: res,
		Columns: []Column{
			{Name: "sidebar", Blocks: []Block{name}},
			{Name: "main", Blocks: []Block{exp}},
		},
	})
	require.NoError(t, err)
	doc := parse(t, html)

	assert.Equal(t, "Ada <resume>", doc.Find("title").Text())
	page := doc.Find("main[data-template]")
	require.Equal(t, 1, page.Length())
	assert.Equal(t, "modern", page.AttrOr("data-template", ""))
	assert.Equal(t, "dashed", styleValue(page.AttrOr("style", ""), "border-style"))
	assert.Equal(t, "20px", styleValue(doc.Find(`[data-column="main"]`).AttrOr("style", ""), "gap"))
	assert.Equal(t, "#101010", styleValue(doc.Find(`[data-column="sidebar"]`).AttrOr("style", ""), "background-color"))
	assert.Equal(t, "Ada", doc.Find(`[data-column="sidebar"] h1`).Text())
}

func styleValue(style, prop string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
