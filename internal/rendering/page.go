package rendering

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/jonathan/resume-studio/internal/style"
)

// Column is an ordered list of blocks rendered side by side with other columns.
type Column struct {
	Name   string
	Blocks []Block
}

// PageInput is everything needed to lay out a full preview page.
type PageInput struct {
	Title    string
	Variant  string
	Resolver *style.Resolver
	// Columns holds one column for single-list templates and two
	// (sidebar, main) for grouped templates.
	Columns []Column
}

type pageView struct {
	Title      string
	Variant    string
	FontFamily string
	Background string
	Sidebar    string
	Gap        string
	Border     style.Border
	Columns    []Column
	Grouped    bool
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 0; }
body { margin: 0; }
.page { display: flex; min-height: 297mm; box-sizing: border-box; }
.column { display: flex; flex-direction: column; padding: 24px; box-sizing: border-box; }
.column-sidebar { width: 35%; }
.column-main, .column-single { flex: 1; }
.section-empty { display: block; }
ul { margin: 0; padding-left: 1.2em; }
.skill-legend, .contacts { list-style: none; padding-left: 0; }
.swatch { display: inline-block; width: 8px; height: 8px; margin-right: 4px; }
</style>
</head>
<body>
<main class="page template-{{.Variant}}" data-template="{{.Variant}}" style="font-family: {{.FontFamily}}; background-color: {{.Background}}; border-width: {{.Border.Width}}; border-style: {{.Border.Style}}; border-color: {{.Border.Color}}; border-radius: {{.Border.Radius}}">
{{- range .Columns}}
<div class="column column-{{.Name}}" data-column="{{.Name}}" style="gap: {{$.Gap}}{{if and $.Grouped (eq .Name "sidebar")}}; background-color: {{$.Sidebar}}{{end}}">
{{- range .Blocks}}
{{.HTML}}
{{- end}}
</div>
{{- end}}
</main>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// RenderPage assembles rendered blocks into a standalone HTML document.
func RenderPage(in PageInput) (string, error) {
	res := in.Resolver
	view := pageView{
		Title:      in.Title,
		Variant:    in.Variant,
		FontFamily: res.FontFamily(),
		Background: res.BackgroundColor(),
		Sidebar:    res.SidebarColor(),
		Gap:        itoaPx(res.SectionGap()),
		Border:     res.Border(),
		Columns:    in.Columns,
		Grouped:    len(in.Columns) > 1,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, view); err != nil {
		return "", &TemplateError{Name: "page", Cause: err}
	}
	return buf.String(), nil
}

func itoaPx(px int) string {
	return strconv.Itoa(px) + "px"
}
