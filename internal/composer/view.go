package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
)

// ColumnSingle names the only column of an ungrouped template.
const ColumnSingle = "single"

// View is the composed, render-ready state of a template.
type View struct {
	Variant  registry.Variant
	Config   types.TemplateConfig
	Resolver *style.Resolver
	// Columns holds one column for ungrouped templates and the sidebar and
	// main columns for grouped ones.
	Columns []rendering.Column
}

// Column returns the named column, or false.
func (v View) Column(name string) (rendering.Column, bool) {
	for _, col := range v.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return rendering.Column{}, false
}

// IDs returns the section ids of a column in render order.
func (v View) IDs(column string) []string {
	col, ok := v.Column(column)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(col.Blocks))
	for _, b := range col.Blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

// VisibleOrder filters cfg.SectionOrder down to the visible sections.
// Sections without a visibility entry are shown.
func VisibleOrder(cfg types.TemplateConfig) []string {
	out := make([]string, 0, len(cfg.SectionOrder))
	for _, id := range cfg.SectionOrder {
		if shown, ok := cfg.VisibleSections[id]; ok && !shown {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Compose renders every visible section in order. Grouped templates get two
// parallel lists, each keeping the relative order of its group.
func (c *Composer) Compose(ctx context.Context, resume *types.ResumeData) (View, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return View{}, err
	}
	res, err := style.NewResolver(c.variant, cfg)
	if err != nil {
		return View{}, err
	}

	view := View{Variant: c.variant, Config: cfg, Resolver: res}
	if !c.def.Grouped() {
		view.Columns = []rendering.Column{{Name: ColumnSingle}}
	} else {
		for _, g := range c.def.Groups {
			view.Columns = append(view.Columns, rendering.Column{Name: g.Name})
		}
	}

	for _, id := range VisibleOrder(cfg) {
		group, err := c.def.GroupOf(id)
		if err != nil {
			return View{}, err
		}
		idx, col := 0, style.ColumnSidebar
		if c.def.Grouped() {
			for i, g := range c.def.Groups {
				if g.Name == group {
					idx = i
				}
			}
			if group == registry.GroupMain {
				col = style.ColumnMain
			}
		}
		block, err := c.renderer.Render(id, resume, res, col)
		if err != nil {
			return View{}, err
		}
		view.Columns[idx].Blocks = append(view.Columns[idx].Blocks, block)
	}
	return view, nil
}

// RenderHTML renders the composed view as a standalone HTML page.
func (c *Composer) RenderHTML(ctx context.Context, resume *types.ResumeData) (string, error) {
	view, err := c.Compose(ctx, resume)
	if err != nil {
		return "", err
	}
	title := c.def.Title + " resume"
	if resume != nil && strings.TrimSpace(resume.Name) != "" {
		title = strings.TrimSpace(resume.Name)
	}
	return rendering.RenderPage(rendering.PageInput{
		Title:    title,
		Variant:  string(c.variant),
		Resolver: view.Resolver,
		Columns:  view.Columns,
	})
}

// Export renders the page and hands it to printer.
func (c *Composer) Export(ctx context.Context, resume *types.ResumeData, printer Printer) ([]byte, error) {
	html, err := c.RenderHTML(ctx, resume)
	if err != nil {
		return nil, err
	}
	pdf, err := printer.PrintPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s template: %w", c.variant, err)
	}
	return pdf, nil
}
