// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/resume-studio/internal/composer"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLayout outputs the columns and visible sections of a composed view.
func (p *Printer) PrintLayout(view composer.View) {
	var sb strings.Builder

	for _, col := range view.Columns {
		sb.WriteString(fmt.Sprintf("%-8s %s\n", col.Name+":", strings.Join(view.IDs(col.Name), ", ")))
	}

	var hidden []string
	for id, shown := range view.Config.VisibleSections {
		if !shown {
			hidden = append(hidden, id)
		}
	}
	slices.Sort(hidden)
	if len(hidden) > 0 {
		sb.WriteString(fmt.Sprintf("hidden:  %s\n", strings.Join(hidden, ", ")))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Font:     %s (level %d)\n", view.Resolver.FontFamily(), view.Resolver.Level()))
	sb.WriteString(fmt.Sprintf("Colors:   background %s, links %s\n", view.Resolver.BackgroundColor(), view.Resolver.LinkColor()))
	sb.WriteString(fmt.Sprintf("Align:    %s", view.Resolver.Align()))

	p.printBox("TEMPLATE LAYOUT: "+strings.ToUpper(string(view.Variant)), sb.String())
}

// PrintSkillDistribution outputs the share of each skill domain.
func (p *Printer) PrintSkillDistribution(skills []types.Skill) {
	shares := rendering.SkillDistribution(skills)
	if len(shares) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(shares), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := shares[i]
		sb.WriteString(fmt.Sprintf("  • %-20s %6s (%d)\n", s.Domain, s.Label(), s.Count))
	}
	if len(shares) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(shares)-maxItemsToShow))
	}

	p.printBox("SKILL DISTRIBUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where a PDF was written. pages is 0 when the page
// count could not be read back.
func (p *Printer) PrintExport(path string, size, pages int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", path))
	sb.WriteString(fmt.Sprintf("Size:   %d bytes", size))
	if pages > 0 {
		sb.WriteString(fmt.Sprintf("\nPages:  %d", pages))
		if pages > 1 {
			sb.WriteString(" ⚠ overflows one A4 page")
		}
	}
	p.printBox("✅ PDF EXPORTED", sb.String())
}
