package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/composer"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit saved template configurations",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved configuration of a template",
	RunE:  runConfigShow,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a template's default configuration",
	RunE:  runConfigReset,
}

var configToggleCmd = &cobra.Command{
	Use:   "toggle <section>",
	Short: "Show or hide a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigToggle,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change template style settings",
	Long: `Applies toolbar style changes to a template. Only the flags given are changed.

Heading colors are keyed by heading tag, for example --heading-color h2=#1f2937.
Skill colors are keyed by skill domain; an empty color removes the override.`,
	RunE: runConfigSet,
}

var (
	configTemplate string

	setBackground    string
	setSidebar       string
	setLink          string
	setFont          string
	setScale         int
	setScaleStep     int
	setAlign         string
	setGap           int
	setPadding       string
	setBorder        style.Border
	setHeadingColors map[string]string
	setMainHeadings  map[string]string
	setSkillColors   map[string]string
)

func init() {
	configCmd.PersistentFlags().StringVarP(&configTemplate, "template", "t", "", "Template variant (classic, modern, standard, sidebar)")

	f := configSetCmd.Flags()
	f.StringVar(&setBackground, "background", "", "Page background color (#rrggbb)")
	f.StringVar(&setSidebar, "sidebar", "", "Sidebar background color (#rrggbb)")
	f.StringVar(&setLink, "link", "", "Link color (#rrggbb)")
	f.StringVar(&setFont, "font", "", "Font stack, one of: "+strings.Join(types.FontFamilies, " | "))
	f.IntVar(&setScale, "scale", 0, "Font scale level")
	f.IntVar(&setScaleStep, "scale-step", 0, "Increase or decrease the font scale level")
	f.StringVar(&setAlign, "align", "", "Description alignment (left, center, right, justify)")
	f.IntVar(&setGap, "gap", 0, "Gap between sections in px")
	f.StringVar(&setPadding, "padding", "", "Vertical section padding token (0, 1, 2, 3, 4, 6, 8)")
	f.StringVar(&setBorder.Width, "border-width", "", "Border width, e.g. 2px")
	f.StringVar(&setBorder.Style, "border-style", "", "Border style, e.g. solid")
	f.StringVar(&setBorder.Color, "border-color", "", "Border color (#rrggbb)")
	f.StringVar(&setBorder.Radius, "border-radius", "", "Border radius, e.g. 8px")
	f.StringToStringVar(&setHeadingColors, "heading-color", nil, "Heading colors of the sidebar or only column (h1..h4=#rrggbb)")
	f.StringToStringVar(&setMainHeadings, "main-heading-color", nil, "Heading colors of the main column (h1..h4=#rrggbb)")
	f.StringToStringVar(&setSkillColors, "skill-color", nil, "Skill domain colors (Domain=#rrggbb)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configToggleCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, cfg types.TemplateConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, configTemplate)
		if err != nil {
			return err
		}
		cfg, err := c.Config(ctx)
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg)
	})
}

func runConfigReset(cmd *cobra.Command, _ []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, configTemplate)
		if err != nil {
			return err
		}
		cfg, err := c.Reset(ctx)
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg)
	})
}

func runConfigToggle(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, configTemplate)
		if err != nil {
			return err
		}
		cfg, err := c.ToggleSection(ctx, args[0])
		if err != nil {
			return err
		}
		state := "hidden"
		if cfg.VisibleSections[args[0]] {
			state = "visible"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], state)
		return nil
	})
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, configTemplate)
		if err != nil {
			return err
		}
		edits, err := toolbarEdits(cmd)
		if err != nil {
			return err
		}
		if len(edits) == 0 {
			return fmt.Errorf("no settings given")
		}

		var cfg types.TemplateConfig
		for _, edit := range edits {
			if cfg, err = edit(ctx, c); err != nil {
				return err
			}
		}
		return printConfig(cmd.OutOrStdout(), cfg)
	})
}

type toolbarEdit func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error)

// toolbarEdits maps the changed flags onto composer toolbar actions, in flag
// declaration order.
func toolbarEdits(cmd *cobra.Command) ([]toolbarEdit, error) {
	f := cmd.Flags()
	var edits []toolbarEdit
	str := func(name, value string, apply func(*composer.Composer, context.Context, string) (types.TemplateConfig, error)) {
		if f.Changed(name) {
			edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
				return apply(c, ctx, value)
			})
		}
	}

	str("background", setBackground, (*composer.Composer).SetBackgroundColor)
	str("sidebar", setSidebar, (*composer.Composer).SetSidebarColor)
	str("link", setLink, (*composer.Composer).SetLinkColor)
	str("font", setFont, (*composer.Composer).SetFontFamily)
	if f.Changed("scale") {
		edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
			return c.SetFontScale(ctx, setScale)
		})
	}
	if f.Changed("scale-step") {
		edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
			return c.StepFontScale(ctx, setScaleStep)
		})
	}
	if f.Changed("align") {
		edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
			return c.SetAlign(ctx, types.Align(setAlign))
		})
	}
	if f.Changed("gap") {
		edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
			return c.SetSectionGap(ctx, setGap)
		})
	}
	str("padding", setPadding, (*composer.Composer).SetSectionPadding)
	if f.Changed("border-width") || f.Changed("border-style") || f.Changed("border-color") || f.Changed("border-radius") {
		border := setBorder
		edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
			return c.SetBorder(ctx, border)
		})
	}

	for _, hc := range []struct {
		flag   string
		column style.Column
		values map[string]string
	}{
		{"heading-color", style.ColumnSidebar, setHeadingColors},
		{"main-heading-color", style.ColumnMain, setMainHeadings},
	} {
		if !f.Changed(hc.flag) {
			continue
		}
		for tag, hex := range hc.values {
			level, err := types.ParseHeadingLevel(tag)
			if err != nil {
				return nil, fmt.Errorf("--%s: %w", hc.flag, err)
			}
			column := hc.column
			edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
				return c.SetHeadingColor(ctx, column, level, hex)
			})
		}
	}
	if f.Changed("skill-color") {
		for domain, hex := range setSkillColors {
			edits = append(edits, func(ctx context.Context, c *composer.Composer) (types.TemplateConfig, error) {
				return c.SetSkillColor(ctx, domain, hex)
			})
		}
	}
	return edits, nil
}
