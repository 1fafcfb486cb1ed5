package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, v := range registry.Variants() {
		def, err := registry.Lookup(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s (%s) font scale [%d, %d]\n", v, def.Title, def.MinScale, def.MaxScale)
		if !def.Grouped() {
			_, _ = fmt.Fprintf(out, "  sections: %s\n", strings.Join(def.Order, ", "))
			continue
		}
		for _, g := range def.Groups {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", g.Name, strings.Join(g.Sections, ", "))
		}
	}
	return nil
}
