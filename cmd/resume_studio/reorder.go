package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Move a section to another section's position",
	Long:  "Moves the --active section to the position of the --over section. Moves across sidebar and main columns are ignored.",
	RunE:  runReorder,
}

var (
	reorderTemplate string
	reorderActive   string
	reorderOver     string
)

func init() {
	reorderCmd.Flags().StringVarP(&reorderTemplate, "template", "t", "", "Template variant (classic, modern, standard, sidebar)")
	reorderCmd.Flags().StringVar(&reorderActive, "active", "", "Section being moved (required)")
	reorderCmd.Flags().StringVar(&reorderOver, "over", "", "Section whose position it takes (required)")

	_ = reorderCmd.MarkFlagRequired("active")
	_ = reorderCmd.MarkFlagRequired("over")
	rootCmd.AddCommand(reorderCmd)
}

func runReorder(cmd *cobra.Command, _ []string) error {
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, reorderTemplate)
		if err != nil {
			return err
		}
		moved, err := c.Reorder().Apply(ctx, reorderActive, reorderOver)
		if err != nil {
			return err
		}
		cfg, err := c.Config(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !moved {
			_, _ = fmt.Fprintf(out, "Order unchanged\n")
		}
		_, _ = fmt.Fprintf(out, "%s\n", strings.Join(cfg.SectionOrder, ", "))
		return nil
	})
}
