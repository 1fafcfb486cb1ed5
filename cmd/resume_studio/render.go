package main

import (
	"context"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume preview as HTML",
	Long:  "Renders a resume JSON file through a template using the user's saved template configuration.",
	RunE:  runRender,
}

var (
	renderTemplate   string
	renderResumeFile string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template variant (classic, modern, standard, sidebar)")
	renderCmd.Flags().StringVarP(&renderResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output HTML file (default stdout)")

	_ = renderCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	resume, err := readResume(renderResumeFile)
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, renderTemplate)
		if err != nil {
			return err
		}
		if err := printLayout(ctx, cmd, s, c, resume); err != nil {
			return err
		}
		html, err := c.RenderHTML(ctx, resume)
		if err != nil {
			return err
		}
		return writeOutput(renderOutputFile, []byte(html), func(data []byte) error {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		})
	})
}
