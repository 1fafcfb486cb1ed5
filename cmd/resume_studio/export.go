package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume as PDF",
	Long:  "Renders a resume through a template and prints it to an A4 PDF with headless Chrome.",
	RunE:  runExport,
}

var (
	exportTemplate   string
	exportResumeFile string
	exportOutputFile string
	exportChromePath string
	exportTimeout    time.Duration
)

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template variant (classic, modern, standard, sidebar)")
	exportCmd.Flags().StringVarP(&exportResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output PDF file (default resume-<template>.pdf)")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome", "", "Path to Chrome/Chromium binary (default CHROME_PATH or system Chrome)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", export.DefaultTimeout, "Maximum time for PDF generation")

	_ = exportCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	resume, err := readResume(exportResumeFile)
	if err != nil {
		return err
	}
	return withSession(func(ctx context.Context, s *session) error {
		c, err := s.composer(ctx, exportTemplate)
		if err != nil {
			return err
		}

		if err := printLayout(ctx, cmd, s, c, resume); err != nil {
			return err
		}

		chromePath := exportChromePath
		if chromePath == "" {
			chromePath = s.settings.ChromePath
		}
		printer := export.NewChromePrinter(chromePath, s.settings.Verbose)
		printer.Timeout = exportTimeout

		pdf, err := c.Export(ctx, resume, printer)
		if err != nil {
			return err
		}

		out := exportOutputFile
		if out == "" {
			out = fmt.Sprintf("resume-%s.pdf", c.Variant())
		}
		if err := writeOutput(out, pdf, nil); err != nil {
			return err
		}
		if s.settings.Verbose {
			pages := 0
			if doc, err := export.Inspect(pdf); err != nil {
				log.Printf("[CLI] could not read back %s: %v", out, err)
			} else {
				pages = doc.Pages
			}
			observability.NewPrinter(cmd.ErrOrStderr()).PrintExport(out, len(pdf), pages)
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", out, len(pdf))
		return nil
	})
}
