// Package export prints rendered resume pages to PDF with a headless browser.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one print job, browser startup included.
const DefaultTimeout = 60 * time.Second

// A4 paper size in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// ChromePrinter prints HTML pages with Chrome/Chromium. Requires a browser
// installed on the system; ExecPath overrides the lookup.
type ChromePrinter struct {
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromePrinter creates a printer. An empty execPath falls back to
// CHROME_PATH and then to chromedp's default lookup.
func NewChromePrinter(execPath string, verbose bool) *ChromePrinter {
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	return &ChromePrinter{ExecPath: execPath, Timeout: DefaultTimeout, Verbose: verbose}
}

// PrintPDF checks the page and prints it on A4 with backgrounds.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	info, err := CheckPage(html)
	if err != nil {
		return nil, err
	}
	if p.Verbose {
		log.Printf("[BROWSER] Printing %s template with %d sections", info.Template, info.Sections)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, &PrintError{Stage: "prepare", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &PrintError{Stage: "prepare", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &PrintError{Stage: "print", Cause: err}
	}

	if p.Verbose {
		log.Printf("[BROWSER] Printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// PrintError reports a failed print job.
type PrintError struct {
	Stage string
	Cause error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("pdf export failed during %s: %v", e.Stage, e.Cause)
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}
