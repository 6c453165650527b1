// Package export prints a rendered flyer page to PDF through headless
// Chrome. Chrome or Chromium must be available on the host.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// A4 paper size in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// DefaultPrintTimeout bounds one print job.
const DefaultPrintTimeout = 60 * time.Second

// PDFExporter converts HTML pages to single-page A4 PDFs.
type PDFExporter struct {
	timeout time.Duration
}

// NewPDFExporter creates an exporter with the default timeout.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{timeout: DefaultPrintTimeout}
}

// WithTimeout sets a custom per-job timeout.
func (e *PDFExporter) WithTimeout(timeout time.Duration) *PDFExporter {
	e.timeout = timeout
	return e
}

// PrintHTML renders html in a headless browser and returns the PDF bytes.
func (e *PDFExporter) PrintHTML(ctx context.Context, html []byte) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(runCtx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	log.Debug().Int("htmlBytes", len(html)).Int("pdfBytes", len(pdf)).Msg("printed flyer to pdf")
	return pdf, nil
}
