package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"fnp-marketplace/logger"
	"fnp-marketplace/pricing"
)

//go:embed templates/price_list.html
var templatesFS embed.FS

var priceListTemplate = template.Must(template.ParseFS(templatesFS, "templates/price_list.html"))

// PriceListDocumentService renders a price list breakdown as HTML and prints it to PDF with headless Chrome
type PriceListDocumentService struct {
	chromePath string
	timeout    time.Duration
	now        func() time.Time
}

// NewPriceListDocumentService creates a new PriceListDocumentService.
// chromePath may be empty, in which case common install locations are probed.
func NewPriceListDocumentService(chromePath string) *PriceListDocumentService {
	return &PriceListDocumentService{
		chromePath: chromePath,
		timeout:    30 * time.Second,
		now:        time.Now,
	}
}

// detectChromePath returns the configured path when it exists, then checks common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderHTML renders the read-only view of list: visible categories only, collected shown as "-"
// where the category has no collected price.
func (s *PriceListDocumentService) RenderHTML(list *pricing.ProducerPriceList) ([]byte, error) {
	data := struct {
		List        pricing.PriceListBreakdown
		GeneratedAt string
	}{
		List:        pricing.Breakdown(list),
		GeneratedAt: s.now().UTC().Format("2006-01-02 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := priceListTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF prints the rendered HTML of list to an A4 PDF
func (s *PriceListDocumentService) GeneratePDF(ctx context.Context, list *pricing.ProducerPriceList) ([]byte, error) {
	html, err := s.RenderHTML(list)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.DisableGPU,
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		logger.Log.Warnf("⚠️ GeneratePDF: no Chrome binary found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Log.Infof("✅ GeneratePDF: price list id=%s, %d bytes", list.ID, len(pdfBuf))
	return pdfBuf, nil
}
