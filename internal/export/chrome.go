package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// A4 at 96 CSS pixels per inch.
const (
	viewportWidthPx  = 794
	viewportHeightPx = 1123

	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// ChromeOptions configures the headless browser engine.
type ChromeOptions struct {
	// ExecPath overrides the browser binary; falls back to CHROME_PATH, then chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// Chrome rasterizes HTML and prints page images with a headless browser.
// Calls go through a circuit breaker so a missing or crashing browser fails fast.
type Chrome struct {
	execPath string
	timeout  time.Duration
	log      zerolog.Logger
	cb       *gobreaker.CircuitBreaker
}

// NewChrome creates a browser engine. The browser is started per call.
func NewChrome(opts ChromeOptions) *Chrome {
	if opts.ExecPath == "" {
		opts.ExecPath = os.Getenv("CHROME_PATH")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	c := &Chrome{execPath: opts.ExecPath, timeout: opts.Timeout, log: opts.Logger}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "chrome",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("browser circuit breaker state changed")
		},
	})
	return c
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	return opts
}

// run loads html from a temporary file and runs actions against it.
func (c *Chrome) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		tmpDir, err := os.MkdirTemp("", "cvbuilder-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmpDir)

		htmlPath := filepath.Join(tmpDir, "index.html")
		if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
			return nil, err
		}

		allocCtx, cancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
		defer cancel()
		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()
		browserCtx, cancel = context.WithTimeout(browserCtx, c.timeout)
		defer cancel()

		all := append([]chromedp.Action{
			chromedp.EmulateViewport(viewportWidthPx, viewportHeightPx, chromedp.EmulateScale(CaptureScale)),
			emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
			chromedp.Navigate("file://" + htmlPath),
			chromedp.WaitReady("body", chromedp.ByQuery),
		}, actions...)
		return nil, chromedp.Run(browserCtx, all...)
	})
	return err
}

// Capture rasterizes the element matching selector at CaptureScale on a white background.
func (c *Chrome) Capture(ctx context.Context, html, selector string) ([]byte, error) {
	start := time.Now()
	var buf []byte
	err := c.run(ctx, html,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &buf, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, &CaptureError{Selector: selector, Message: "browser capture failed", Cause: err}
	}
	if len(buf) == 0 {
		return nil, &CaptureError{Selector: selector, Message: "browser returned an empty capture"}
	}
	c.log.Debug().Int("bytes", len(buf)).Dur("duration", time.Since(start)).Msg("captured document region")
	return buf, nil
}

// WritePDF prints one A4 portrait page per PNG image.
func (c *Chrome) WritePDF(ctx context.Context, pages [][]byte) ([]byte, error) {
	var pdf []byte
	err := c.run(ctx, pagesHTML(pages),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
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
		return nil, &ExportError{Stage: "print", Message: "browser failed to print pages", Cause: err}
	}
	return pdf, nil
}

// pagesHTML lays the page images out one per A4 sheet.
func pagesHTML(pages [][]byte) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	sb.WriteString(`@page { size: A4 portrait; margin: 0; } body { margin: 0; background: #ffffff; } `)
	sb.WriteString(`img { display: block; width: 210mm; height: 297mm; page-break-after: always; } img:last-child { page-break-after: auto; }`)
	sb.WriteString(`</style></head><body>`)
	for i, p := range pages {
		fmt.Fprintf(&sb, `<img alt="page %d" src="data:image/png;base64,%s">`, i+1, base64.StdEncoding.EncodeToString(p))
	}
	sb.WriteString(`</body></html>`)
	return sb.String()
}
