package export

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

// RegionSelector locates the printable document inside rendered HTML.
const RegionSelector = "#cv-preview"

// Capturer rasterizes the element matching selector in html to a PNG.
type Capturer interface {
	Capture(ctx context.Context, html, selector string) ([]byte, error)
}

// DocumentWriter assembles page images into a PDF.
type DocumentWriter interface {
	WritePDF(ctx context.Context, pages [][]byte) ([]byte, error)
}

// Artifact is a finished export.
type Artifact struct {
	Filename string
	Data     []byte
	Pages    int
}

// FileName returns "<fullName>_Resume.pdf", or "CV_Resume.pdf" without a name.
// Path separators are replaced so the name is safe to write to disk.
func FileName(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "CV"
	}
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	return name + "_Resume.pdf"
}

// LocateRegion checks that html contains the printable region.
func LocateRegion(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &CaptureError{Selector: RegionSelector, Message: "rendered document is not parseable", Cause: err}
	}
	if doc.Find(RegionSelector).Length() == 0 {
		return &CaptureError{Selector: RegionSelector, Message: "document region not found"}
	}
	return nil
}

// Exporter renders, captures and paginates a document. At most one export
// runs at a time; concurrent requests fail with ErrExportInProgress.
type Exporter struct {
	renderer  *rendering.Renderer
	capturer  Capturer
	writer    DocumentWriter
	log       zerolog.Logger
	exporting atomic.Bool
}

// NewExporter creates an exporter. A nil renderer uses the built-in templates.
func NewExporter(renderer *rendering.Renderer, capturer Capturer, writer DocumentWriter, log zerolog.Logger) *Exporter {
	if renderer == nil {
		renderer = rendering.NewRenderer()
	}
	return &Exporter{renderer: renderer, capturer: capturer, writer: writer, log: log}
}

// NewChromeExporter wires an exporter to a single headless browser engine.
func NewChromeExporter(renderer *rendering.Renderer, opts ChromeOptions) *Exporter {
	chrome := NewChrome(opts)
	return NewExporter(renderer, chrome, chrome, opts.Logger)
}

// IsExporting reports whether an export is running.
func (e *Exporter) IsExporting() bool {
	return e.exporting.Load()
}

// Export produces a PDF of data rendered with opts. The inputs are never
// modified; on failure no artifact is returned.
func (e *Exporter) Export(ctx context.Context, data types.CVData, opts types.CustomizationOptions) (*Artifact, error) {
	if !e.exporting.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.exporting.Store(false)

	start := time.Now()
	artifact, err := e.export(ctx, data, opts)
	if err != nil {
		e.log.Warn().Err(err).Msg("export failed")
		return nil, err
	}
	e.log.Info().
		Str("filename", artifact.Filename).
		Int("pages", artifact.Pages).
		Int("bytes", len(artifact.Data)).
		Dur("duration", time.Since(start)).
		Msg("export finished")
	return artifact, nil
}

func (e *Exporter) export(ctx context.Context, data types.CVData, opts types.CustomizationOptions) (*Artifact, error) {
	html, err := e.renderer.Render(data, opts)
	if err != nil {
		return nil, &ExportError{Stage: "render", Message: "failed to render document", Cause: err}
	}
	if err := LocateRegion(html); err != nil {
		return nil, &ExportError{Stage: "capture", Message: "document region unavailable", Cause: err}
	}

	capture, err := e.capturer.Capture(ctx, html, RegionSelector)
	if err != nil {
		return nil, &ExportError{Stage: "capture", Message: "failed to capture document", Cause: err}
	}
	pages, err := SliceBands(ctx, capture)
	if err != nil {
		return nil, err
	}
	pdf, err := e.writer.WritePDF(ctx, pages)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename: FileName(data.PersonalInfo.FullName),
		Data:     pdf,
		Pages:    len(pages),
	}, nil
}
