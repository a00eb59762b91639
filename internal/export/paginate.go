package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/sync/errgroup"
)

// A4 portrait page geometry.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	// CaptureScale is the device scale factor used when rasterizing.
	CaptureScale = 2
)

// Band is one page-sized horizontal slice of the captured image, in pixels.
type Band struct {
	Index  int
	Top    int
	Height int
}

// PageHeightPx returns the height in pixels of one A4 page for an image
// widthPx pixels wide, with the width mapped onto 210mm.
func PageHeightPx(widthPx int) int {
	return int(math.Round(float64(widthPx) * PageHeightMM / PageWidthMM))
}

// ImageHeightMM returns the printed height of an image scaled to 210mm wide.
func ImageHeightMM(widthPx, heightPx int) float64 {
	if widthPx <= 0 {
		return 0
	}
	return float64(heightPx) * PageWidthMM / float64(widthPx)
}

// PageCount returns the number of pages needed for an image of the given
// printed height: ceil(height / 297), and at least one.
func PageCount(heightMM float64) int {
	n := int(math.Ceil(heightMM/PageHeightMM - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// PlanBands slices an image into successive page-height bands, top to bottom.
// The last band may be shorter than a page.
func PlanBands(widthPx, heightPx int) []Band {
	pageHeight := PageHeightPx(widthPx)
	if pageHeight <= 0 {
		return []Band{{Index: 0, Top: 0, Height: heightPx}}
	}
	count := PageCount(ImageHeightMM(widthPx, heightPx))
	bands := make([]Band, 0, count)
	for i := 0; i < count; i++ {
		top := i * pageHeight
		h := pageHeight
		if top+h > heightPx {
			h = heightPx - top
		}
		if h < 0 {
			h = 0
		}
		bands = append(bands, Band{Index: i, Top: top, Height: h})
	}
	return bands
}

// SliceBands decodes a PNG capture and returns one full-page PNG per band.
// Short bands are padded with white so every page has A4 proportions.
func SliceBands(ctx context.Context, capture []byte) ([][]byte, error) {
	img, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return nil, &ExportError{Stage: "paginate", Message: "failed to decode capture", Cause: err}
	}
	b := img.Bounds()
	width := b.Dx()
	pageHeight := PageHeightPx(width)
	bands := PlanBands(width, b.Dy())

	pages := make([][]byte, len(bands))
	g, _ := errgroup.WithContext(ctx)
	for _, band := range bands {
		g.Go(func() error {
			page := image.NewRGBA(image.Rect(0, 0, width, pageHeight))
			draw.Draw(page, page.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
			src := image.Pt(b.Min.X, b.Min.Y+band.Top)
			draw.Draw(page, image.Rect(0, 0, width, band.Height), img, src, draw.Over)

			var buf bytes.Buffer
			if err := png.Encode(&buf, page); err != nil {
				return &ExportError{Stage: "paginate", Message: "failed to encode page", Cause: err}
			}
			pages[band.Index] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
