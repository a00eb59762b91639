package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		heightMM float64
		want     int
	}{
		{0, 1},
		{100, 1},
		{297, 1},
		{297.5, 2},
		{594, 2},
		{600, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.heightMM), "height %.1f", tt.heightMM)
	}
}

func TestPlanBands(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          []Band
	}{
		{"exactly one page", 210, 297, []Band{{0, 0, 297}}},
		{"short page", 210, 100, []Band{{0, 0, 100}}},
		{"one pixel over", 210, 298, []Band{{0, 0, 297}, {1, 297, 1}}},
		{"two full pages", 420, 1188, []Band{{0, 0, 594}, {1, 594, 594}}},
		{"empty capture", 210, 0, []Band{{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanBands(tt.width, tt.height))
		})
	}
}

func TestSliceBands_PadsLastPageWithWhite(t *testing.T) {
	capture := solidPNG(t, 100, 300, color.RGBA{R: 200, A: 255})

	pages, err := SliceBands(context.Background(), capture)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, p := range pages {
		img, err := png.Decode(bytes.NewReader(p))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 100, 141), img.Bounds(), "page %d", i)
	}

	first, _ := png.Decode(bytes.NewReader(pages[0]))
	r, g, b, _ := first.At(50, 140).RGBA()
	assert.Equal(t, [3]uint32{200 * 257, 0, 0}, [3]uint32{r, g, b})

	last, _ := png.Decode(bytes.NewReader(pages[2]))
	r, g, b, _ = last.At(50, 10).RGBA()
	assert.Equal(t, [3]uint32{200 * 257, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = last.At(50, 100).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestSliceBands_InvalidPNG(t *testing.T) {
	_, err := SliceBands(context.Background(), []byte("not a png"))

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "paginate", exportErr.Stage)
}

func TestPagesHTML(t *testing.T) {
	html := pagesHTML([][]byte{{1}, {2}})

	assert.Contains(t, html, `alt="page 1"`)
	assert.Contains(t, html, `alt="page 2"`)
	assert.Contains(t, html, "size: A4 portrait")
}
