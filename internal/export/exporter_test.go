package export

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

type fakeCapturer struct {
	png      []byte
	err      error
	selector string
	block    chan struct{}
	started  chan struct{}
}

func (f *fakeCapturer) Capture(ctx context.Context, html, selector string) ([]byte, error) {
	f.selector = selector
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.png, f.err
}

type fakeWriter struct {
	pages [][]byte
	err   error
}

func (f *fakeWriter) WritePDF(ctx context.Context, pages [][]byte) ([]byte, error) {
	f.pages = pages
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func sampleData() types.CVData {
	data := types.NewCVData()
	data.PersonalInfo.FullName = "Ada Lovelace"
	data.Skills = []types.Skill{{ID: "s1", Name: "Go", Level: 5, Category: "Technical"}}
	return data
}

func TestExport_ProducesPaginatedArtifact(t *testing.T) {
	capturer := &fakeCapturer{png: solidPNG(t, 100, 300, color.Black)}
	writer := &fakeWriter{}
	e := NewExporter(nil, capturer, writer, zerolog.Nop())
	data := sampleData()

	artifact, err := e.Export(context.Background(), data, types.DefaultCustomization())
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace_Resume.pdf", artifact.Filename)
	assert.Equal(t, 3, artifact.Pages)
	assert.Len(t, writer.pages, 3)
	assert.Equal(t, RegionSelector, capturer.selector)
	assert.Equal(t, sampleData(), data)
	assert.False(t, e.IsExporting())
}

func TestExport_FailuresResetFlag(t *testing.T) {
	tests := []struct {
		name     string
		capturer *fakeCapturer
		writer   *fakeWriter
		check    func(t *testing.T, err error)
	}{
		{
			name:     "capture fails",
			capturer: &fakeCapturer{err: &CaptureError{Selector: RegionSelector, Message: "boom"}},
			writer:   &fakeWriter{},
			check: func(t *testing.T, err error) {
				var exportErr *ExportError
				require.ErrorAs(t, err, &exportErr)
				assert.Equal(t, "capture", exportErr.Stage)
				var captureErr *CaptureError
				require.ErrorAs(t, err, &captureErr)
				assert.Equal(t, "boom", captureErr.Message)
			},
		},
		{
			name:     "capture is not a png",
			capturer: &fakeCapturer{png: []byte("garbage")},
			writer:   &fakeWriter{},
			check: func(t *testing.T, err error) {
				var exportErr *ExportError
				assert.ErrorAs(t, err, &exportErr)
			},
		},
		{
			name:     "writer fails",
			capturer: &fakeCapturer{png: solidPNG(t, 10, 10, color.White)},
			writer:   &fakeWriter{err: &ExportError{Stage: "print", Message: "no browser"}},
			check: func(t *testing.T, err error) {
				var exportErr *ExportError
				require.ErrorAs(t, err, &exportErr)
				assert.Equal(t, "print", exportErr.Stage)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExporter(nil, tt.capturer, tt.writer, zerolog.Nop())

			artifact, err := e.Export(context.Background(), sampleData(), types.DefaultCustomization())

			assert.Nil(t, artifact)
			tt.check(t, err)
			assert.False(t, e.IsExporting())
		})
	}
}

func TestExport_RejectsConcurrentRequest(t *testing.T) {
	capturer := &fakeCapturer{
		png:     solidPNG(t, 10, 10, color.White),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	e := NewExporter(nil, capturer, &fakeWriter{}, zerolog.Nop())

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = e.Export(context.Background(), sampleData(), types.DefaultCustomization())
	}()
	<-capturer.started
	assert.True(t, e.IsExporting())

	_, err := e.Export(context.Background(), sampleData(), types.DefaultCustomization())
	assert.True(t, errors.Is(err, ErrExportInProgress))

	close(capturer.block)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.False(t, e.IsExporting())
}

func TestExport_MissingRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{define "cv"}}<p>{{.Personal.FullName}}</p>{{end}}`), 0o644))
	r, err := rendering.NewRendererFromFile(path)
	require.NoError(t, err)
	capturer := &fakeCapturer{}
	e := NewExporter(r, capturer, &fakeWriter{}, zerolog.Nop())

	_, err = e.Export(context.Background(), sampleData(), types.DefaultCustomization())

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "capture", exportErr.Stage)
	var captureErr *CaptureError
	require.ErrorAs(t, err, &captureErr)
	assert.Nil(t, captureErr.Cause)
	assert.Equal(t, "", capturer.selector, "capture is not attempted")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "CV_Resume.pdf", FileName(""))
	assert.Equal(t, "CV_Resume.pdf", FileName("   "))
	assert.Equal(t, "Grace Hopper_Resume.pdf", FileName("Grace Hopper"))
	assert.Equal(t, "A-B_Resume.pdf", FileName("A/B"))
}
