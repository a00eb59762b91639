package server

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/share"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

// SessionOptions holds the collaborators of a Session.
type SessionOptions struct {
	Renderer  *rendering.Renderer
	Exporter  *export.Exporter
	Snapshots *storage.Snapshots
	Sharer    *share.Sharer
	ShareURL  string
	Logger    zerolog.Logger
}

// Session is the single editing session served over HTTP. The document and
// the customization model have exactly one logical writer: every access goes
// through the mutex.
type Session struct {
	mu     sync.Mutex
	form   *form.Orchestrator
	custom *customization.Model

	renderer  *rendering.Renderer
	exporter  *export.Exporter
	snapshots *storage.Snapshots
	sharer    *share.Sharer
	shareURL  string
	log       zerolog.Logger
}

// NewSession creates a session over an empty document and default options.
func NewSession(opts SessionOptions) *Session {
	if opts.Renderer == nil {
		opts.Renderer = rendering.NewRenderer()
	}
	s := &Session{
		form:      form.New(),
		custom:    customization.NewDefault(),
		renderer:  opts.Renderer,
		exporter:  opts.Exporter,
		snapshots: opts.Snapshots,
		sharer:    opts.Sharer,
		shareURL:  opts.ShareURL,
		log:       opts.Logger,
	}
	s.form.OnChange(func(section form.Section) {
		s.log.Debug().Str("section", string(section)).Msg("section updated")
	})
	return s
}

// Do runs fn with exclusive access to the document and the customization model.
func (s *Session) Do(fn func(f *form.Orchestrator, c *customization.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form, s.custom)
}

// State returns the current document and options.
func (s *Session) State() (types.CVData, types.CustomizationOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Data(), s.custom.Options()
}

// Preview renders the current state to HTML.
func (s *Session) Preview() (string, error) {
	data, opts := s.State()
	return s.renderer.Render(data, opts)
}

// Export produces a PDF of the current state. The session lock is not held
// while the browser works, so edits stay possible during an export.
func (s *Session) Export(ctx context.Context) (*export.Artifact, error) {
	data, opts := s.State()
	return s.exporter.Export(ctx, data, opts)
}

// IsExporting reports whether an export is running.
func (s *Session) IsExporting() bool {
	return s.exporter.IsExporting()
}

// Saved reads the saved snapshot without loading it.
func (s *Session) Saved(ctx context.Context) (storage.Snapshot, error) {
	return s.snapshots.Restore(ctx)
}

// Save persists the current state.
func (s *Session) Save(ctx context.Context) (storage.Snapshot, error) {
	data, opts := s.State()
	return s.snapshots.Persist(ctx, data, opts)
}

// Restore loads the saved snapshot into the session.
func (s *Session) Restore(ctx context.Context) (storage.Snapshot, error) {
	snap, err := s.snapshots.Restore(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Load(snap.CVData)
	s.custom.Set(snap.Customization)
	return snap, nil
}

// Share sends a link to the CV.
func (s *Session) Share(ctx context.Context) share.Result {
	data, _ := s.State()
	return s.sharer.Share(ctx, share.NewPayload(data.PersonalInfo.FullName, s.shareURL))
}
