package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/storage"
)

func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	html, err := s.session.Preview()
	if err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		s.log.Error().Err(err).Msg("error writing preview")
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.session.Export(r.Context())
	if err != nil {
		status := HTTPStatus(err)
		s.log.Warn().Err(err).Int("status", status).Msg("export failed")
		if errors.Is(err, export.ErrExportInProgress) {
			s.errorResponse(w, status, export.NoticeExportBusy)
			return
		}
		s.jsonResponse(w, status, map[string]string{"error": export.NoticeExportFailed, "detail": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("X-Page-Count", strconv.Itoa(artifact.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.log.Error().Err(err).Msg("error writing PDF")
	}
}

func (s *Server) handleExportStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"exporting": s.session.IsExporting()})
}

// SnapshotResponse acknowledges a save or a restore.
type SnapshotResponse struct {
	Message  string            `json:"message"`
	SavedAt  time.Time         `json:"savedAt"`
	Snapshot *storage.Snapshot `json:"snapshot,omitempty"`
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Save(r.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("save failed")
		s.errorResponse(w, HTTPStatus(err), storage.NoticeSaveFailed)
		return
	}
	s.jsonResponse(w, http.StatusOK, SnapshotResponse{Message: storage.NoticeSaved, SavedAt: snap.SavedAt})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Saved(r.Context())
	if err != nil {
		s.restoreFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Restore(r.Context())
	if err != nil {
		s.restoreFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SnapshotResponse{Message: storage.NoticeLoaded, SavedAt: snap.SavedAt, Snapshot: &snap})
}

// restoreFailure reports a missing snapshot as 404 and anything else as a load failure.
func (s *Server) restoreFailure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if errors.Is(err, storage.ErrNoSavedCV) {
		s.log.Warn().Err(err).Msg("no saved CV")
		s.errorResponse(w, status, storage.NoticeNoSavedCV)
		return
	}
	s.log.Warn().Err(err).Msg("restore failed")
	s.errorResponse(w, status, storage.NoticeLoadFailed)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	result := s.session.Share(r.Context())
	s.jsonResponse(w, http.StatusOK, result)
}
