package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/types"
)

// maxPhotoBytes bounds photo uploads.
const maxPhotoBytes = 5 << 20

// maxBodyBytes bounds JSON bodies. A document carries its photo as a base64
// data URL, so the limit leaves room for the largest accepted photo.
const maxBodyBytes = maxPhotoBytes*4/3 + 1<<20

// FieldRequest sets one field of a record.
type FieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ValueRequest carries a single value.
type ValueRequest struct {
	Value any `json:"value"`
}

// ActiveSectionRequest switches the visible section.
type ActiveSectionRequest struct {
	Section string `json:"section"`
}

// decodeJSON reads a bounded JSON body into v. An oversized body fails with
// *http.MaxBytesError rather than being cut short.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return &RequestError{Message: "invalid request body", Cause: err}
	}
	return nil
}

// readBody reads a bounded raw body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &RequestError{Message: "failed to read request body", Cause: err}
	}
	return raw, nil
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sections":        form.Sections,
		"templates":       types.Templates,
		"fonts":           types.Fonts,
		"layouts":         types.Layouts,
		"presets":         types.ColorPresets,
		"skillCategories": types.SkillCategories,
		"languageLevels":  types.LanguageLevels,
	})
}

func (s *Server) handleGetCV(w http.ResponseWriter, _ *http.Request) {
	data, _ := s.session.State()
	s.jsonResponse(w, http.StatusOK, data)
}

func (s *Server) handleLoadCV(w http.ResponseWriter, r *http.Request) {
	var data types.CVData
	if err := decodeJSON(w, r, &data); err != nil {
		s.failure(w, err)
		return
	}
	var out types.CVData
	_ = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		f.Load(data)
		out = f.Data()
		return nil
	})
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleResetCV(w http.ResponseWriter, _ *http.Request) {
	var out types.CVData
	_ = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		f.Reset()
		out = f.Data()
		return nil
	})
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleValidateCV(w http.ResponseWriter, _ *http.Request) {
	data, opts := s.session.State()
	issues := append(data.Validate(), opts.Validate()...)
	if issues == nil {
		issues = []types.Issue{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"issues": issues})
}

func (s *Server) handleGetActiveSection(w http.ResponseWriter, _ *http.Request) {
	var active form.Section
	_ = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		active = f.ActiveSection()
		return nil
	})
	s.jsonResponse(w, http.StatusOK, map[string]form.Section{"section": active})
}

func (s *Server) handleSetActiveSection(w http.ResponseWriter, r *http.Request) {
	var req ActiveSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		return f.SetActiveSection(form.Section(req.Section))
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"section": req.Section})
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	section, err := form.ParseSection(r.PathValue("section"))
	if err != nil {
		s.failure(w, err)
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	value, err := form.DecodeSection(section, raw)
	if err != nil {
		s.failure(w, &RequestError{Message: "invalid section value", Cause: err})
		return
	}

	var out types.CVData
	err = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		if err := f.UpdateSection(section, value); err != nil {
			return err
		}
		out = f.Data()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleUpdatePersonalField(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	field := r.PathValue("field")

	var out types.PersonalInfo
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		if err := f.PersonalInfo().Update(field, req.Value); err != nil {
			return err
		}
		out = f.PersonalInfo().Info()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	file, _, err := r.FormFile("photo")
	if err != nil {
		s.photoFailure(w, &RequestError{Message: `expected a multipart "photo" file`, Cause: err})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.photoFailure(w, &RequestError{Message: "failed to read photo", Cause: err})
		return
	}

	var out types.PersonalInfo
	err = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		if _, err := f.PersonalInfo().SetPhoto(content); err != nil {
			return err
		}
		out = f.PersonalInfo().Info()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleClearPhoto(w http.ResponseWriter, _ *http.Request) {
	var out types.PersonalInfo
	_ = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		f.PersonalInfo().ClearPhoto()
		out = f.PersonalInfo().Info()
		return nil
	})
	s.jsonResponse(w, http.StatusOK, out)
}

// photoFailure reports an upload error, mapping oversized bodies to 413.
func (s *Server) photoFailure(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.log.Warn().Int64("limit", tooLarge.Limit).Msg("photo upload too large")
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "photo is too large")
		return
	}
	s.failure(w, err)
}
