package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// CustomizationValueRequest sets one customization field.
type CustomizationValueRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleGetCustomization(w http.ResponseWriter, _ *http.Request) {
	_, opts := s.session.State()
	s.jsonResponse(w, http.StatusOK, opts)
}

// handleSetCustomization replaces every option at once. The body must carry
// all customization fields.
func (s *Server) handleSetCustomization(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := schemas.ValidateCustomization(raw); err != nil {
		s.failure(w, err)
		return
	}
	var opts types.CustomizationOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		s.failure(w, &RequestError{Message: "invalid customization", Cause: err})
		return
	}
	_ = s.session.Do(func(_ *form.Orchestrator, c *customization.Model) error {
		c.Set(opts)
		return nil
	})
	s.jsonResponse(w, http.StatusOK, opts)
}

func (s *Server) handleUpdateCustomization(w http.ResponseWriter, r *http.Request) {
	var req CustomizationValueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	key := customization.Key(r.PathValue("key"))

	var out types.CustomizationOptions
	err := s.session.Do(func(_ *form.Orchestrator, c *customization.Model) error {
		if err := c.Update(key, req.Value); err != nil {
			return err
		}
		out = c.Options()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.ColorPresets)
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var out types.CustomizationOptions
	err := s.session.Do(func(_ *form.Orchestrator, c *customization.Model) error {
		if err := c.ApplyPreset(name); err != nil {
			return err
		}
		out = c.Options()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}
