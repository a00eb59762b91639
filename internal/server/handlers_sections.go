package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/form"
)

// sectionRequest resolves the {section} path value.
func sectionRequest(r *http.Request) form.Section {
	return form.Section(r.PathValue("section"))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	var items any
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		items = c.Items()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, items)
}

// handleAddItem appends a record. Without a body a blank, expanded record is
// added; skills and languages need a record body since their blank entries
// come from the draft.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	section := sectionRequest(r)
	raw, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	raw = bytes.TrimSpace(raw)

	var item any
	err = s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, section)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			item, err = c.AppendJSON(raw)
			return err
		}
		if hasDraft(section) {
			return &RequestError{Message: "a record body is required; use the draft to add " + string(section) + " interactively"}
		}
		item = c.Add()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if req.Field == "" {
		s.failure(w, &RequestError{Message: "field is required"})
		return
	}
	id := r.PathValue("id")

	var items any
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		if err := c.Update(id, req.Field, req.Value); err != nil {
			return err
		}
		items = c.Items()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var removed bool
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		removed = c.Remove(id)
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var expanded bool
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		expanded = c.ToggleExpanded(id)
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "expanded": expanded})
}

func (s *Server) handleExpanded(w http.ResponseWriter, r *http.Request) {
	var ids []string
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		c, err := listSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		ids = c.Expanded()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"expanded": ids})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	var draft any
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		d, err := draftSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		draft = d.Draft()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}

	var draft any
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		d, err := draftSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		if err := d.SetDraftField(req.Field, req.Value); err != nil {
			return err
		}
		draft = d.Draft()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

// handleCommitDraft appends the draft. A blank name commits nothing and
// answers 200 with committed=false.
func (s *Server) handleCommitDraft(w http.ResponseWriter, r *http.Request) {
	var (
		item      any
		committed bool
	)
	err := s.session.Do(func(f *form.Orchestrator, _ *customization.Model) error {
		d, err := draftSection(f, sectionRequest(r))
		if err != nil {
			return err
		}
		item, committed = d.Commit()
		return nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	if !committed {
		s.jsonResponse(w, http.StatusOK, map[string]bool{"committed": false})
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"committed": true, "item": item})
}
