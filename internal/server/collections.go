package server

import (
	"encoding/json"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/types"
)

// collection erases the record type of a section editor so one set of
// handlers can serve every list section.
type collection interface {
	Items() any
	Add() any
	AppendJSON(raw []byte) (any, error)
	Update(id, field string, value any) error
	Remove(id string) bool
	ToggleExpanded(id string) bool
	Expanded() []string
}

// drafter is the draft half of the skills and languages editors.
type drafter interface {
	Draft() any
	SetDraftField(field string, value any) error
	Commit() (any, bool)
}

type editorCollection[T editor.Item[T]] struct {
	ed *editor.Editor[T]
}

func (c editorCollection[T]) Items() any { return c.ed.Items() }

func (c editorCollection[T]) Add() any { return c.ed.Add() }

func (c editorCollection[T]) Update(id, field string, value any) error {
	return c.ed.Update(id, field, value)
}

func (c editorCollection[T]) Remove(id string) bool { return c.ed.Remove(id) }

func (c editorCollection[T]) ToggleExpanded(id string) bool { return c.ed.ToggleExpanded(id) }

func (c editorCollection[T]) Expanded() []string { return c.ed.Expanded() }

// AppendJSON adds a record given as a JSON object of field values.
func (c editorCollection[T]) AppendJSON(raw []byte) (any, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &RequestError{Message: "invalid record", Cause: err}
	}
	item, err := c.ed.AddFields(fields)
	if err != nil {
		return nil, err
	}
	return item, nil
}

type draftCollection[T editor.DraftItem[T]] struct {
	d *editor.DraftEditor[T]
}

func (c draftCollection[T]) Draft() any { return c.d.Draft() }

func (c draftCollection[T]) SetDraftField(field string, value any) error {
	return c.d.SetDraftField(field, value)
}

func (c draftCollection[T]) Commit() (any, bool) {
	item, ok := c.d.Commit()
	return item, ok
}

// listSection returns the editor for a list section. Personal info is not a list.
func listSection(f *form.Orchestrator, section form.Section) (collection, error) {
	switch section {
	case form.SectionExperience:
		return editorCollection[types.Experience]{f.Experience()}, nil
	case form.SectionEducation:
		return editorCollection[types.Education]{f.Education()}, nil
	case form.SectionCertifications:
		return editorCollection[types.Certification]{f.Certifications()}, nil
	case form.SectionSkills:
		return editorCollection[types.Skill]{f.Skills().Editor}, nil
	case form.SectionLanguages:
		return editorCollection[types.Language]{f.Languages().Editor}, nil
	}
	return nil, &form.UnknownSectionError{Name: string(section)}
}

// draftSection returns the draft editor of skills or languages.
func draftSection(f *form.Orchestrator, section form.Section) (drafter, error) {
	switch section {
	case form.SectionSkills:
		return draftCollection[types.Skill]{f.Skills()}, nil
	case form.SectionLanguages:
		return draftCollection[types.Language]{f.Languages()}, nil
	}
	return nil, &form.UnknownSectionError{Name: string(section)}
}

// hasDraft reports whether records of section are added through a draft.
func hasDraft(section form.Section) bool {
	return section == form.SectionSkills || section == form.SectionLanguages
}
