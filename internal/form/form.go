// Package form holds the canonical CV document and routes section editor
// updates into it.
package form

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/types"
)

// Section names one top-level field of CVData.
type Section string

const (
	SectionPersonalInfo   Section = "personalInfo"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
)

// SectionInfo describes a section for navigation.
type SectionInfo struct {
	ID    Section `json:"id"`
	Label string  `json:"label"`
}

// Sections lists the sections in navigation order.
var Sections = []SectionInfo{
	{ID: SectionPersonalInfo, Label: "Personal Info"},
	{ID: SectionExperience, Label: "Experience"},
	{ID: SectionEducation, Label: "Education"},
	{ID: SectionSkills, Label: "Skills"},
	{ID: SectionLanguages, Label: "Languages"},
	{ID: SectionCertifications, Label: "Certifications"},
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s.ID) == name {
			return s.ID, nil
		}
	}
	return "", &UnknownSectionError{Name: name}
}

// UnknownSectionError reports a section name that is not part of CVData.
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Name)
}

// SectionValueError reports a value whose type does not match the section.
type SectionValueError struct {
	Section Section
	Got     string
}

func (e *SectionValueError) Error() string {
	return fmt.Sprintf("invalid value for section %s: got %s", e.Section, e.Got)
}

// Orchestrator owns the canonical CVData and the section editors bound to it.
// It is not safe for concurrent use; callers serialize access.
type Orchestrator struct {
	data   types.CVData
	active Section

	personal       *editor.PersonalEditor
	experience     *editor.Editor[types.Experience]
	education      *editor.Editor[types.Education]
	skills         *editor.DraftEditor[types.Skill]
	languages      *editor.DraftEditor[types.Language]
	certifications *editor.Editor[types.Certification]

	listeners []func(Section)
}

// New creates an orchestrator over an empty document with the personal info
// section active.
func New() *Orchestrator {
	return NewWithData(types.NewCVData())
}

// NewWithData creates an orchestrator over an existing document.
func NewWithData(data types.CVData) *Orchestrator {
	o := &Orchestrator{data: data.Normalize(), active: SectionPersonalInfo}

	o.personal = editor.NewPersonal(
		func() types.PersonalInfo { return o.data.PersonalInfo },
		func(p types.PersonalInfo) { o.replace(SectionPersonalInfo, func(d *types.CVData) { d.PersonalInfo = p }) },
	)
	o.experience = editor.NewExperience(editor.Source[types.Experience]{
		Load:  func() []types.Experience { return o.data.Experience },
		Store: o.SetExperience,
	})
	o.education = editor.NewEducation(editor.Source[types.Education]{
		Load:  func() []types.Education { return o.data.Education },
		Store: o.SetEducation,
	})
	o.skills = editor.NewSkills(editor.Source[types.Skill]{
		Load:  func() []types.Skill { return o.data.Skills },
		Store: o.SetSkills,
	})
	o.languages = editor.NewLanguages(editor.Source[types.Language]{
		Load:  func() []types.Language { return o.data.Languages },
		Store: o.SetLanguages,
	})
	o.certifications = editor.NewCertifications(editor.Source[types.Certification]{
		Load:  func() []types.Certification { return o.data.Certifications },
		Store: o.SetCertifications,
	})
	return o
}

// Data returns the current document. Collections are shared with the
// orchestrator but are never modified in place.
func (o *Orchestrator) Data() types.CVData {
	return o.data
}

// OnChange registers a callback invoked with the section after every update.
func (o *Orchestrator) OnChange(fn func(Section)) {
	o.listeners = append(o.listeners, fn)
}

// UpdateSection replaces exactly one top-level field of the document.
// value must have the section's type (PersonalInfo or the matching slice).
func (o *Orchestrator) UpdateSection(section Section, value any) error {
	switch section {
	case SectionPersonalInfo:
		v, ok := value.(types.PersonalInfo)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetPersonalInfo(v)
	case SectionExperience:
		v, ok := value.([]types.Experience)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetExperience(v)
	case SectionEducation:
		v, ok := value.([]types.Education)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetEducation(v)
	case SectionSkills:
		v, ok := value.([]types.Skill)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetSkills(v)
	case SectionLanguages:
		v, ok := value.([]types.Language)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetLanguages(v)
	case SectionCertifications:
		v, ok := value.([]types.Certification)
		if !ok {
			return &SectionValueError{Section: section, Got: fmt.Sprintf("%T", value)}
		}
		o.SetCertifications(v)
	default:
		return &UnknownSectionError{Name: string(section)}
	}
	return nil
}

// DecodeSection decodes JSON into the value type UpdateSection expects.
func DecodeSection(section Section, raw []byte) (any, error) {
	var (
		value any
		err   error
	)
	switch section {
	case SectionPersonalInfo:
		var v types.PersonalInfo
		err = json.Unmarshal(raw, &v)
		value = v
	case SectionExperience:
		v := []types.Experience{}
		err = json.Unmarshal(raw, &v)
		value = v
	case SectionEducation:
		v := []types.Education{}
		err = json.Unmarshal(raw, &v)
		value = v
	case SectionSkills:
		v := []types.Skill{}
		err = json.Unmarshal(raw, &v)
		value = v
	case SectionLanguages:
		v := []types.Language{}
		err = json.Unmarshal(raw, &v)
		value = v
	case SectionCertifications:
		v := []types.Certification{}
		err = json.Unmarshal(raw, &v)
		value = v
	default:
		return nil, &UnknownSectionError{Name: string(section)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", section, err)
	}
	return value, nil
}

// SetPersonalInfo replaces the personal info record.
func (o *Orchestrator) SetPersonalInfo(p types.PersonalInfo) {
	o.replace(SectionPersonalInfo, func(d *types.CVData) { d.PersonalInfo = p })
}

// SetExperience replaces the experience collection.
func (o *Orchestrator) SetExperience(items []types.Experience) {
	o.replace(SectionExperience, func(d *types.CVData) { d.Experience = nonNil(items) })
}

// SetEducation replaces the education collection.
func (o *Orchestrator) SetEducation(items []types.Education) {
	o.replace(SectionEducation, func(d *types.CVData) { d.Education = nonNil(items) })
}

// SetSkills replaces the skills collection.
func (o *Orchestrator) SetSkills(items []types.Skill) {
	o.replace(SectionSkills, func(d *types.CVData) { d.Skills = nonNil(items) })
}

// SetLanguages replaces the languages collection.
func (o *Orchestrator) SetLanguages(items []types.Language) {
	o.replace(SectionLanguages, func(d *types.CVData) { d.Languages = nonNil(items) })
}

// SetCertifications replaces the certifications collection.
func (o *Orchestrator) SetCertifications(items []types.Certification) {
	o.replace(SectionCertifications, func(d *types.CVData) { d.Certifications = nonNil(items) })
}

// replace builds the next document version from a copy of the current one.
func (o *Orchestrator) replace(section Section, apply func(*types.CVData)) {
	next := o.data
	apply(&next)
	o.data = next
	for _, fn := range o.listeners {
		fn(section)
	}
}

// Load replaces the whole document, e.g. after restoring a snapshot, and
// clears every editor's transient state.
func (o *Orchestrator) Load(data types.CVData) {
	o.data = data.Normalize()
	o.resetEditors()
}

// Reset discards the document and starts over with an empty one.
func (o *Orchestrator) Reset() {
	o.Load(types.NewCVData())
}

func (o *Orchestrator) resetEditors() {
	o.experience.ResetLocal()
	o.education.ResetLocal()
	o.skills.ResetLocal()
	o.languages.ResetLocal()
	o.certifications.ResetLocal()
}

// ActiveSection returns the section currently shown.
func (o *Orchestrator) ActiveSection() Section {
	return o.active
}

// SetActiveSection switches the visible section. The document is untouched.
func (o *Orchestrator) SetActiveSection(section Section) error {
	if _, err := ParseSection(string(section)); err != nil {
		return err
	}
	o.active = section
	return nil
}

// PersonalInfo returns the personal info editor.
func (o *Orchestrator) PersonalInfo() *editor.PersonalEditor { return o.personal }

// Experience returns the experience editor.
func (o *Orchestrator) Experience() *editor.Editor[types.Experience] { return o.experience }

// Education returns the education editor.
func (o *Orchestrator) Education() *editor.Editor[types.Education] { return o.education }

// Skills returns the skills editor.
func (o *Orchestrator) Skills() *editor.DraftEditor[types.Skill] { return o.skills }

// Languages returns the languages editor.
func (o *Orchestrator) Languages() *editor.DraftEditor[types.Language] { return o.languages }

// Certifications returns the certifications editor.
func (o *Orchestrator) Certifications() *editor.Editor[types.Certification] { return o.certifications }

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
