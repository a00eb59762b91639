package editor

import "github.com/jonathan/cv-builder/internal/types"

// Draft defaults for the skills and languages editors.
const (
	DefaultSkillCategory = "Technical"
	DefaultSkillLevel    = 3
	DefaultLanguageLevel = types.LevelIntermediate
)

// ClearEndDateWhenCurrent empties EndDate whenever an experience is marked
// current. Installed on every experience editor.
func ClearEndDateWhenCurrent(updated types.Experience, field string) types.Experience {
	if field == "current" && updated.Current {
		updated.EndDate = ""
	}
	return updated
}

// NewExperience creates the experience editor.
func NewExperience(source Source[types.Experience], opts ...Option[types.Experience]) *Editor[types.Experience] {
	opts = append([]Option[types.Experience]{WithUpdateHook[types.Experience](ClearEndDateWhenCurrent)}, opts...)
	return New(source, func() types.Experience { return types.Experience{} }, opts...)
}

// NewEducation creates the education editor.
func NewEducation(source Source[types.Education], opts ...Option[types.Education]) *Editor[types.Education] {
	return New(source, func() types.Education { return types.Education{} }, opts...)
}

// NewCertifications creates the certifications editor.
func NewCertifications(source Source[types.Certification], opts ...Option[types.Certification]) *Editor[types.Certification] {
	return New(source, func() types.Certification { return types.Certification{} }, opts...)
}

// NewSkillDraft returns the default skill draft.
func NewSkillDraft() types.Skill {
	return types.Skill{Category: DefaultSkillCategory, Level: DefaultSkillLevel}
}

// NewSkills creates the skills editor with its draft.
func NewSkills(source Source[types.Skill], opts ...Option[types.Skill]) *DraftEditor[types.Skill] {
	return NewDraft(New(source, NewSkillDraft, opts...), NewSkillDraft)
}

// NewLanguageDraft returns the default language draft.
func NewLanguageDraft() types.Language {
	return types.Language{Level: DefaultLanguageLevel}
}

// NewLanguages creates the languages editor with its draft.
func NewLanguages(source Source[types.Language], opts ...Option[types.Language]) *DraftEditor[types.Language] {
	return NewDraft(New(source, NewLanguageDraft, opts...), NewLanguageDraft)
}

// Summary is the one-line header shown for a collapsed record.
type Summary struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// SummarizeExperience returns the collapsed header for an experience.
func SummarizeExperience(e types.Experience) Summary {
	return Summary{Title: orPlaceholder(e.JobTitle, "New Position"), Subtitle: orPlaceholder(e.Company, "Company Name")}
}

// SummarizeEducation returns the collapsed header for an education entry.
func SummarizeEducation(e types.Education) Summary {
	return Summary{Title: orPlaceholder(e.Degree, "New Degree"), Subtitle: orPlaceholder(e.Institution, "Institution Name")}
}

// SummarizeCertification returns the collapsed header for a certification.
func SummarizeCertification(c types.Certification) Summary {
	return Summary{Title: orPlaceholder(c.Name, "New Certification"), Subtitle: orPlaceholder(c.Issuer, "Issuing Organization")}
}
