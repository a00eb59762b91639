package rendering

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// View is the read-only projection of a document that every template variant consumes.
type View struct {
	Variant   types.Template
	Direction string
	Layout    types.Layout
	Font      string
	Primary   string
	Accent    string

	Personal       PersonalView
	Experience     []ExperienceView
	Education      []EducationView
	SkillGroups    []SkillGroup
	Languages      []LanguageView
	Certifications []CertificationView
}

// PersonalView holds the header fields.
type PersonalView struct {
	FullName string
	JobTitle string
	Email    string
	Phone    string
	Location string
	Website  string
	Summary  string
	Photo    template.URL // only set for data:image URLs
}

// ExperienceView is one rendered position.
type ExperienceView struct {
	ID          string
	JobTitle    string
	Company     string
	Location    string
	Period      string
	Description string
}

// EducationView is one rendered education entry.
type EducationView struct {
	ID          string
	Degree      string
	Institution string
	Location    string
	Period      string
	GPA         string
	Description string
}

// SkillGroup is the skills of one category, in document order.
type SkillGroup struct {
	Category string
	Skills   []SkillView
}

// SkillView is one rendered skill with its star rating.
type SkillView struct {
	ID    string
	Name  string
	Level int
	Stars []bool // MaxSkillLevel entries, the first Level of them filled
}

// LanguageView is one rendered language.
type LanguageView struct {
	ID    string
	Name  string
	Level string
	Badge string
}

// CertificationView is one rendered certification.
type CertificationView struct {
	ID     string
	Name   string
	Issuer string
	Date   string
	URL    string
}

var (
	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	fontPattern     = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// ResolveVariant maps a template name onto a known variant, defaulting to classic.
func ResolveVariant(t types.Template) types.Template {
	switch t {
	case types.TemplateClassic, types.TemplateModern, types.TemplateCreative, types.TemplateRTL:
		return t
	default:
		return types.TemplateClassic
	}
}

// safeColor returns c if it is a hex color, otherwise fallback.
func safeColor(c, fallback string) string {
	if hexColorPattern.MatchString(c) {
		return c
	}
	return fallback
}

// safeFont returns f if it is a plain font family name, otherwise fallback.
func safeFont(f, fallback string) string {
	if fontPattern.MatchString(f) {
		return f
	}
	return fallback
}

// safePhoto only trusts inline image data URLs.
func safePhoto(photo *string) template.URL {
	if photo == nil || !strings.HasPrefix(*photo, "data:image/") {
		return ""
	}
	return template.URL(*photo)
}

// FormatPeriod renders a date range; a current position ends with "Present".
func FormatPeriod(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

// GroupSkills groups skills by category. Groups appear in the order their
// category is first seen; skills keep their document order within a group.
func GroupSkills(skills []types.Skill) []SkillGroup {
	groups := []SkillGroup{}
	index := make(map[string]int)
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, SkillView{
			ID:    s.ID,
			Name:  s.Name,
			Level: s.Level,
			Stars: stars(s.Level),
		})
	}
	return groups
}

func stars(level int) []bool {
	out := make([]bool, types.MaxSkillLevel)
	for i := range out {
		out[i] = i < level
	}
	return out
}

// BuildView projects data and opts into a View. It never modifies its inputs.
func BuildView(data types.CVData, opts types.CustomizationOptions) View {
	defaults := types.DefaultCustomization()
	variant := ResolveVariant(opts.Template)

	v := View{
		Variant:   variant,
		Direction: "ltr",
		Layout:    opts.Layout,
		Font:      safeFont(opts.FontFamily, defaults.FontFamily),
		Primary:   safeColor(opts.PrimaryColor, defaults.PrimaryColor),
		Accent:    safeColor(opts.AccentColor, defaults.AccentColor),
		Personal: PersonalView{
			FullName: data.PersonalInfo.FullName,
			JobTitle: data.PersonalInfo.JobTitle,
			Email:    data.PersonalInfo.Email,
			Phone:    data.PersonalInfo.Phone,
			Location: data.PersonalInfo.Location,
			Website:  data.PersonalInfo.Website,
			Summary:  data.PersonalInfo.Summary,
			Photo:    safePhoto(data.PersonalInfo.Photo),
		},
		SkillGroups: GroupSkills(data.Skills),
	}
	if variant == types.TemplateRTL {
		v.Direction = "rtl"
	}
	if v.Layout == "" {
		v.Layout = defaults.Layout
	}

	for _, e := range data.Experience {
		v.Experience = append(v.Experience, ExperienceView{
			ID:          e.ID,
			JobTitle:    e.JobTitle,
			Company:     e.Company,
			Location:    e.Location,
			Period:      FormatPeriod(e.StartDate, e.EndDate, e.Current),
			Description: e.Description,
		})
	}
	for _, e := range data.Education {
		v.Education = append(v.Education, EducationView{
			ID:          e.ID,
			Degree:      e.Degree,
			Institution: e.Institution,
			Location:    e.Location,
			Period:      FormatPeriod(e.StartDate, e.EndDate, false),
			GPA:         e.GPA,
			Description: e.Description,
		})
	}
	for _, l := range data.Languages {
		v.Languages = append(v.Languages, LanguageView{
			ID:    l.ID,
			Name:  l.Name,
			Level: string(l.Level),
			Badge: l.Level.Badge(),
		})
	}
	for _, c := range data.Certifications {
		v.Certifications = append(v.Certifications, CertificationView{
			ID:     c.ID,
			Name:   c.Name,
			Issuer: c.Issuer,
			Date:   c.Date,
			URL:    c.URL,
		})
	}
	return v
}
