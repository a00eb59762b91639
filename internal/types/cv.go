// Package types provides type definitions for the CV document and its customization options.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo is the singleton header record of a CV. It has no id and is
// replaced wholesale on every edit.
type PersonalInfo struct {
	FullName string  `json:"fullName" validate:"required"`
	JobTitle string  `json:"jobTitle" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	Website  string  `json:"website" validate:"omitempty,url"`
	Summary  string  `json:"summary"`
	Photo    *string `json:"photo"` // data URL, nil when no photo was uploaded
}

// Experience represents a single position held.
// EndDate is only meaningful when Current is false.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	JobTitle    string `json:"jobTitle" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate" validate:"omitempty,yearmonth"`
	EndDate     string `json:"endDate" validate:"omitempty,yearmonth"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents a degree or course of study.
type Education struct {
	ID          string `json:"id" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate" validate:"omitempty,yearmonth"`
	EndDate     string `json:"endDate" validate:"omitempty,yearmonth"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is a named ability with a 1-5 star rating, grouped by Category for display.
type Skill struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Level    int    `json:"level" validate:"min=1,max=5"`
	Category string `json:"category"`
}

// Language is a spoken language and the holder's proficiency.
type Language struct {
	ID    string        `json:"id" validate:"required"`
	Name  string        `json:"name" validate:"required"`
	Level LanguageLevel `json:"level" validate:"languagelevel"`
}

// Certification is a credential issued by an organization.
type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Date   string `json:"date" validate:"omitempty,yearmonth"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
}

// CVData aggregates all resume content.
type CVData struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
}

// NewCVData returns an empty document: blank personal info and empty collections.
func NewCVData() CVData {
	return CVData{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		Languages:      []Language{},
		Certifications: []Certification{},
	}
}

// Normalize replaces nil collections with empty ones so that a document
// decoded from JSON compares equal to one built with NewCVData.
func (d CVData) Normalize() CVData {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Languages == nil {
		d.Languages = []Language{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	return d
}

// Template identifies one of the visual template variants.
type Template string

const (
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateCreative Template = "creative"
	TemplateRTL      Template = "rtl"
)

// Layout identifies the page arrangement. Not every template honours it.
type Layout string

const (
	LayoutSidebarLeft  Layout = "sidebar-left"
	LayoutSidebarRight Layout = "sidebar-right"
	LayoutTopHeader    Layout = "top-header"
)

// CustomizationOptions controls presentation only; it never affects CV content.
type CustomizationOptions struct {
	Template     Template `json:"template"`
	FontFamily   string   `json:"fontFamily"`
	PrimaryColor string   `json:"primaryColor" validate:"omitempty,hexcolor"`
	AccentColor  string   `json:"accentColor" validate:"omitempty,hexcolor"`
	Layout       Layout   `json:"layout"`
}

// DefaultCustomization returns the options a fresh session starts with.
func DefaultCustomization() CustomizationOptions {
	return CustomizationOptions{
		Template:     TemplateClassic,
		FontFamily:   "Inter",
		PrimaryColor: "#3B82F6",
		AccentColor:  "#EF4444",
		Layout:       LayoutSidebarLeft,
	}
}
