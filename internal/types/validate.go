package types

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// yearMonthPattern matches the year-month granularity used by all date fields.
var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		return yearMonthPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("languagelevel", func(fl validator.FieldLevel) bool {
		return LanguageLevel(fl.Field().String()).Valid()
	})
	return v
}

// Issue is an advisory validation finding. Issues decorate the editor (for
// example required-field markers); they never block an edit.
type Issue struct {
	Section string `json:"section"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
}

func (i Issue) String() string {
	if i.ID != "" {
		return fmt.Sprintf("%s[%s].%s: %s", i.Section, i.ID, i.Field, i.Rule)
	}
	return fmt.Sprintf("%s.%s: %s", i.Section, i.Field, i.Rule)
}

// IsValidYearMonth reports whether s has the YYYY-MM form.
func IsValidYearMonth(s string) bool {
	return yearMonthPattern.MatchString(s)
}

// Check validates a single record and returns its issues.
func Check(section, id string, record any) []Issue {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Section: section, ID: id, Field: "(record)", Rule: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Section: section, ID: id, Field: fe.Field(), Rule: fe.Tag()})
	}
	return issues
}

// Validate returns advisory issues for the whole document. An empty document
// only reports the required personal info fields.
func (d CVData) Validate() []Issue {
	var issues []Issue
	issues = append(issues, Check("personalInfo", "", d.PersonalInfo)...)
	for _, e := range d.Experience {
		issues = append(issues, Check("experience", e.ID, e)...)
	}
	for _, e := range d.Education {
		issues = append(issues, Check("education", e.ID, e)...)
	}
	for _, s := range d.Skills {
		issues = append(issues, Check("skills", s.ID, s)...)
	}
	for _, l := range d.Languages {
		issues = append(issues, Check("languages", l.ID, l)...)
	}
	for _, c := range d.Certifications {
		issues = append(issues, Check("certifications", c.ID, c)...)
	}
	return issues
}

// Validate returns advisory issues for the customization options.
func (o CustomizationOptions) Validate() []Issue {
	return Check("customization", "", o)
}
