package types

import (
	"fmt"
	"math"
)

// FieldError reports a field update that could not be applied: either the
// field does not exist on the record or the value has the wrong type.
type FieldError struct {
	Record  string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Record, e.Field, e.Message)
}

func unknownField(record, field string) error {
	return &FieldError{Record: record, Field: field, Message: "unknown field"}
}

func asString(record, field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case LanguageLevel:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", &FieldError{Record: record, Field: field, Message: fmt.Sprintf("expected string, got %T", value)}
	}
}

func asBool(record, field string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &FieldError{Record: record, Field: field, Message: fmt.Sprintf("expected bool, got %T", value)}
	}
	return b, nil
}

// asInt accepts Go integers and the float64 produced by encoding/json.
func asInt(record, field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, &FieldError{Record: record, Field: field, Message: fmt.Sprintf("expected integer, got %v", v)}
		}
		return int(v), nil
	default:
		return 0, &FieldError{Record: record, Field: field, Message: fmt.Sprintf("expected integer, got %T", value)}
	}
}

// WithField returns a copy of p with one field replaced. The photo field
// accepts a data URL string, or nil to clear it.
func (p PersonalInfo) WithField(field string, value any) (PersonalInfo, error) {
	if field == "photo" {
		if value == nil {
			p.Photo = nil
			return p, nil
		}
		s, err := asString("personalInfo", field, value)
		if err != nil {
			return p, err
		}
		p.Photo = &s
		return p, nil
	}

	s, err := asString("personalInfo", field, value)
	if err != nil {
		return p, err
	}
	switch field {
	case "fullName":
		p.FullName = s
	case "jobTitle":
		p.JobTitle = s
	case "email":
		p.Email = s
	case "phone":
		p.Phone = s
	case "location":
		p.Location = s
	case "website":
		p.Website = s
	case "summary":
		p.Summary = s
	default:
		return p, unknownField("personalInfo", field)
	}
	return p, nil
}

// GetID returns the record id.
func (e Experience) GetID() string { return e.ID }

// WithID returns a copy of e carrying id.
func (e Experience) WithID(id string) Experience {
	e.ID = id
	return e
}

// WithField returns a copy of e with one field replaced.
func (e Experience) WithField(field string, value any) (Experience, error) {
	if field == "current" {
		b, err := asBool("experience", field, value)
		if err != nil {
			return e, err
		}
		e.Current = b
		return e, nil
	}

	s, err := asString("experience", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "jobTitle":
		e.JobTitle = s
	case "company":
		e.Company = s
	case "location":
		e.Location = s
	case "startDate":
		e.StartDate = s
	case "endDate":
		e.EndDate = s
	case "description":
		e.Description = s
	default:
		return e, unknownField("experience", field)
	}
	return e, nil
}

// GetID returns the record id.
func (e Education) GetID() string { return e.ID }

// WithID returns a copy of e carrying id.
func (e Education) WithID(id string) Education {
	e.ID = id
	return e
}

// WithField returns a copy of e with one field replaced.
func (e Education) WithField(field string, value any) (Education, error) {
	s, err := asString("education", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "degree":
		e.Degree = s
	case "institution":
		e.Institution = s
	case "location":
		e.Location = s
	case "startDate":
		e.StartDate = s
	case "endDate":
		e.EndDate = s
	case "gpa":
		e.GPA = s
	case "description":
		e.Description = s
	default:
		return e, unknownField("education", field)
	}
	return e, nil
}

// GetID returns the record id.
func (s Skill) GetID() string { return s.ID }

// WithID returns a copy of s carrying id.
func (s Skill) WithID(id string) Skill {
	s.ID = id
	return s
}

// DisplayName is the name used to decide whether a draft can be committed.
func (s Skill) DisplayName() string { return s.Name }

// WithField returns a copy of s with one field replaced. Levels outside
// MinSkillLevel..MaxSkillLevel are rejected.
func (s Skill) WithField(field string, value any) (Skill, error) {
	switch field {
	case "level":
		level, err := asInt("skill", field, value)
		if err != nil {
			return s, err
		}
		if level < MinSkillLevel || level > MaxSkillLevel {
			return s, &FieldError{Record: "skill", Field: field, Message: fmt.Sprintf("level must be between %d and %d", MinSkillLevel, MaxSkillLevel)}
		}
		s.Level = level
		return s, nil
	case "name", "category":
		str, err := asString("skill", field, value)
		if err != nil {
			return s, err
		}
		if field == "name" {
			s.Name = str
		} else {
			s.Category = str
		}
		return s, nil
	default:
		return s, unknownField("skill", field)
	}
}

// GetID returns the record id.
func (l Language) GetID() string { return l.ID }

// WithID returns a copy of l carrying id.
func (l Language) WithID(id string) Language {
	l.ID = id
	return l
}

// DisplayName is the name used to decide whether a draft can be committed.
func (l Language) DisplayName() string { return l.Name }

// WithField returns a copy of l with one field replaced.
func (l Language) WithField(field string, value any) (Language, error) {
	s, err := asString("language", field, value)
	if err != nil {
		return l, err
	}
	switch field {
	case "name":
		l.Name = s
	case "level":
		l.Level = LanguageLevel(s)
	default:
		return l, unknownField("language", field)
	}
	return l, nil
}

// GetID returns the record id.
func (c Certification) GetID() string { return c.ID }

// WithID returns a copy of c carrying id.
func (c Certification) WithID(id string) Certification {
	c.ID = id
	return c
}

// WithField returns a copy of c with one field replaced.
func (c Certification) WithField(field string, value any) (Certification, error) {
	s, err := asString("certification", field, value)
	if err != nil {
		return c, err
	}
	switch field {
	case "name":
		c.Name = s
	case "issuer":
		c.Issuer = s
	case "date":
		c.Date = s
	case "url":
		c.URL = s
	default:
		return c, unknownField("certification", field)
	}
	return c, nil
}
