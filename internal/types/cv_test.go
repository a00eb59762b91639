package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCVData_Empty(t *testing.T) {
	data := NewCVData()

	assert.Equal(t, PersonalInfo{}, data.PersonalInfo)
	assert.NotNil(t, data.Experience)
	assert.Empty(t, data.Experience)
	assert.NotNil(t, data.Education)
	assert.NotNil(t, data.Skills)
	assert.NotNil(t, data.Languages)
	assert.NotNil(t, data.Certifications)
}

func TestCVData_NormalizeAfterDecode(t *testing.T) {
	var data CVData
	err := json.Unmarshal([]byte(`{"personalInfo":{"fullName":"Ada","photo":null}}`), &data)
	require.NoError(t, err)

	normalized := data.Normalize()
	assert.Equal(t, "Ada", normalized.PersonalInfo.FullName)
	assert.Nil(t, normalized.PersonalInfo.Photo)
	assert.Equal(t, NewCVData().Experience, normalized.Experience)
	assert.Equal(t, NewCVData().Certifications, normalized.Certifications)
}

func TestCVData_JSONFieldNames(t *testing.T) {
	data := NewCVData()
	data.Experience = append(data.Experience, Experience{ID: "1", JobTitle: "Engineer", Current: true})

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, key := range []string{"personalInfo", "experience", "education", "skills", "languages", "certifications"} {
		assert.Contains(t, generic, key)
	}
	exp := generic["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Engineer", exp["jobTitle"])
	assert.Equal(t, true, exp["current"])
}

func TestExperience_WithField(t *testing.T) {
	base := Experience{ID: "e1", JobTitle: "Dev", EndDate: "2023-05"}

	tests := []struct {
		name    string
		field   string
		value   any
		check   func(t *testing.T, got Experience)
		wantErr bool
	}{
		{
			name:  "job title",
			field: "jobTitle",
			value: "Lead",
			check: func(t *testing.T, got Experience) { assert.Equal(t, "Lead", got.JobTitle) },
		},
		{
			name:  "current",
			field: "current",
			value: true,
			check: func(t *testing.T, got Experience) { assert.True(t, got.Current) },
		},
		{name: "current wrong type", field: "current", value: "yes", wantErr: true},
		{name: "unknown field", field: "salary", value: "lots", wantErr: true},
		{name: "id is not editable", field: "id", value: "e2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.WithField(tt.field, tt.value)
			if tt.wantErr {
				var fieldErr *FieldError
				assert.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "e1", got.ID)
			tt.check(t, got)
		})
	}
	assert.Equal(t, "Dev", base.JobTitle, "receiver must not be mutated")
}

func TestSkill_WithFieldLevel(t *testing.T) {
	s := Skill{ID: "s1", Name: "Go", Level: 3, Category: "Technical"}

	got, err := s.WithField("level", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Level)

	got, err = s.WithField("level", float64(4))
	require.NoError(t, err)
	assert.Equal(t, 4, got.Level)

	_, err = s.WithField("level", 6)
	assert.Error(t, err)
	_, err = s.WithField("level", 0)
	assert.Error(t, err)
	_, err = s.WithField("level", 2.5)
	assert.Error(t, err)

	got, err = s.WithField("category", "Whatever I Like")
	require.NoError(t, err)
	assert.Equal(t, "Whatever I Like", got.Category)
}

func TestPersonalInfo_WithFieldPhoto(t *testing.T) {
	p := PersonalInfo{FullName: "Ada"}

	withPhoto, err := p.WithField("photo", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.NotNil(t, withPhoto.Photo)
	assert.Equal(t, "data:image/png;base64,AAAA", *withPhoto.Photo)

	cleared, err := withPhoto.WithField("photo", nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Photo)
	assert.Equal(t, "Ada", cleared.FullName)
}

func TestLanguageLevel(t *testing.T) {
	for _, level := range LanguageLevels {
		assert.True(t, level.Valid(), level)
		assert.NotEmpty(t, level.Badge())
	}
	assert.False(t, LanguageLevel("Expert").Valid())
	assert.Equal(t, "green", LevelNative.Badge())
	assert.Equal(t, "gray", LanguageLevel("Expert").Badge())
}

func TestCVData_Validate(t *testing.T) {
	data := NewCVData()
	data.PersonalInfo = PersonalInfo{FullName: "Ada Lovelace", JobTitle: "Analyst", Email: "ada@example.com"}
	data.Experience = []Experience{{ID: "e1", JobTitle: "Analyst", Company: "Engine Co", StartDate: "1843-13"}}
	data.Skills = []Skill{{ID: "s1", Name: "Math", Level: 5, Category: "Anything"}}
	data.Languages = []Language{{ID: "l1", Name: "French", Level: "Expert"}}

	issues := data.Validate()

	require.Len(t, issues, 2)
	assert.Equal(t, Issue{Section: "experience", ID: "e1", Field: "startDate", Rule: "yearmonth"}, issues[0])
	assert.Equal(t, Issue{Section: "languages", ID: "l1", Field: "level", Rule: "languagelevel"}, issues[1])
}

func TestCVData_ValidateEmptyDocument(t *testing.T) {
	issues := NewCVData().Validate()

	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		assert.Equal(t, "personalInfo", issue.Section)
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{"fullName", "jobTitle", "email"}, fields)
}

func TestCustomizationOptions_Validate(t *testing.T) {
	assert.Empty(t, DefaultCustomization().Validate())

	opts := DefaultCustomization()
	opts.PrimaryColor = "blue-ish"
	issues := opts.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, "primaryColor", issues[0].Field)
}

func TestIsValidYearMonth(t *testing.T) {
	assert.True(t, IsValidYearMonth("2023-05"))
	assert.False(t, IsValidYearMonth("2023-5"))
	assert.False(t, IsValidYearMonth("May 2023"))
	assert.False(t, IsValidYearMonth(""))
}
