package editor

import (
	"fmt"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collection is an in-memory owner that records every emission.
type collection[T any] struct {
	items    []T
	emitted  int
	previous [][]T
}

func (c *collection[T]) source() Source[T] {
	return Source[T]{
		Load: func() []T { return c.items },
		Store: func(items []T) {
			c.previous = append(c.previous, c.items)
			c.items = items
			c.emitted++
		},
	}
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestEditor_AddAppendsAndExpands(t *testing.T) {
	c := &collection[types.Experience]{items: []types.Experience{}}
	ed := NewExperience(c.source())

	first := ed.Add()
	second := ed.Add()

	require.Len(t, c.items, 2)
	assert.Equal(t, 2, c.emitted)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second.ID, c.items[1].ID, "new record goes to the end")
	assert.Equal(t, "", c.items[0].JobTitle)
	assert.False(t, c.items[0].Current)
	assert.True(t, ed.IsExpanded(first.ID))
	assert.True(t, ed.IsExpanded(second.ID))
	assert.Equal(t, []string{first.ID, second.ID}, ed.Expanded())
}

func TestEditor_AddNeverDuplicatesIDs(t *testing.T) {
	c := &collection[types.Education]{items: []types.Education{{ID: "id-1"}, {ID: "id-2"}}}
	ed := NewEducation(c.source(), WithIDGenerator[types.Education](counterIDs()))

	added := ed.Add()

	assert.Equal(t, "id-3", added.ID)
	assert.Len(t, c.items, 3)
}

func TestEditor_RemovedIDIsNotReissued(t *testing.T) {
	ids := []string{"a", "a", "b"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}
	c := &collection[types.Certification]{items: []types.Certification{}}
	ed := NewCertifications(c.source(), WithIDGenerator[types.Certification](gen))

	first := ed.Add()
	require.True(t, ed.Remove(first.ID))
	second := ed.Add()

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestEditor_UpdateChangesOneField(t *testing.T) {
	original := []types.Education{
		{ID: "1", Degree: "BSc", Institution: "MIT"},
		{ID: "2", Degree: "MSc", Institution: "ETH"},
	}
	c := &collection[types.Education]{items: original}
	ed := NewEducation(c.source())

	err := ed.Update("2", "institution", "EPFL")
	require.NoError(t, err)

	assert.Equal(t, types.Education{ID: "1", Degree: "BSc", Institution: "MIT"}, c.items[0])
	assert.Equal(t, types.Education{ID: "2", Degree: "MSc", Institution: "EPFL"}, c.items[1])
	assert.Equal(t, "ETH", original[1].Institution, "previous collection must not be mutated")
}

func TestEditor_UpdateMissingIDIsNoop(t *testing.T) {
	c := &collection[types.Education]{items: []types.Education{{ID: "1", Degree: "BSc"}}}
	ed := NewEducation(c.source())

	err := ed.Update("nope", "degree", "PhD")

	require.NoError(t, err)
	assert.Equal(t, 0, c.emitted)
	assert.Equal(t, "BSc", c.items[0].Degree)
}

func TestEditor_UpdateUnknownField(t *testing.T) {
	c := &collection[types.Education]{items: []types.Education{{ID: "1"}}}
	ed := NewEducation(c.source())

	err := ed.Update("1", "honours", "first")

	var fieldErr *types.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "honours", fieldErr.Field)
	assert.Equal(t, 0, c.emitted)
}

func TestEditor_UpdateDoesNotValidateContent(t *testing.T) {
	c := &collection[types.Experience]{items: []types.Experience{{ID: "1", JobTitle: "Dev"}}}
	ed := NewExperience(c.source())

	require.NoError(t, ed.Update("1", "jobTitle", ""))
	require.NoError(t, ed.Update("1", "startDate", "not a date"))

	assert.Equal(t, "", c.items[0].JobTitle)
	assert.Equal(t, "not a date", c.items[0].StartDate)
}

func TestExperience_CurrentClearsEndDate(t *testing.T) {
	c := &collection[types.Experience]{items: []types.Experience{
		{ID: "1", JobTitle: "Dev", EndDate: "2023-05"},
		{ID: "2", JobTitle: "Ops", EndDate: "2021-01"},
	}}
	ed := NewExperience(c.source())

	require.NoError(t, ed.Update("1", "current", true))

	assert.True(t, c.items[0].Current)
	assert.Equal(t, "", c.items[0].EndDate)
	assert.Equal(t, "2021-01", c.items[1].EndDate)
	assert.Equal(t, 1, c.emitted, "current and endDate change as a single edit")
}

func TestExperience_UncheckingCurrentKeepsEndDateEmpty(t *testing.T) {
	c := &collection[types.Experience]{items: []types.Experience{{ID: "1", Current: true}}}
	ed := NewExperience(c.source())

	require.NoError(t, ed.Update("1", "current", false))
	require.NoError(t, ed.Update("1", "endDate", "2024-02"))

	assert.False(t, c.items[0].Current)
	assert.Equal(t, "2024-02", c.items[0].EndDate)
}

func TestEditor_AddFields(t *testing.T) {
	t.Run("current clears end date in any field order", func(t *testing.T) {
		c := &collection[types.Experience]{items: []types.Experience{}}
		ed := NewExperience(c.source())

		added, err := ed.AddFields(map[string]any{"endDate": "2023-05", "current": true, "company": "Acme", "id": "mine"})

		require.NoError(t, err)
		require.Len(t, c.items, 1)
		assert.Equal(t, added, c.items[0])
		assert.NotEqual(t, "mine", added.ID)
		assert.True(t, added.Current)
		assert.Empty(t, added.EndDate)
		assert.Equal(t, "Acme", added.Company)
		assert.Equal(t, 1, c.emitted)
	})

	t.Run("named records are trimmed", func(t *testing.T) {
		c := &collection[types.Skill]{items: []types.Skill{}}
		ed := NewSkills(c.source())

		added, err := ed.AddFields(map[string]any{"name": "  Go ", "level": float64(5)})

		require.NoError(t, err)
		assert.Equal(t, "Go", added.Name)
		assert.Equal(t, 5, added.Level)
	})

	t.Run("invalid records are not stored", func(t *testing.T) {
		c := &collection[types.Skill]{items: []types.Skill{}}
		ed := NewSkills(c.source())

		_, err := ed.AddFields(map[string]any{"name": "Go", "level": float64(99)})
		var fieldErr *types.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "level", fieldErr.Field)

		_, err = ed.AddFields(map[string]any{"name": "   "})
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "skill", fieldErr.Record)
		assert.Equal(t, "name", fieldErr.Field)

		assert.Empty(t, c.items)
		assert.Equal(t, 0, c.emitted)
	})
}

func TestEditor_Remove(t *testing.T) {
	c := &collection[types.Certification]{items: []types.Certification{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	ed := NewCertifications(c.source())
	ed.ToggleExpanded("2")

	assert.True(t, ed.Remove("2"))
	assert.Len(t, c.items, 2)
	assert.Equal(t, []string{"1", "3"}, []string{c.items[0].ID, c.items[1].ID})
	assert.False(t, ed.IsExpanded("2"))

	assert.False(t, ed.Remove("2"), "second remove of the same id is a no-op")
	assert.Len(t, c.items, 2)
	assert.Equal(t, 1, c.emitted)
}

func TestEditor_ToggleExpanded(t *testing.T) {
	c := &collection[types.Education]{items: []types.Education{{ID: "1"}, {ID: "2"}}}
	ed := NewEducation(c.source())

	assert.True(t, ed.ToggleExpanded("1"))
	assert.True(t, ed.ToggleExpanded("2"))
	assert.Equal(t, []string{"1", "2"}, ed.Expanded(), "several records may be expanded at once")
	assert.False(t, ed.ToggleExpanded("1"))
	assert.Equal(t, []string{"2"}, ed.Expanded())
	assert.False(t, ed.ToggleExpanded("missing"))
	assert.Equal(t, 0, c.emitted, "expanded state is local only")

	ed.ResetLocal()
	assert.Empty(t, ed.Expanded())
}

func TestEditor_ItemsIsACopy(t *testing.T) {
	c := &collection[types.Education]{items: []types.Education{{ID: "1", Degree: "BSc"}}}
	ed := NewEducation(c.source())

	items := ed.Items()
	items[0].Degree = "changed"

	assert.Equal(t, "BSc", c.items[0].Degree)
	got, ok := ed.Get("1")
	assert.True(t, ok)
	assert.Equal(t, "BSc", got.Degree)
	_, ok = ed.Get("2")
	assert.False(t, ok)
}

func TestSummaries(t *testing.T) {
	assert.Equal(t, Summary{Title: "New Position", Subtitle: "Company Name"}, SummarizeExperience(types.Experience{}))
	assert.Equal(t, Summary{Title: "SRE", Subtitle: "Acme"}, SummarizeExperience(types.Experience{JobTitle: "SRE", Company: "Acme"}))
	assert.Equal(t, "New Degree", SummarizeEducation(types.Education{}).Title)
	assert.Equal(t, "Issuing Organization", SummarizeCertification(types.Certification{Name: "CKA"}).Subtitle)
}
