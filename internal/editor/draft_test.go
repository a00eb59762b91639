package editor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkills_DraftCommit(t *testing.T) {
	c := &collection[types.Skill]{items: []types.Skill{}}
	ed := NewSkills(c.source())

	assert.Equal(t, types.Skill{Category: "Technical", Level: 3}, ed.Draft())

	require.NoError(t, ed.SetDraftField("name", "  JavaScript "))
	require.NoError(t, ed.SetDraftField("level", 4))
	assert.Equal(t, 0, c.emitted, "draft edits stay local")

	skill, ok := ed.Commit()
	require.True(t, ok)

	require.Len(t, c.items, 1)
	assert.Equal(t, "JavaScript", skill.Name)
	assert.Equal(t, skill, c.items[0])
	assert.NotEmpty(t, skill.ID)
	assert.Equal(t, "Technical", skill.Category)
	assert.Equal(t, 4, skill.Level)
	assert.Equal(t, NewSkillDraft(), ed.Draft(), "draft resets after commit")
}

func TestSkills_CommitBlankNameIsNoop(t *testing.T) {
	c := &collection[types.Skill]{items: []types.Skill{}}
	ed := NewSkills(c.source())

	_, ok := ed.Commit()
	assert.False(t, ok)

	require.NoError(t, ed.SetDraftField("name", "   \t"))
	_, ok = ed.Commit()
	assert.False(t, ok)

	assert.Empty(t, c.items)
	assert.Equal(t, 0, c.emitted)
	assert.Equal(t, "   \t", ed.Draft().Name, "rejected draft is kept for further editing")
}

func TestSkills_DraftRejectsBadLevel(t *testing.T) {
	c := &collection[types.Skill]{items: []types.Skill{}}
	ed := NewSkills(c.source())

	err := ed.SetDraftField("level", 9)
	assert.Error(t, err)
	assert.Equal(t, 3, ed.Draft().Level)
}

func TestLanguages_DraftCommitAndUpdate(t *testing.T) {
	c := &collection[types.Language]{items: []types.Language{}}
	ed := NewLanguages(c.source())

	assert.Equal(t, types.LevelIntermediate, ed.Draft().Level)
	require.NoError(t, ed.SetDraftField("name", "Spanish"))
	require.NoError(t, ed.SetDraftField("level", "Fluent"))

	lang, ok := ed.Commit()
	require.True(t, ok)
	assert.Equal(t, types.LevelFluent, lang.Level)

	require.NoError(t, ed.Update(lang.ID, "level", "Native"))
	assert.Equal(t, types.LevelNative, c.items[0].Level)

	assert.True(t, ed.Remove(lang.ID))
	assert.Empty(t, c.items)
}

func TestDraftEditor_ResetLocal(t *testing.T) {
	c := &collection[types.Language]{items: []types.Language{}}
	ed := NewLanguages(c.source())
	require.NoError(t, ed.SetDraftField("name", "German"))

	ed.ResetLocal()

	assert.Equal(t, NewLanguageDraft(), ed.Draft())
}

func TestPersonalEditor_UpdateReplacesRecord(t *testing.T) {
	info := types.PersonalInfo{FullName: "Ada"}
	var stored []types.PersonalInfo
	ed := NewPersonal(func() types.PersonalInfo { return info }, func(p types.PersonalInfo) {
		stored = append(stored, p)
		info = p
	})

	require.NoError(t, ed.Update("email", "ada@example.com"))

	require.Len(t, stored, 1)
	assert.Equal(t, types.PersonalInfo{FullName: "Ada", Email: "ada@example.com"}, ed.Info())
	assert.Error(t, ed.Update("nickname", "A"))
	assert.Len(t, stored, 1)
}

func TestPersonalEditor_Photo(t *testing.T) {
	info := types.PersonalInfo{}
	ed := NewPersonal(func() types.PersonalInfo { return info }, func(p types.PersonalInfo) { info = p })

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	dataURL, err := ed.SetPhoto(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	require.NotNil(t, info.Photo)
	assert.Equal(t, dataURL, *info.Photo)

	ed.ClearPhoto()
	assert.Nil(t, info.Photo)
}

func TestPhotoDataURL_RejectsNonImage(t *testing.T) {
	_, err := PhotoDataURL([]byte("just some text"))

	var photoErr *PhotoError
	require.ErrorAs(t, err, &photoErr)
	assert.Contains(t, photoErr.MIME, "text/plain")
}
