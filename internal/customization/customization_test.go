package customization

import (
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	m := NewDefault()
	assert.Equal(t, types.DefaultCustomization(), m.Options())
	assert.Equal(t, types.TemplateClassic, m.Options().Template)
}

func TestUpdate_ReplacesExactlyOneField(t *testing.T) {
	tests := []struct {
		key   Key
		value string
		want  func(o types.CustomizationOptions) types.CustomizationOptions
	}{
		{KeyTemplate, "modern", func(o types.CustomizationOptions) types.CustomizationOptions {
			o.Template = types.TemplateModern
			return o
		}},
		{KeyFontFamily, "Georgia", func(o types.CustomizationOptions) types.CustomizationOptions {
			o.FontFamily = "Georgia"
			return o
		}},
		{KeyPrimaryColor, "#000000", func(o types.CustomizationOptions) types.CustomizationOptions {
			o.PrimaryColor = "#000000"
			return o
		}},
		{KeyAccentColor, "#FFFFFF", func(o types.CustomizationOptions) types.CustomizationOptions {
			o.AccentColor = "#FFFFFF"
			return o
		}},
		{KeyLayout, "top-header", func(o types.CustomizationOptions) types.CustomizationOptions {
			o.Layout = types.LayoutTopHeader
			return o
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewDefault()
			require.NoError(t, m.Update(tt.key, tt.value))
			assert.Equal(t, tt.want(types.DefaultCustomization()), m.Options())
		})
	}
}

func TestUpdate_AnyCombinationIsAccepted(t *testing.T) {
	m := NewDefault()

	require.NoError(t, m.Update(KeyTemplate, "rtl"))
	require.NoError(t, m.Update(KeyLayout, "sidebar-right"))
	require.NoError(t, m.Update(KeyTemplate, "brutalist"))

	assert.Equal(t, types.Template("brutalist"), m.Options().Template)
	assert.Equal(t, types.LayoutSidebarRight, m.Options().Layout)
}

func TestUpdate_UnknownKey(t *testing.T) {
	m := NewDefault()

	err := m.Update("borderRadius", "4px")

	var keyErr *UnknownKeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, types.DefaultCustomization(), m.Options())
}

func TestApplyPreset(t *testing.T) {
	m := NewDefault()
	require.NoError(t, m.Update(KeyTemplate, "creative"))

	require.NoError(t, m.ApplyPreset("tech"))

	assert.Equal(t, "#6366F1", m.Options().PrimaryColor)
	assert.Equal(t, "#14B8A6", m.Options().AccentColor)
	assert.Equal(t, types.TemplateCreative, m.Options().Template)

	err := m.ApplyPreset("neon")
	var presetErr *UnknownPresetError
	assert.ErrorAs(t, err, &presetErr)
	assert.Equal(t, "#6366F1", m.Options().PrimaryColor)
}

func TestFindPreset(t *testing.T) {
	for _, p := range types.ColorPresets {
		found, ok := FindPreset(p.Name)
		require.True(t, ok)
		assert.Equal(t, p, found)
	}
	_, ok := FindPreset("")
	assert.False(t, ok)
}
