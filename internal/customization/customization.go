// Package customization holds the presentation options edited by the settings panel.
package customization

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Key names one field of CustomizationOptions.
type Key string

const (
	KeyTemplate     Key = "template"
	KeyFontFamily   Key = "fontFamily"
	KeyPrimaryColor Key = "primaryColor"
	KeyAccentColor  Key = "accentColor"
	KeyLayout       Key = "layout"
)

// Keys lists every customization key.
var Keys = []Key{KeyTemplate, KeyFontFamily, KeyPrimaryColor, KeyAccentColor, KeyLayout}

// UnknownKeyError reports a key that is not a customization field.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown customization key: %q", e.Key)
}

// UnknownPresetError reports a preset name that does not exist.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown color preset: %q", e.Name)
}

// Model owns the current options. Any combination of values is accepted;
// the renderer falls back to the classic template for unknown names.
type Model struct {
	opts types.CustomizationOptions
}

// New creates a model starting from opts.
func New(opts types.CustomizationOptions) *Model {
	return &Model{opts: opts}
}

// NewDefault creates a model with types.DefaultCustomization.
func NewDefault() *Model {
	return New(types.DefaultCustomization())
}

// Options returns the current options.
func (m *Model) Options() types.CustomizationOptions {
	return m.opts
}

// Set replaces all options at once.
func (m *Model) Set(opts types.CustomizationOptions) {
	m.opts = opts
}

// Update replaces exactly one field.
func (m *Model) Update(key Key, value string) error {
	next := m.opts
	switch key {
	case KeyTemplate:
		next.Template = types.Template(value)
	case KeyFontFamily:
		next.FontFamily = value
	case KeyPrimaryColor:
		next.PrimaryColor = value
	case KeyAccentColor:
		next.AccentColor = value
	case KeyLayout:
		next.Layout = types.Layout(value)
	default:
		return &UnknownKeyError{Key: string(key)}
	}
	m.opts = next
	return nil
}

// FindPreset looks a color preset up by name, case-insensitively.
func FindPreset(name string) (types.ColorPreset, bool) {
	for _, p := range types.ColorPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return types.ColorPreset{}, false
}

// ApplyPreset sets the primary and accent colors from a named preset.
func (m *Model) ApplyPreset(name string) error {
	preset, ok := FindPreset(name)
	if !ok {
		return &UnknownPresetError{Name: name}
	}
	if err := m.Update(KeyPrimaryColor, preset.PrimaryColor); err != nil {
		return err
	}
	return m.Update(KeyAccentColor, preset.AccentColor)
}
