package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
}

// config resolves the effective configuration for a command.
func (o *rootOptions) config() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

// logger builds the command logger. It writes to stderr so stdout stays
// usable for documents.
func (o *rootOptions) logger(cfg config.Config, component string) zerolog.Logger {
	return logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Pretty:    cfg.LogPretty,
		Component: component,
	})
}

func storageOptions(cfg config.Config) storage.Options {
	return storage.Options{
		Backend:     storage.Backend(cfg.StorageBackend),
		Dir:         cfg.StorageDir,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
		DatabaseURL: cfg.DatabaseURL,
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return content, nil
}

// writeOutput writes content to path, or stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// isSnapshot reports whether a JSON document is a saved snapshot rather
// than a bare CV document.
func isSnapshot(content []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err != nil {
		return false
	}
	_, ok := probe["cvData"]
	return ok
}

// parseDocument decodes either a bare CV document or a snapshot. A bare
// document gets the default customization.
func parseDocument(content []byte) (types.CVData, types.CustomizationOptions, error) {
	if isSnapshot(content) {
		if err := schemas.ValidateSnapshot(content); err != nil {
			return types.CVData{}, types.CustomizationOptions{}, err
		}
		var snap storage.Snapshot
		if err := json.Unmarshal(content, &snap); err != nil {
			return types.CVData{}, types.CustomizationOptions{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return snap.CVData.Normalize(), snap.Customization, nil
	}

	if err := schemas.ValidateCVData(content); err != nil {
		return types.CVData{}, types.CustomizationOptions{}, err
	}
	var data types.CVData
	if err := json.Unmarshal(content, &data); err != nil {
		return types.CVData{}, types.CustomizationOptions{}, fmt.Errorf("failed to unmarshal CV: %w", err)
	}
	return data.Normalize(), types.DefaultCustomization(), nil
}

// loadDocument reads and decodes the --in document.
func loadDocument(cmd *cobra.Command, path string) (types.CVData, types.CustomizationOptions, error) {
	content, err := readInput(cmd, path)
	if err != nil {
		return types.CVData{}, types.CustomizationOptions{}, err
	}
	return parseDocument(content)
}

// styleFlags overrides customization options from the command line.
type styleFlags struct {
	preset   string
	template string
	font     string
	primary  string
	accent   string
	layout   string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Colour preset (Professional, Creative, Modern, Tech)")
	cmd.Flags().StringVar(&f.template, "template", "", "Template (classic, modern, creative, rtl)")
	cmd.Flags().StringVar(&f.font, "font", "", "Font family")
	cmd.Flags().StringVar(&f.primary, "primary-color", "", "Primary colour, e.g. #3B82F6")
	cmd.Flags().StringVar(&f.accent, "accent-color", "", "Accent colour, e.g. #EF4444")
	cmd.Flags().StringVar(&f.layout, "layout", "", "Layout (sidebar-left, sidebar-right, top-header)")
}

// apply layers the flags over opts: the preset first, then single fields.
func (f *styleFlags) apply(opts types.CustomizationOptions) (types.CustomizationOptions, error) {
	m := customization.New(opts)
	if f.preset != "" {
		if err := m.ApplyPreset(f.preset); err != nil {
			return opts, err
		}
	}
	updates := []struct {
		key   customization.Key
		value string
	}{
		{customization.KeyTemplate, f.template},
		{customization.KeyFontFamily, f.font},
		{customization.KeyPrimaryColor, f.primary},
		{customization.KeyAccentColor, f.accent},
		{customization.KeyLayout, f.layout},
	}
	for _, u := range updates {
		if u.value == "" {
			continue
		}
		if err := m.Update(u.key, u.value); err != nil {
			return opts, err
		}
	}
	return m.Options(), nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
