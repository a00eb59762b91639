package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
)

func newValidateCmd(_ *rootOptions) *cobra.Command {
	var (
		in         string
		schemaPath string
		jsonPath   string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a CV document",
		Long: `Validates a CV document or snapshot against the embedded JSON schemas and reports advisory field issues.
With --schema and --json any JSON file is checked against any schema file instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if schemaPath != "" || jsonPath != "" {
				if schemaPath == "" || jsonPath == "" {
					return fmt.Errorf("--schema and --json must be used together")
				}
				if err := schemas.ValidateJSON(schemaPath, jsonPath); err != nil {
					_, _ = fmt.Fprintf(out, "Validation failed: %v\n", err)
					return err
				}
				_, _ = fmt.Fprintln(out, "Validation passed")
				return nil
			}

			if in == "" {
				return fmt.Errorf("either --in or --schema/--json is required")
			}

			data, opts, err := loadDocument(cmd, in)
			if err != nil {
				var validationErr *schemas.ValidationError
				if errors.As(err, &validationErr) {
					_, _ = fmt.Fprintf(out, "Validation failed: %v\n", err)
				}
				return err
			}
			_, _ = fmt.Fprintln(out, "Validation passed")

			// Field issues never block editing or export.
			issues := append(data.Validate(), opts.Validate()...)
			observability.NewPrinter(out).PrintIssues(issues)
			if strict && len(issues) > 0 {
				return fmt.Errorf("validation found %d issue(s)", len(issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON (\"-\" for stdin)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a JSON schema file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Path to a JSON file to check against --schema")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when advisory issues are found")
	return cmd
}
