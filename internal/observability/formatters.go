// Package observability provides formatted summaries of a CV for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the inspect and validate commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// moreLine reports how many items were left out of a list.
func moreLine(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		sb.WriteString(fmt.Sprintf("  ... and %d more %s\n", total-shown, noun))
	}
}

// PrintCV outputs the header and a per-section overview of a document.
func (p *Printer) PrintCV(data types.CVData) {
	var sb strings.Builder
	info := data.PersonalInfo

	name := info.FullName
	if strings.TrimSpace(name) == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if info.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", info.JobTitle))
	}
	if info.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	}
	if info.Photo != nil && *info.Photo != "" {
		sb.WriteString("Photo:    embedded\n")
	}
	sb.WriteString("\n")

	if len(data.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(data.Experience)))
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := data.Experience[i]
			s := editor.SummarizeExperience(e)
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", s.Title, s.Subtitle))
			if period := rendering.FormatPeriod(e.StartDate, e.EndDate, e.Current); period != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", period))
			}
		}
		moreLine(&sb, len(data.Experience), count, "positions")
		sb.WriteString("\n")
	}

	if len(data.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(data.Education)))
		count := min(len(data.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := editor.SummarizeEducation(data.Education[i])
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", s.Title, s.Subtitle))
		}
		moreLine(&sb, len(data.Education), count, "entries")
		sb.WriteString("\n")
	}

	if len(data.Languages) > 0 {
		names := make([]string, 0, len(data.Languages))
		for _, l := range data.Languages {
			names = append(names, fmt.Sprintf("%s (%s)", l.Name, l.Level))
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(names, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Skills: %d   Certifications: %d", len(data.Skills), len(data.Certifications)))

	p.printBox("CV OVERVIEW", sb.String())
}

// PrintSkills outputs skills grouped by category with star ratings.
func (p *Printer) PrintSkills(skills []types.Skill) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	groups := rendering.GroupSkills(skills)
	for i, group := range groups {
		category := group.Category
		if category == "" {
			category = "(uncategorized)"
		}
		sb.WriteString(category + ":\n")
		for _, skill := range group.Skills {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", truncate(skill.Name, 30), stars(skill.Stars)))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILLS", strings.TrimSpace(sb.String()))
}

func stars(filled []bool) string {
	var sb strings.Builder
	for _, f := range filled {
		if f {
			sb.WriteString("★")
		} else {
			sb.WriteString("☆")
		}
	}
	return sb.String()
}

// PrintCustomization outputs the presentation options.
func (p *Printer) PrintCustomization(opts types.CustomizationOptions) {
	var sb strings.Builder
	template := opts.Template
	if resolved := rendering.ResolveVariant(template); resolved != template {
		template = types.Template(fmt.Sprintf("%s (renders as %s)", template, resolved))
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", template))
	sb.WriteString(fmt.Sprintf("Font:     %s\n", opts.FontFamily))
	sb.WriteString(fmt.Sprintf("Primary:  %s\n", opts.PrimaryColor))
	sb.WriteString(fmt.Sprintf("Accent:   %s\n", opts.AccentColor))
	sb.WriteString(fmt.Sprintf("Layout:   %s", opts.Layout))

	p.printBox("CUSTOMIZATION", sb.String())
}

// PrintPresets outputs the colour presets and the template catalogue.
func (p *Printer) PrintPresets() {
	var sb strings.Builder
	sb.WriteString("Colour presets:\n")
	for _, preset := range types.ColorPresets {
		sb.WriteString(fmt.Sprintf("  %-14s primary %s  accent %s\n", preset.Name, preset.PrimaryColor, preset.AccentColor))
	}
	sb.WriteString("\nTemplates:\n")
	for _, t := range types.Templates {
		sb.WriteString(fmt.Sprintf("  %-9s %s\n", t.ID, t.Description))
	}
	sb.WriteString("\nFonts:\n")
	sb.WriteString("  " + strings.Join(types.Fonts[:4], ", ") + ",\n")
	sb.WriteString("  " + strings.Join(types.Fonts[4:], ", "))

	p.printBox("PRESETS", sb.String())
}

// PrintSavedAt outputs when a snapshot was written.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSavedAt(savedAt time.Time) {
	fmt.Fprintf(p.out, "Saved at %s\n", savedAt.Local().Format("2006-01-02 15:04:05"))
}

// PrintIssues outputs advisory validation findings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue.String()))
		if i < len(issues)-1 && issues[i+1].Section != issue.Section {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}
