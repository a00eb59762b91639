package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// CustomTemplateName is the template a custom template file must define.
const CustomTemplateName = "cv"

var funcs = template.FuncMap{
	// alt picks a for even indexes and b for odd ones.
	"alt": func(i int, a, b string) string {
		if i%2 == 0 {
			return a
		}
		return b
	},
}

// base holds the partials and the four built-in variants.
var base = template.Must(parseBase())

// parseBase parses a fresh copy of the built-in templates. html/template
// sets cannot be cloned once executed, so custom files start from their own copy.
func parseBase() (*template.Template, error) {
	return template.New("cv-base").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")
}

// Renderer renders documents with either the built-in variants or a custom
// template file that may reuse the built-in partials.
type Renderer struct {
	tmpl   *template.Template
	custom bool
}

// NewRenderer returns a renderer for the built-in variants.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: base}
}

// NewRendererFromFile returns a renderer that executes the "cv" template
// defined in templatePath for every document.
func NewRendererFromFile(templatePath string) (*Renderer, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, custom: true}, nil
}

// parseTemplate reads a template file and parses it on top of the built-in partials.
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Name:    templatePath,
				Message: "template file not found",
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Name:    templatePath,
			Message: "failed to read template file",
			Cause:   err,
		}
	}

	set, err := parseBase()
	if err != nil {
		return nil, &TemplateError{Name: templatePath, Message: "failed to load built-in templates", Cause: err}
	}
	tmpl, err := set.New(CustomTemplateName + "-file").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Name: templatePath, Message: "failed to parse template", Cause: err}
	}
	if tmpl.Lookup(CustomTemplateName) == nil {
		return nil, &TemplateError{
			Name:    templatePath,
			Message: fmt.Sprintf("template file does not define %q", CustomTemplateName),
		}
	}
	return tmpl, nil
}

// RenderTo writes the document for data and opts to w.
func (r *Renderer) RenderTo(w io.Writer, data types.CVData, opts types.CustomizationOptions) error {
	view := BuildView(data, opts)
	name := string(view.Variant)
	if r.custom {
		name = CustomTemplateName
	}
	if err := r.tmpl.ExecuteTemplate(w, name, view); err != nil {
		return &TemplateError{Name: name, Message: "failed to execute template", Cause: err}
	}
	return nil
}

// Render returns the document for data and opts as a string.
func (r *Renderer) Render(data types.CVData, opts types.CustomizationOptions) (string, error) {
	var sb strings.Builder
	if err := r.RenderTo(&sb, data, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render renders with the built-in variants.
func Render(data types.CVData, opts types.CustomizationOptions) (string, error) {
	return NewRenderer().Render(data, opts)
}

// WriteFile renders the document and writes it to path.
func (r *Renderer) WriteFile(path string, data types.CVData, opts types.CustomizationOptions) error {
	html, err := r.Render(data, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return nil
}
