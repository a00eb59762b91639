package types

// LanguageLevel is a proficiency rating for a Language.
type LanguageLevel string

const (
	LevelNative       LanguageLevel = "Native"
	LevelFluent       LanguageLevel = "Fluent"
	LevelAdvanced     LanguageLevel = "Advanced"
	LevelIntermediate LanguageLevel = "Intermediate"
	LevelBasic        LanguageLevel = "Basic"
)

// LanguageLevels lists proficiency levels from strongest to weakest.
var LanguageLevels = []LanguageLevel{LevelNative, LevelFluent, LevelAdvanced, LevelIntermediate, LevelBasic}

// Valid reports whether l is one of LanguageLevels.
func (l LanguageLevel) Valid() bool {
	for _, known := range LanguageLevels {
		if l == known {
			return true
		}
	}
	return false
}

// Badge returns the colour tone used for a proficiency badge.
func (l LanguageLevel) Badge() string {
	switch l {
	case LevelNative:
		return "green"
	case LevelFluent:
		return "blue"
	case LevelAdvanced:
		return "purple"
	case LevelIntermediate:
		return "yellow"
	default:
		return "gray"
	}
}

// SkillCategories is the default category list offered by the skills editor.
// Categories are free text; this list is a convenience, not a constraint.
var SkillCategories = []string{"Technical", "Language", "Soft Skills", "Tools", "Design"}

// Skill level bounds (star rating).
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// TemplateInfo describes a template for pickers.
type TemplateInfo struct {
	ID          Template `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Templates is the template catalogue in display order.
var Templates = []TemplateInfo{
	{ID: TemplateClassic, Name: "Classic", Description: "Traditional professional layout"},
	{ID: TemplateModern, Name: "Modern", Description: "Clean contemporary design"},
	{ID: TemplateCreative, Name: "Creative", Description: "Bold and colorful design"},
	{ID: TemplateRTL, Name: "RTL", Description: "Right-to-left layout support"},
}

// Fonts lists the selectable font family identifiers.
var Fonts = []string{
	"Inter",
	"Roboto",
	"Open Sans",
	"Lato",
	"Montserrat",
	"Playfair Display",
	"Merriweather",
	"Georgia",
}

// Layouts lists the declared layout variants.
var Layouts = []Layout{LayoutSidebarLeft, LayoutSidebarRight, LayoutTopHeader}

// ColorPreset is a named primary/accent colour pair.
type ColorPreset struct {
	Name         string `json:"name"`
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
}

// ColorPresets are the quick presets offered by the customization panel.
var ColorPresets = []ColorPreset{
	{Name: "Professional", PrimaryColor: "#3B82F6", AccentColor: "#EF4444"},
	{Name: "Creative", PrimaryColor: "#8B5CF6", AccentColor: "#EC4899"},
	{Name: "Modern", PrimaryColor: "#10B981", AccentColor: "#F59E0B"},
	{Name: "Tech", PrimaryColor: "#6366F1", AccentColor: "#14B8A6"},
}
