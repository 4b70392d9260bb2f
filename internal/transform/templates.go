package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

// Template categories, in help order
const (
	CategoryMilitary = "Stay In"
	CategoryCivilian = "Civilian Offer"
	CategoryEquity   = "Equity"
)

var categoryOrder = []string{CategoryMilitary, CategoryCivilian, CategoryEquity}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates returns the common "what if" variations on a
// military-versus-civilian decision.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "promote",
		Description: "Pick up the next pay grade",
		Category:    CategoryMilitary,
		Transforms:  []ScenarioTransform{&Promote{Grades: 1}},
	})
	registry.Register(Template{
		Name:        "reenlist_4yr",
		Description: "Serve four more years and promote once",
		Category:    CategoryMilitary,
		Transforms:  []ScenarioTransform{&AddYears{Years: 4}, &Promote{Grades: 1}},
	})
	registry.Register(Template{
		Name:        "plus_2yrs",
		Description: "Two more years of service at the current grade",
		Category:    CategoryMilitary,
		Transforms:  []ScenarioTransform{&AddYears{Years: 2}},
	})
	registry.Register(Template{
		Name:        "toggle_dependents",
		Description: "Flip the BAH dependency status",
		Category:    CategoryMilitary,
		Transforms:  []ScenarioTransform{&ToggleDependents{}},
	})

	registry.Register(Template{
		Name:        "salary_plus_10",
		Description: "Negotiate base salary up 10%",
		Category:    CategoryCivilian,
		Transforms:  []ScenarioTransform{&AdjustSalary{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "salary_minus_10",
		Description: "Accept a base salary 10% lower",
		Category:    CategoryCivilian,
		Transforms:  []ScenarioTransform{&AdjustSalary{Percent: decimal.NewFromInt(-10)}},
	})
	registry.Register(Template{
		Name:        "no_state_tax",
		Description: "Take the offer in a state with no income tax (TX)",
		Category:    CategoryCivilian,
		Transforms:  []ScenarioTransform{&SetState{State: "TX"}},
	})
	registry.Register(Template{
		Name:        "high_tax_state",
		Description: "Take the offer in California",
		Category:    CategoryCivilian,
		Transforms:  []ScenarioTransform{&SetState{State: "CA"}},
	})

	registry.Register(Template{
		Name:        "stage_public",
		Description: "Value the grant as liquid public stock",
		Category:    CategoryEquity,
		Transforms:  []ScenarioTransform{&SetStage{Stage: domain.StagePublic}},
	})
	registry.Register(Template{
		Name:        "stage_early",
		Description: "Value the grant as early-stage startup equity",
		Category:    CategoryEquity,
		Transforms:  []ScenarioTransform{&SetStage{Stage: domain.StageEarly}},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.ComparisonScenario, template Template) (*domain.ComparisonScenario, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base scenario cannot be nil")
		}
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	grouped := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		cat := t.Category
		if cat == "" {
			cat = "Other"
		}
		grouped[cat] = append(grouped[cat], t)
	}

	for _, category := range append(categoryOrder, "Other") {
		templates := grouped[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  compme compare scenario.yaml --with promote,no_state_tax\n")
	sb.WriteString("  compme compare scenario.yaml --with reenlist_4yr --transform adjust_salary:pct=5\n")

	return sb.String()
}
