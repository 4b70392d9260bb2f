package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/transform"
	"github.com/rgehrsitz/compme/internal/tui/tuimsg"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

var keyToggle = key.NewBinding(key.WithKeys(" ", "x"))

// CompareModel picks what-if templates and shows the resulting comparison
type CompareModel struct {
	templates   []transform.Template
	selected    map[string]bool
	cursorIndex int
	table       string
	err         error
	comparing   bool
	width       int
	height      int
}

// NewCompareModel lists every template in the registry
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{selected: make(map[string]bool)}
	if registry == nil {
		return m
	}
	for _, name := range registry.List() {
		if t, ok := registry.Get(name); ok {
			m.templates = append(m.templates, t)
		}
	}
	return m
}

// SetComparison stores a finished comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.comparing = false
	m.err = nil
	if set == nil {
		m.table = ""
		return
	}
	m.table, m.err = (&compare.TableFormatter{}).Format(set)
}

// SetError records a failed comparison
func (m *CompareModel) SetError(err error) {
	m.comparing = false
	m.err = err
}

// Selected returns the checked template names in list order
func (m *CompareModel) Selected() []string {
	var names []string
	for _, t := range m.templates {
		if m.selected[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.templates) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, keyToggle):
		name := m.templates[m.cursorIndex].Name
		m.selected[name] = !m.selected[name]
	case key.Matches(keyMsg, keyEnter):
		names := m.Selected()
		if len(names) == 0 {
			m.err = fmt.Errorf("select at least one template with space")
			return m, nil
		}
		m.comparing = true
		m.err = nil
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Templates: names} }
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if len(m.templates) == 0 {
		return tuistyles.InfoStyle.Render("No templates available")
	}

	var list strings.Builder
	list.WriteString(tuistyles.TitleStyle.Render("What if...") + "\n\n")
	category := ""
	for i, t := range m.templates {
		if t.Category != category {
			category = t.Category
			list.WriteString(tuistyles.SubtitleStyle.Render(category) + "\n")
		}
		check := "[ ]"
		if m.selected[t.Name] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-18s %s", check, t.Name, tuistyles.HintStyle.Render(t.Description))
		if i == m.cursorIndex {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ "+line) + "\n")
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  "+line) + "\n")
		}
	}

	sections := []string{tuistyles.BorderStyle.Render(strings.TrimRight(list.String(), "\n"))}
	switch {
	case m.err != nil:
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.comparing:
		sections = append(sections, tuistyles.InfoStyle.Render("Comparing..."))
	case m.table != "":
		sections = append(sections, m.table)
	}
	sections = append(sections,
		tuistyles.HintStyle.Render("↑/↓ move • space toggle • enter compare • esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
