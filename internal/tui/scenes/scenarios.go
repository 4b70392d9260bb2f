package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/components"
	"github.com/rgehrsitz/compme/internal/tui/tuimsg"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft   = key.NewBinding(key.WithKeys("left", "h"))
	keyRight  = key.NewBinding(key.WithKeys("right", "l"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"))
	keyTop    = key.NewBinding(key.WithKeys("g"))
	keyBottom = key.NewBinding(key.WithKeys("G"))
)

// ScenariosModel lists the loaded scenarios
type ScenariosModel struct {
	scenarios     []domain.ComparisonScenario
	cards         []*components.ScenarioCard
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.ComparisonScenario) {
	m.scenarios = scenarios
	m.cards = make([]*components.ScenarioCard, len(scenarios))
	for i, s := range scenarios {
		m.cards[i] = components.NewScenarioCard(s)
	}
	if m.selectedIndex >= len(scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedIndex returns the highlighted row
func (m *ScenariosModel) SelectedIndex() int {
	return m.selectedIndex
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.scenarios) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyTop):
		m.selectedIndex = 0
	case key.Matches(keyMsg, keyBottom):
		m.selectedIndex = len(m.scenarios) - 1
	case key.Matches(keyMsg, keyEnter):
		idx, name := m.selectedIndex, m.scenarios[m.selectedIndex].Name
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{Index: idx, Name: name}
		}
	}
	return m, nil
}

// View renders the list and the highlighted scenario's card
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.BorderStyle.Render("No scenarios loaded.\n\n" +
			tuistyles.HintStyle.Render("Start compme-tui with a scenario file, or edit the default one (p)."))
	}

	list := tuistyles.BorderStyle.Width(40).Render(
		tuistyles.TitleStyle.Render("Scenarios") + "\n\n" +
			components.ScenarioListCompact(m.cards, m.selectedIndex))
	detail := m.cards[m.selectedIndex].SetSelected(true).Render()

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail),
		"",
		tuistyles.HintStyle.Render("↑/k up • ↓/j down • enter evaluate • g top • G bottom • esc back"))
}
