package scenes

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

// ResultsModel shows the rendered report for the current scenario
type ResultsModel struct {
	title    string
	report   string
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetReport replaces the report text. The text is already rendered for the
// terminal.
func (m *ResultsModel) SetReport(title, report string) {
	m.title = title
	m.report = report
	if m.ready {
		m.viewport.SetContent(report)
		m.viewport.GotoTop()
	}
}

// Report returns the current report text
func (m *ResultsModel) Report() string {
	return m.report
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	h := max(height-4, 3)
	if !m.ready {
		m.viewport = viewport.New(width, h)
		m.viewport.SetContent(m.report)
		m.ready = true
		return
	}
	m.viewport.Width = width
	m.viewport.Height = h
}

// Update scrolls the report
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.report == "" {
		return tuistyles.BorderStyle.Render("No report yet.\n\n" +
			tuistyles.HintStyle.Render("Evaluate a scenario first, then press v."))
	}
	body := m.report
	if m.ready {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render(m.title),
		body,
		tuistyles.HintStyle.Render("↑/↓ scroll • pgup/pgdn page • esc back"))
}
