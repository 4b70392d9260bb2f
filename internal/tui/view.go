package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loadingMessage)))
	}
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneReport:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 1)
	container := lipgloss.NewStyle().
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("compme: military vs. civilian compensation")

	crumb := m.currentScene.String()
	if m.current != nil {
		crumb = fmt.Sprintf("%s / %s", crumb, m.current.Name)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	statusText := m.help.View(keys)
	if m.status != "" {
		right := SubtitleStyle.Render(m.status)
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(right) - 2
		statusText += strings.Repeat(" ", max(gap, 1)) + right
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true

	scenes := `
Dashboard   take-home pay on both paths, the multi-year wealth chart and vesting
Scenarios   pick a scenario from the loaded file; enter evaluates it
Parameters  ↑/↓ choose a field, ←/→ adjust, enter evaluates, r resets,
            ctrl+s writes the scenarios file
Compare     space toggles a what-if template, enter runs the comparison
Report      the full markdown report; ↑/↓ and pgup/pgdn scroll`

	return BorderStyle.Render(
		TitleStyle.Render("Keyboard shortcuts") + "\n\n" +
			full.View(keys) + "\n" +
			HintStyle.Render(strings.TrimPrefix(scenes, "\n")))
}
