package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-5, 5)
		m.homeModel.SetSize(msg.Width, h)
		m.scenariosModel.SetSize(msg.Width, h)
		m.parametersModel.SetSize(msg.Width, h)
		m.compareModel.SetSize(msg.Width, h)
		m.resultsModel.SetSize(msg.Width, h)
		if m.result != nil {
			return m, renderReportCmd(m.result, msg.Width, m.glamourStyle)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ScenariosLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.logger.Debug("scenarios loaded", zap.String("path", msg.Path), zap.Int("count", len(msg.Scenarios)))
		m.scenarios = msg.Scenarios
		m.scenariosModel.SetScenarios(m.scenarios)
		if len(m.scenarios) == 0 {
			return m, nil
		}
		return m.selectScenario(0)

	case tuimsg.ScenarioSelectedMsg:
		if msg.Index < 0 || msg.Index >= len(m.scenarios) {
			return m, nil
		}
		next, cmd := m.selectScenario(msg.Index)
		return next, tea.Batch(cmd, navigate(SceneHome))

	case tuimsg.ScenarioEditedMsg:
		edited := msg.Scenario
		m.storeScenario(edited)
		m.current = &edited
		m.loading = true
		m.loadingMessage = "Evaluating " + edited.Name + "..."
		return m, tea.Batch(m.spinner.Tick, evaluateCmd(m.engine, edited), navigate(SceneHome))

	case tuimsg.CompareRequestedMsg:
		if m.current == nil {
			m.compareModel.SetError(fmt.Errorf("no scenario selected"))
			return m, nil
		}
		return m, compareCmd(m.engine, *m.current, msg.Templates, m.scenarioPath)

	case tuimsg.SaveScenarioMsg:
		m.storeScenario(msg.Scenario)
		return m, saveScenariosCmd(m.savePath(), m.scenarios)

	case EvaluationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.homeModel.SetResult(msg.Result)
		return m, renderReportCmd(msg.Result, m.width, m.glamourStyle)

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.compareModel.SetError(msg.Err)
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m, nil

	case ReportRenderedMsg:
		if msg.Err != nil {
			m.logger.Warn("report rendering failed", zap.Error(msg.Err))
		}
		m.resultsModel.SetReport(msg.Title, msg.Report)
		return m, nil

	case ScenarioSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Saved to " + msg.Path
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// selectScenario makes scenarios[i] current and starts evaluating it
func (m Model) selectScenario(i int) (Model, tea.Cmd) {
	m.selected = i
	s := *m.scenarios[i].DeepCopy()
	m.current = &s
	m.parametersModel.SetScenario(&s)
	m.loading = true
	m.loadingMessage = "Evaluating " + s.Name + "..."
	return m, tea.Batch(m.spinner.Tick, evaluateCmd(m.engine, s))
}

// storeScenario replaces the selected scenario, or appends when none is loaded
func (m *Model) storeScenario(s domain.ComparisonScenario) {
	if m.selected >= 0 && m.selected < len(m.scenarios) {
		m.scenarios[m.selected] = s
	} else {
		m.scenarios = append(m.scenarios, s)
		m.selected = len(m.scenarios) - 1
	}
	m.scenariosModel.SetScenarios(m.scenarios)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		return m, navigate(SceneHelp)
	case key.Matches(msg, keys.Back):
		if m.currentScene == SceneHome {
			return m, nil
		}
		back := SceneHome
		if m.previousScene != m.currentScene && m.previousScene != SceneHelp {
			back = m.previousScene
		}
		return m, navigate(back)
	case key.Matches(msg, keys.Home):
		return m, navigate(SceneHome)
	case key.Matches(msg, keys.Scenarios):
		return m, navigate(SceneScenarios)
	case key.Matches(msg, keys.Parameters):
		return m, navigate(SceneParameters)
	case key.Matches(msg, keys.Compare):
		return m, navigate(SceneCompare)
	case key.Matches(msg, keys.Report):
		return m, navigate(SceneReport)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneReport:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
