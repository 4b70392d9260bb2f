package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/dutystation"
	"github.com/rgehrsitz/compme/internal/tui/tuimsg"
)

func testModel(t *testing.T) Model {
	t.Helper()
	housing, err := dutystation.Embedded()
	require.NoError(t, err)
	calc, err := calculation.NewDefaultCalculationEngine(housing)
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	return NewModel(Options{
		Engine:       compare.NewCompareEngine(calc, logger),
		GlamourStyle: "notty",
		Logger:       logger,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadScenarios_DefaultScenario(t *testing.T) {
	msg := loadScenariosCmd("")()
	loaded, ok := msg.(ScenariosLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	require.Len(t, loaded.Scenarios, 1)
	assert.Equal(t, DefaultScenario().Name, loaded.Scenarios[0].Name)
}

func TestLoadScenarios_MissingFile(t *testing.T) {
	loaded := loadScenariosCmd(filepath.Join(t.TempDir(), "missing.yaml"))().(ScenariosLoadedMsg)
	assert.Error(t, loaded.Err)

	m := testModel(t)
	m, _ = update(t, m, loaded)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Error:")

	m, _ = update(t, m, runes("x"))
	assert.NoError(t, m.err, "any key dismisses the error")
}

func TestEvaluateFlow(t *testing.T) {
	m := testModel(t)
	assert.True(t, m.loading)

	m, cmd := update(t, m, ScenariosLoadedMsg{Scenarios: []domain.ComparisonScenario{DefaultScenario()}})
	require.NotNil(t, cmd)
	require.NotNil(t, m.current)
	assert.True(t, m.loading)

	eval, ok := evaluateCmd(m.engine, *m.current)().(EvaluationCompleteMsg)
	require.True(t, ok)
	require.NoError(t, eval.Err)
	require.NotNil(t, eval.Result)
	assert.True(t, eval.Result.MilitaryMonthly.IsPositive())
	assert.True(t, eval.Result.BreakEvenSalary.IsPositive())

	m, cmd = update(t, m, eval)
	assert.False(t, m.loading)
	require.NotNil(t, cmd, "report rendering follows evaluation")
	assert.Contains(t, m.homeModel.View(), "Military / month")

	report, ok := renderReportCmd(m.result, 80, "notty")().(ReportRenderedMsg)
	require.True(t, ok)
	require.NoError(t, report.Err)
	assert.Contains(t, report.Report, "Military")

	m, _ = update(t, m, report)
	assert.Equal(t, report.Report, m.resultsModel.Report())
}

func TestEvaluate_InvalidScenario(t *testing.T) {
	m := testModel(t)
	s := DefaultScenario()
	s.Military.Rank = ""
	eval := evaluateCmd(m.engine, s)().(EvaluationCompleteMsg)
	assert.Error(t, eval.Err)

	var verr *config.ValidationError
	assert.True(t, errors.As(eval.Err, &verr))
}

func TestEvaluate_NoEngine(t *testing.T) {
	eval := evaluateCmd(nil, DefaultScenario())().(EvaluationCompleteMsg)
	assert.Error(t, eval.Err)
	cmp := compareCmd(nil, DefaultScenario(), []string{"promote"}, "")().(ComparisonCompleteMsg)
	assert.Error(t, cmp.Err)
}

func TestNavigation(t *testing.T) {
	m := testModel(t)
	m.loading = false

	for key, scene := range map[string]Scene{
		"s": SceneScenarios,
		"p": SceneParameters,
		"c": SceneCompare,
		"v": SceneReport,
		"?": SceneHelp,
		"d": SceneHome,
	} {
		_, cmd := update(t, m, runes(key))
		require.NotNil(t, cmd, key)
		assert.Equal(t, NavigateMsg{Scene: scene}, cmd(), key)
	}

	m, _ = update(t, m, NavigateMsg{Scene: SceneScenarios})
	m, _ = update(t, m, NavigateMsg{Scene: SceneCompare})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneScenarios}, cmd())

	m, _ = update(t, m, NavigateMsg{Scene: SceneHelp})
	assert.Contains(t, m.View(), "Keyboard shortcuts")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestScenarioEdited_ReplacesSelection(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, ScenariosLoadedMsg{Scenarios: []domain.ComparisonScenario{DefaultScenario()}})

	edited := DefaultScenario()
	edited.Civilian.BaseSalary = decimal.NewFromInt(120000)
	m, cmd := update(t, m, tuimsg.ScenarioEditedMsg{Scenario: edited})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	require.Len(t, m.scenarios, 1)
	assert.True(t, m.scenarios[0].Civilian.BaseSalary.Equal(decimal.NewFromInt(120000)))
	assert.True(t, m.current.Civilian.BaseSalary.Equal(decimal.NewFromInt(120000)))
}

func TestCompareFlow(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, ScenariosLoadedMsg{Scenarios: []domain.ComparisonScenario{DefaultScenario()}})

	_, cmd := update(t, m, tuimsg.CompareRequestedMsg{Templates: []string{"promote"}})
	require.NotNil(t, cmd)
	done, ok := cmd().(ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	require.Len(t, done.Set.AlternativeResults, 1)

	m, _ = update(t, m, done)
	assert.Contains(t, m.compareModel.View(), "MILITARY VS. CIVILIAN COMPARISON")

	bad := compareCmd(m.engine, DefaultScenario(), []string{"no-such-template"}, "")().(ComparisonCompleteMsg)
	assert.Error(t, bad.Err)
}

func TestSaveScenarios_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	s := DefaultScenario()
	s.Equity.TotalValue = decimal.NewFromInt(40000)
	s.Equity.VestingYears = 4

	saved := saveScenariosCmd(path, []domain.ComparisonScenario{s})().(ScenarioSavedMsg)
	require.NoError(t, saved.Err)

	file, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 1)
	got := file.Scenarios[0]
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, "SAN DIEGO, CA", got.Military.DutyStation)
	assert.True(t, got.Civilian.BaseSalary.Equal(s.Civilian.BaseSalary))
	assert.True(t, got.Equity.TotalValue.Equal(decimal.NewFromInt(40000)))

	m := testModel(t)
	m, _ = update(t, m, saved)
	assert.Equal(t, "Saved to "+path, m.status)
}

func TestSavePathDefault(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, defaultSavePath, m.savePath())
	m.scenarioPath = "mine.yaml"
	assert.Equal(t, "mine.yaml", m.savePath())
}
