package tui

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/output"
	"github.com/rgehrsitz/compme/internal/tui/scenes"
)

const (
	evaluateTimeout = 30 * time.Second
	defaultSavePath = "compme-scenarios.yaml"
)

// Options configures a Model
type Options struct {
	Engine *compare.CompareEngine
	// ScenarioPath is the YAML file to load; empty starts from DefaultScenario
	ScenarioPath string
	// GlamourStyle selects the report style; empty detects from the terminal
	GlamourStyle string
	Logger       *zap.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	engine       *compare.CompareEngine
	logger       *zap.Logger
	scenarioPath string
	glamourStyle string

	scenarios []domain.ComparisonScenario
	selected  int
	current   *domain.ComparisonScenario
	result    *compare.ComparisonResult

	homeModel       *scenes.HomeModel
	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	resultsModel    *scenes.ResultsModel

	help    help.Model
	spinner spinner.Model

	err            error
	status         string
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var choices scenes.ParameterChoices
	if opts.Engine != nil && opts.Engine.CalcEngine != nil {
		ce := opts.Engine.CalcEngine
		if ce.Pay != nil {
			choices.Ranks = ce.Pay.Ranks()
		}
		if ce.Housing != nil {
			choices.Stations = ce.Housing.Stations()
		}
		if ce.Tables != nil {
			choices.States = slices.Sorted(maps.Keys(ce.Tables.States))
		}
	}

	var compareModel *scenes.CompareModel
	if opts.Engine != nil {
		compareModel = scenes.NewCompareModel(opts.Engine.TemplateRegistry)
	} else {
		compareModel = scenes.NewCompareModel(nil)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return Model{
		currentScene:    SceneHome,
		engine:          opts.Engine,
		logger:          logger,
		scenarioPath:    opts.ScenarioPath,
		glamourStyle:    opts.GlamourStyle,
		homeModel:       scenes.NewHomeModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		parametersModel: scenes.NewParametersModel(choices),
		compareModel:    compareModel,
		resultsModel:    scenes.NewResultsModel(),
		help:            help.New(),
		spinner:         sp,
		width:           80,
		height:          24,
		loading:         true,
		loadingMessage:  "Loading scenarios...",
	}
}

// Init loads the scenario file, or the default scenario when none was given
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadScenariosCmd(m.scenarioPath))
}

// DefaultScenario is the starting point when no scenario file is given
func DefaultScenario() domain.ComparisonScenario {
	return domain.ComparisonScenario{
		Name: "E-5 vs. $85K offer",
		Military: domain.MilitaryInput{
			Rank:           "E-5",
			YearsOfService: 6,
			DutyStation:    "SAN DIEGO, CA",
			FilingStatus:   domain.FilingSingle,
		},
		Civilian: domain.CompensationInput{
			BaseSalary:   decimal.NewFromInt(85000),
			BonusPct:     decimal.NewFromInt(5),
			StateCode:    "CA",
			FilingStatus: domain.FilingSingle,
		},
		ProjectionYears: domain.DefaultProjectionYears,
	}
}

func loadScenariosCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ScenariosLoadedMsg{Scenarios: []domain.ComparisonScenario{DefaultScenario()}}
		}
		file, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ScenariosLoadedMsg{Path: path, Err: err}
		}
		return ScenariosLoadedMsg{Path: path, Scenarios: file.Scenarios}
	}
}

func evaluateCmd(engine *compare.CompareEngine, s domain.ComparisonScenario) tea.Cmd {
	return func() tea.Msg {
		if engine == nil {
			return EvaluationCompleteMsg{Err: fmt.Errorf("no calculation engine configured")}
		}
		if err := config.NewInputParser().ValidateScenario(&s); err != nil {
			return EvaluationCompleteMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
		defer cancel()
		r, err := engine.Evaluate(ctx, &s)
		if err != nil {
			return EvaluationCompleteMsg{Err: fmt.Errorf("failed to evaluate %s: %w", s.Name, err)}
		}
		return EvaluationCompleteMsg{Result: &r}
	}
}

func compareCmd(engine *compare.CompareEngine, s domain.ComparisonScenario, templates []string, path string) tea.Cmd {
	return func() tea.Msg {
		if engine == nil {
			return ComparisonCompleteMsg{Err: fmt.Errorf("no calculation engine configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
		defer cancel()
		set, err := engine.Compare(ctx, &s, compare.CompareOptions{Templates: templates, ConfigPath: path})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func renderReportCmd(r *compare.ComparisonResult, width int, style string) tea.Cmd {
	return func() tea.Msg {
		if r == nil || r.Outcome == nil {
			return ReportRenderedMsg{Err: fmt.Errorf("nothing to report")}
		}
		md := output.Summary(r.ScenarioName, *r.Outcome)
		rendered, err := output.RenderTerminal(md, width, style)
		if err != nil {
			return ReportRenderedMsg{Title: r.ScenarioName, Report: md, Err: err}
		}
		return ReportRenderedMsg{Title: r.ScenarioName, Report: rendered}
	}
}

// saveScenariosCmd writes every scenario to path in the scenario file layout
func saveScenariosCmd(path string, scenarios []domain.ComparisonScenario) tea.Cmd {
	return func() tea.Msg {
		data, err := yaml.Marshal(config.ScenarioFile{Scenarios: scenarios})
		if err != nil {
			return ScenarioSavedMsg{Path: path, Err: fmt.Errorf("failed to encode scenarios: %w", err)}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return ScenarioSavedMsg{Path: path, Err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return ScenarioSavedMsg{Path: path}
	}
}

func (m Model) savePath() string {
	if m.scenarioPath != "" {
		return m.scenarioPath
	}
	return defaultSavePath
}
