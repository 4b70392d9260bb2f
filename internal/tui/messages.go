package tui

import (
	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneParameters
	SceneCompare
	SceneReport
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Dashboard"
	case SceneScenarios:
		return "Scenarios"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneReport:
		return "Report"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ScenariosLoadedMsg carries the scenarios read from disk
type ScenariosLoadedMsg struct {
	Path      string
	Scenarios []domain.ComparisonScenario
	Err       error
}

// EvaluationCompleteMsg carries the metrics for one scenario
type EvaluationCompleteMsg struct {
	Result *compare.ComparisonResult
	Err    error
}

// ComparisonCompleteMsg carries a template comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ReportRenderedMsg carries the terminal-rendered markdown report
type ReportRenderedMsg struct {
	Title  string
	Report string
	Err    error
}

// ScenarioSavedMsg reports the outcome of writing scenarios to disk
type ScenarioSavedMsg struct {
	Path string
	Err  error
}
