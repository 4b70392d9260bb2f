// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/compme/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been picked from the list
type ScenarioSelectedMsg struct {
	Index int
	Name  string
}

// ScenarioEditedMsg carries a scenario changed on the parameters scene; the
// root model re-evaluates it.
type ScenarioEditedMsg struct {
	Scenario domain.ComparisonScenario
}

// CompareRequestedMsg asks for the current scenario to be compared against
// the named templates.
type CompareRequestedMsg struct {
	Templates []string
}

// SaveScenarioMsg signals a request to write the edited scenarios to disk
type SaveScenarioMsg struct {
	Scenario domain.ComparisonScenario
}
