package scenes

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/components"
	"github.com/rgehrsitz/compme/internal/tui/tuimsg"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

// Slider keys
const (
	ParamRank         = "rank"
	ParamYears        = "years"
	ParamStation      = "station"
	ParamDependents   = "dependents"
	ParamState        = "state"
	ParamFilingStatus = "filing_status"
	ParamSalary       = "salary"
	ParamBonus        = "bonus"
	ParamEquity       = "equity"
	ParamStage        = "stage"
	ParamVestingYears = "vesting_years"
)

var (
	keyReset = key.NewBinding(key.WithKeys("r"))
	keySave  = key.NewBinding(key.WithKeys("ctrl+s"))
)

// ParameterChoices are the values the choice sliders step through
type ParameterChoices struct {
	Ranks    []string
	Stations []string
	States   []string
}

// ParametersModel edits one scenario with sliders
type ParametersModel struct {
	choices       ParameterChoices
	original      *domain.ComparisonScenario
	scenario      *domain.ComparisonScenario
	sliders       []*components.ParameterSlider
	focusedSlider int
	width         int
	height        int
	modified      bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel(choices ParameterChoices) *ParametersModel {
	return &ParametersModel{choices: choices}
}

// SetScenario starts editing a copy of the scenario
func (m *ParametersModel) SetScenario(s *domain.ComparisonScenario) {
	if s == nil {
		return
	}
	m.original = s.DeepCopy()
	m.scenario = s.DeepCopy()
	m.modified = false
	m.buildSliders()
}

// Scenario returns the scenario with the current slider values applied
func (m *ParametersModel) Scenario() *domain.ComparisonScenario {
	return m.scenario
}

// Modified reports whether any slider moved since the last reset
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ParametersModel) buildSliders() {
	s := m.scenario
	mil, civ, eq := s.Military, s.Civilian, s.Equity

	salary := civ.BaseSalary.InexactFloat64()
	equity := eq.TotalValue.InexactFloat64()
	if equity == 0 {
		equity = civ.TotalEquity.InexactFloat64()
	}
	vesting := float64(eq.VestingYears)
	if vesting == 0 {
		vesting = domain.DefaultProjectionYears
	}

	stages := make([]string, 0, 5)
	for _, st := range domain.CompanyStages() {
		stages = append(stages, string(st))
	}

	m.sliders = []*components.ParameterSlider{
		components.NewChoiceSlider(ParamRank, "Pay grade", withCurrent(m.choices.Ranks, domain.NormalizeRank(mil.Rank)), domain.NormalizeRank(mil.Rank)),
		components.NewParameterSlider(ParamYears, "Years of service", float64(mil.YearsOfService), 0, 40, 1).
			WithUnit(" yrs"),
		components.NewChoiceSlider(ParamStation, "Duty station", withCurrent(m.choices.Stations, orNone(mil.DutyStation)), orNone(mil.DutyStation)).
			WithDescription("BAH is looked up for this station"),
		components.NewChoiceSlider(ParamDependents, "Dependents", []string{"no", "yes"}, yesNo(mil.HasDependents)),
		components.NewChoiceSlider(ParamState, "Offer state", withCurrent(m.choices.States, strings.ToUpper(civ.StateCode)), civ.StateCode),
		components.NewChoiceSlider(ParamFilingStatus, "Filing status",
			[]string{string(domain.FilingSingle), string(domain.FilingMarried)}, civ.FilingStatus.String()),
		components.NewParameterSlider(ParamSalary, "Base salary", salary, 0, max(500_000, salary), 5000).
			WithPrefix("$"),
		components.NewParameterSlider(ParamBonus, "Target bonus", civ.BonusPct.InexactFloat64(), 0, 100, 1).
			WithUnit("%"),
		components.NewParameterSlider(ParamEquity, "Equity grant", equity, 0, max(1_000_000, equity), 10_000).
			WithPrefix("$"),
		components.NewChoiceSlider(ParamStage, "Company stage", stages, string(eq.EffectiveStage())),
		components.NewParameterSlider(ParamVestingYears, "Vesting years", vesting, 1, 10, 1).
			WithUnit(" yrs"),
	}
	for _, sl := range m.sliders {
		sl.WithWidth(36)
	}

	m.focusedSlider = min(m.focusedSlider, len(m.sliders)-1)
	m.sliders[m.focusedSlider].SetFocused(true)
}

// withCurrent makes sure the scenario's own value is selectable even when
// the data set does not list it
func withCurrent(choices []string, current string) []string {
	if current == "" || slices.ContainsFunc(choices, func(c string) bool { return strings.EqualFold(c, current) }) {
		return choices
	}
	return append([]string{current}, choices...)
}

const noStation = "(none)"

func orNone(station string) string {
	if station == "" {
		return noStation
	}
	return station
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.scenario == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		m.moveFocus(-1)
	case key.Matches(keyMsg, keyDown):
		m.moveFocus(1)
	case key.Matches(keyMsg, keyLeft):
		m.sliders[m.focusedSlider].Decrement()
		m.applyChanges()
	case key.Matches(keyMsg, keyRight):
		m.sliders[m.focusedSlider].Increment()
		m.applyChanges()
	case key.Matches(keyMsg, keyEnter):
		edited := *m.scenario.DeepCopy()
		return m, func() tea.Msg { return tuimsg.ScenarioEditedMsg{Scenario: edited} }
	case key.Matches(keyMsg, keyReset):
		m.scenario = m.original.DeepCopy()
		m.modified = false
		m.buildSliders()
	case key.Matches(keyMsg, keySave):
		if !m.modified {
			return m, nil
		}
		saved := *m.scenario.DeepCopy()
		return m, func() tea.Msg { return tuimsg.SaveScenarioMsg{Scenario: saved} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[next].SetFocused(true)
}

// applyChanges writes every slider back into the scenario
func (m *ParametersModel) applyChanges() {
	s := m.scenario
	for _, sl := range m.sliders {
		switch sl.Key {
		case ParamRank:
			s.Military.Rank = sl.Choice()
		case ParamYears:
			s.Military.YearsOfService = int(sl.Value)
		case ParamStation:
			if station := sl.Choice(); station != noStation {
				s.Military.DutyStation = station
			} else {
				s.Military.DutyStation = ""
			}
		case ParamDependents:
			s.Military.HasDependents = sl.Choice() == "yes"
		case ParamState:
			s.Civilian.StateCode = sl.Choice()
		case ParamFilingStatus:
			s.Civilian.FilingStatus = domain.FilingStatus(sl.Choice())
		case ParamSalary:
			s.Civilian.BaseSalary = decimal.NewFromFloat(sl.Value)
		case ParamBonus:
			s.Civilian.BonusPct = decimal.NewFromFloat(sl.Value)
		case ParamEquity:
			s.Equity.TotalValue = decimal.NewFromFloat(sl.Value)
			s.Civilian.TotalEquity = s.Equity.TotalValue
		case ParamStage:
			s.Equity.Stage = domain.CompanyStage(sl.Choice())
			s.Equity.IsPublic = nil
		case ParamVestingYears:
			s.Equity.VestingYears = int(sl.Value)
		}
	}
	m.modified = true
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if m.scenario == nil {
		return tuistyles.BorderStyle.Render("No scenario selected.\n\n" +
			tuistyles.HintStyle.Render("Select one from the Scenarios screen (s)."))
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Edit Parameters"),
		tuistyles.SubtitleStyle.Render(m.scenario.Name))

	military := make([]string, 0, 4)
	civilian := make([]string, 0, 7)
	for i, sl := range m.sliders {
		if i < 4 {
			military = append(military, sl.Render())
		} else {
			civilian = append(civilian, sl.Render())
		}
	}

	panel := func(title string, rows []string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tuistyles.ColorBorder).
			Padding(1, 2).
			Render(tuistyles.SubtitleStyle.Render(title) + "\n\n" + strings.Join(rows, "\n\n"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Military", military), "  ", panel("Civilian offer", civilian))
	if m.width > 0 && m.width < 100 {
		body = lipgloss.JoinVertical(lipgloss.Left, panel("Military", military), panel("Civilian offer", civilian))
	}

	sections := []string{header, "", body, ""}
	if m.modified {
		sections = append(sections, tuistyles.WarningStyle.Render("Modified. Enter to evaluate, r to reset, ctrl+s to save."))
	}
	sections = append(sections,
		tuistyles.HintStyle.Render("↑/↓ select • ←/→ adjust • enter evaluate • r reset • ctrl+s save • esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
