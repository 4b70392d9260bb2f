package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
)

var gradePattern = regexp.MustCompile(`^([EWO])-(\d{1,2})([A-Z]*)$`)

// highest grade in each pay-grade family
var topGrade = map[string]int{"E": 9, "W": 5, "O": 10}

// Promote raises the service member's pay grade within its family
type Promote struct {
	Grades int // number of grades to move up (positive)
}

func (p *Promote) Name() string {
	return "promote"
}

func (p *Promote) Description() string {
	if p.Grades == 1 {
		return "Promote one pay grade"
	}
	return fmt.Sprintf("Promote %d pay grades", p.Grades)
}

func (p *Promote) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(p.Name(), base); err != nil {
		return err
	}
	if p.Grades <= 0 {
		return NewTransformError(p.Name(), "validate", fmt.Sprintf("grades must be positive, got %d", p.Grades), nil)
	}
	if _, err := promoteRank(base.Military.Rank, p.Grades); err != nil {
		return NewTransformError(p.Name(), "validate", err.Error(), nil)
	}
	return nil
}

func (p *Promote) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	rank, err := promoteRank(base.Military.Rank, p.Grades)
	if err != nil {
		return nil, NewTransformError(p.Name(), "apply", "cannot promote", err)
	}
	modified := base.DeepCopy()
	modified.Military.Rank = rank
	return modified, nil
}

// promoteRank moves a grade up by n. The prior-enlisted officer suffix only
// exists for O-1E through O-3E and is dropped above that.
func promoteRank(rank string, n int) (string, error) {
	m := gradePattern.FindStringSubmatch(domain.NormalizeRank(rank))
	if m == nil {
		return "", fmt.Errorf("rank %q is not a pay grade", rank)
	}
	family, suffix := m[1], m[3]
	grade, _ := strconv.Atoi(m[2])
	next := grade + n
	if next > topGrade[family] {
		return "", fmt.Errorf("%s is already within %d grades of %s-%d", domain.NormalizeRank(rank), n, family, topGrade[family])
	}
	if suffix == "E" && (family != "O" || next > 3) {
		suffix = ""
	}
	return fmt.Sprintf("%s-%d%s", family, next, suffix), nil
}

// AddYears adds time in service, which moves the base-pay step
type AddYears struct {
	Years int
}

func (a *AddYears) Name() string {
	return "add_years"
}

func (a *AddYears) Description() string {
	return fmt.Sprintf("Add %d years of service", a.Years)
}

func (a *AddYears) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(a.Name(), base); err != nil {
		return err
	}
	if base.Military.YearsOfService+a.Years < 0 {
		return NewTransformError(a.Name(), "validate",
			fmt.Sprintf("years of service would become %d", base.Military.YearsOfService+a.Years), nil)
	}
	return nil
}

func (a *AddYears) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	modified.Military.YearsOfService += a.Years
	return modified, nil
}

// SetStation moves the service member to another duty station. A manual BAH
// override belongs to the old station and is cleared.
type SetStation struct {
	Station string
}

func (s *SetStation) Name() string {
	return "set_station"
}

func (s *SetStation) Description() string {
	return fmt.Sprintf("Move to duty station %s", s.Station)
}

func (s *SetStation) Validate(base *domain.ComparisonScenario) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if strings.TrimSpace(s.Station) == "" {
		return NewTransformError(s.Name(), "validate", "station cannot be empty", nil)
	}
	return nil
}

func (s *SetStation) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	modified.Military.DutyStation = strings.TrimSpace(s.Station)
	modified.Military.ManualBAH = nil
	return modified, nil
}

// ToggleDependents flips the with/without dependents BAH rate
type ToggleDependents struct{}

func (t *ToggleDependents) Name() string {
	return "toggle_dependents"
}

func (t *ToggleDependents) Description() string {
	return "Switch the BAH dependency status"
}

func (t *ToggleDependents) Validate(base *domain.ComparisonScenario) error {
	return requireBase(t.Name(), base)
}

func (t *ToggleDependents) Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error) {
	modified := base.DeepCopy()
	modified.Military.HasDependents = !modified.Military.HasDependents
	return modified, nil
}
