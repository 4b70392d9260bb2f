package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for the CLI
// and the API.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("promote", createPromote)
	registry.Register("add_years", createAddYears)
	registry.Register("set_station", createSetStation)
	registry.Register("toggle_dependents", createToggleDependents)
	registry.Register("set_state", createSetState)
	registry.Register("adjust_salary", createAdjustSalary)
	registry.Register("set_stage", createSetStage)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value". The parameter list may
// be omitted for transforms that take none, e.g. "toggle_dependents".
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func intParam(transform string, params map[string]string, key string, def int, required bool) (int, error) {
	s, ok := params[key]
	if !ok {
		if required {
			return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
		}
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createPromote(params map[string]string) (ScenarioTransform, error) {
	grades, err := intParam("promote", params, "grades", 1, false)
	if err != nil {
		return nil, err
	}
	return &Promote{Grades: grades}, nil
}

func createAddYears(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("add_years", params, "years", 0, true)
	if err != nil {
		return nil, err
	}
	return &AddYears{Years: years}, nil
}

func createSetStation(params map[string]string) (ScenarioTransform, error) {
	station, ok := params["station"]
	if !ok {
		return nil, fmt.Errorf("set_station requires 'station' parameter")
	}
	return &SetStation{Station: station}, nil
}

func createToggleDependents(map[string]string) (ScenarioTransform, error) {
	return &ToggleDependents{}, nil
}

func createSetState(params map[string]string) (ScenarioTransform, error) {
	state, ok := params["state"]
	if !ok {
		return nil, fmt.Errorf("set_state requires 'state' parameter")
	}
	return &SetState{State: state}, nil
}

func createAdjustSalary(params map[string]string) (ScenarioTransform, error) {
	t := &AdjustSalary{}
	pct, hasPct := params["pct"]
	amount, hasAmount := params["amount"]
	if !hasPct && !hasAmount {
		return nil, fmt.Errorf("adjust_salary requires 'pct' or 'amount' parameter")
	}
	if hasPct {
		v, err := decimal.NewFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("invalid pct value: %w", err)
		}
		t.Percent = v
	}
	if hasAmount {
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
		t.Amount = v
	}
	return t, nil
}

func createSetStage(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["stage"]
	if !ok {
		return nil, fmt.Errorf("set_stage requires 'stage' parameter")
	}
	stage, ok := domain.ParseCompanyStage(raw)
	if !ok {
		return nil, fmt.Errorf("unknown company stage: %s", raw)
	}
	return &SetStage{Stage: stage}, nil
}
