package transform

import (
	"fmt"

	"github.com/rgehrsitz/compme/internal/domain"
)

// ScenarioTransform is a composable what-if applied to a comparison scenario.
// Transforms never mutate their input; Apply returns a modified copy.
type ScenarioTransform interface {
	// Apply returns a new scenario with the change applied
	Apply(base *domain.ComparisonScenario) (*domain.ComparisonScenario, error)

	// Name is the registry identifier, e.g. "promote"
	Name() string

	// Description is a human-readable summary of the change
	Description() string

	// Validate checks parameters against the scenario without applying them
	Validate(base *domain.ComparisonScenario) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the
// previous one. With no transforms it returns a deep copy of base.
func ApplyTransforms(base *domain.ComparisonScenario, transforms []ScenarioTransform) (*domain.ComparisonScenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.ComparisonScenario) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	return nil
}
