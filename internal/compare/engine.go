package compare

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/compme/internal/calculation"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/transform"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	Logger            *zap.Logger
	// Concurrency bounds CompareBatch; zero uses GOMAXPROCS
	Concurrency int
}

// NewCompareEngine creates a comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine, logger *zap.Logger) *CompareEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
		Logger:            logger,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // built-in template names, one alternative each
	Transforms []string // "name:key=value" transform specs, one alternative each
	ConfigPath string
}

// Evaluate runs one scenario and derives its metrics, including the civilian
// salary that would match the military total.
func (ce *CompareEngine) Evaluate(ctx context.Context, s *domain.ComparisonScenario) (ComparisonResult, error) {
	if s == nil {
		return ComparisonResult{}, fmt.Errorf("scenario cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}

	out := ce.CalcEngine.RunScenario(s)

	var breakEven *calculation.BreakEvenResult
	if out.Military.TotalMonthly.IsPositive() {
		offer := s.Civilian
		offer.AnnualRSUValue = out.Civilian.RSUAnnual
		be, err := ce.CalcEngine.Civilian.BreakEvenSalary(ctx, calculation.BreakEvenRequest{
			Offer:         offer,
			TargetMonthly: out.Military.TotalMonthly,
		})
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return ComparisonResult{}, err
		case err != nil:
			ce.Logger.Warn("break-even search failed", zap.String("scenario", s.Name), zap.Error(err))
		default:
			breakEven = be
		}
	}

	result := ce.MetricsCalculator.CalculateMetrics(s, &out, breakEven)
	ce.Logger.Debug("scenario evaluated",
		zap.String("scenario", s.Name),
		zap.String("rank", out.Military.Rank),
		zap.String("station", out.Military.DutyStation),
		zap.String("monthly_advantage", result.MonthlyAdvantage.StringFixed(2)),
		zap.Strings("warnings", result.Warnings))
	return result, nil
}

// CompareBatch evaluates scenarios concurrently. Results keep the input order;
// the first error cancels the remaining work.
func (ce *CompareEngine) CompareBatch(ctx context.Context, scenarios []*domain.ComparisonScenario) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(scenarios))

	limit := ce.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range scenarios {
		g.Go(func() error {
			r, err := ce.Evaluate(gctx, s)
			if err != nil {
				name := ""
				if s != nil {
					name = s.Name
				}
				return fmt.Errorf("failed to evaluate scenario %q: %w", name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compare evaluates a base scenario against alternatives built from templates
// and transform specs.
func (ce *CompareEngine) Compare(ctx context.Context, base *domain.ComparisonScenario, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	scenarios := []*domain.ComparisonScenario{base}
	descriptions := []string{""}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = base.Name + "_" + template.Name
		scenarios = append(scenarios, modified)
		descriptions = append(descriptions, template.Description)
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}
		modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %q: %w", spec, err)
		}
		modified.Name = base.Name + "_" + t.Name()
		scenarios = append(scenarios, modified)
		descriptions = append(descriptions, t.Description())
	}

	results, err := ce.CompareBatch(ctx, scenarios)
	if err != nil {
		return nil, err
	}

	compSet := ce.assemble(base.Name, results, descriptions)
	compSet.ConfigPath = options.ConfigPath
	ce.Logger.Info("comparison complete",
		zap.String("base", base.Name),
		zap.Int("alternatives", len(compSet.AlternativeResults)))
	return compSet, nil
}

// CompareScenarios compares explicit scenarios. The base is the scenario named
// baseName, or the first one when baseName is empty.
func (ce *CompareEngine) CompareScenarios(ctx context.Context, scenarios []domain.ComparisonScenario, baseName string) (*ComparisonSet, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	baseIdx := 0
	if baseName != "" {
		baseIdx = -1
		for i := range scenarios {
			if scenarios[i].Name == baseName {
				baseIdx = i
				break
			}
		}
		if baseIdx < 0 {
			return nil, fmt.Errorf("base scenario %s not found", baseName)
		}
	}

	ordered := []*domain.ComparisonScenario{&scenarios[baseIdx]}
	for i := range scenarios {
		if i != baseIdx {
			ordered = append(ordered, &scenarios[i])
		}
	}

	results, err := ce.CompareBatch(ctx, ordered)
	if err != nil {
		return nil, err
	}
	return ce.assemble(scenarios[baseIdx].Name, results, nil), nil
}

func (ce *CompareEngine) assemble(baseName string, results []ComparisonResult, descriptions []string) *ComparisonSet {
	baseResult := results[0]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for i, r := range results[1:] {
		if i+1 < len(descriptions) {
			r.Description = descriptions[i+1]
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
