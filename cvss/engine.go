package cvss

import (
	"fmt"
	"math"
	"strings"
)

// Engine holds the current metric assignments for one vulnerability and
// computes its scores. Assignments start empty and grow only through Set or
// UpdateFromMap; there is no unset operation. Scores are recomputed on every
// call, so re-assigning a metric is always reflected by the next computation.
//
// An Engine is not safe for concurrent mutation; it assumes a single logical
// owner, or read-only sharing once fully assigned.
type Engine struct {
	assigned map[string]string
}

// New creates an engine with an empty assignment mapping and, when initial is
// non-nil, applies it via UpdateFromMap.
func New(initial map[string]string) (*Engine, error) {
	e := &Engine{assigned: make(map[string]string)}
	if initial != nil {
		if err := e.UpdateFromMap(initial); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewFromValues creates an engine from a generic mapping as decoded from JSON
// or YAML payloads. Fails with ErrInvalidArgument unless every value is a
// string; the assignments themselves are validated exactly as in Set.
func NewFromValues(values map[string]interface{}) (*Engine, error) {
	metrics := make(map[string]string, len(values))
	for name, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: metric %q must map to a string, got %T", ErrInvalidArgument, name, v)
		}
		metrics[name] = s
	}
	return New(metrics)
}

// Set assigns a value to the named metric, overwriting any prior assignment.
// The value is matched case-insensitively and stored lowercased; the
// normalized value is returned on success.
func (e *Engine) Set(name, value string) (string, error) {
	def, ok := definitionIndex[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	normalized := strings.ToLower(value)
	if _, ok := def.Weights[normalized]; !ok {
		return "", fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, value, name)
	}
	e.assigned[name] = normalized
	return normalized, nil
}

// UpdateFromMap applies a batch of metric assignments via Set. It fails fast
// on the first invalid entry; assignments applied before the failure stick
// (no rollback). Entry order is unspecified.
func (e *Engine) UpdateFromMap(metrics map[string]string) error {
	for name, value := range metrics {
		if _, err := e.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the current normalized assignment for a metric name.
func (e *Engine) Get(name string) (string, bool) {
	v, ok := e.assigned[name]
	return v, ok
}

// Assigned returns a copy of the current metric assignments.
func (e *Engine) Assigned() map[string]string {
	out := make(map[string]string, len(e.assigned))
	for name, v := range e.assigned {
		out[name] = v
	}
	return out
}

// BaseScore computes the Base score. All seven Base metrics must be assigned;
// otherwise it fails with ErrMissingMetric naming the first missing one.
func (e *Engine) BaseScore() (float64, error) {
	if err := e.require(baseMetrics); err != nil {
		return 0, err
	}

	score := 10 * e.weight(AccessVector) * e.weight(AccessComplexity) * e.weight(Authentication)

	bias := e.assigned[ImpactBias]
	impact := 0.0
	for _, m := range impactMetrics {
		w := e.weight(m)
		switch bias {
		case biasFor[m]:
			w *= biasMatchedScale
		case BiasNormal:
			w *= biasNormalScale
		default:
			w *= biasOtherScale
		}
		impact += w
	}
	score *= impact

	return round1(score), nil
}

// TemporalScore computes the Temporal score on top of BaseScore. The three
// Temporal metrics must be assigned, and the Base metrics transitively.
func (e *Engine) TemporalScore() (float64, error) {
	if err := e.require(temporalMetrics); err != nil {
		return 0, err
	}
	base, err := e.BaseScore()
	if err != nil {
		return 0, err
	}

	score := base * e.weight(Exploitability) * e.weight(RemediationLevel) * e.weight(ReportConfidence)
	return round1(score), nil
}

// EnvironmentalScore computes the Environmental score on top of
// TemporalScore. Both Environmental metrics must be assigned, and the
// Temporal and Base metrics transitively.
func (e *Engine) EnvironmentalScore() (float64, error) {
	if err := e.require(environmentalMetrics); err != nil {
		return 0, err
	}
	temporal, err := e.TemporalScore()
	if err != nil {
		return 0, err
	}

	score := (temporal + (10-temporal)*e.weight(CollateralDamagePotential)) * e.weight(TargetDistribution)
	return round1(score), nil
}

// require checks that every metric in the group is assigned, reporting the
// first missing one in group order.
func (e *Engine) require(group []string) error {
	for _, name := range group {
		if _, ok := e.assigned[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingMetric, name)
		}
	}
	return nil
}

// weight looks up the weight of the current assignment. Callers guarantee the
// metric is assigned via require.
func (e *Engine) weight(name string) float64 {
	return definitionIndex[name].Weights[e.assigned[name]]
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
