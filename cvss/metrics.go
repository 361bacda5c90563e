// Package cvss implements the CVSS version 1 scoring formula: Base, Temporal,
// and Environmental scores computed from categorical metric assignments.
package cvss

// Metric names as they appear in assignments and payloads.
const (
	AccessVector          = "AccessVector"
	AccessComplexity      = "AccessComplexity"
	Authentication        = "Authentication"
	ConfidentialityImpact = "ConfidentialityImpact"
	IntegrityImpact       = "IntegrityImpact"
	AvailabilityImpact    = "AvailabilityImpact"
	ImpactBias            = "ImpactBias"

	Exploitability   = "Exploitability"
	RemediationLevel = "RemediationLevel"
	ReportConfidence = "ReportConfidence"

	CollateralDamagePotential = "CollateralDamagePotential"
	TargetDistribution        = "TargetDistribution"
)

// ImpactBias values that select the 0.5 scaling branch for their impact metric.
const (
	BiasNormal          = "normal"
	BiasConfidentiality = "confidentiality"
	BiasIntegrity       = "integrity"
	BiasAvailability    = "availability"
)

// Impact weight scaling applied per the ImpactBias assignment.
const (
	biasMatchedScale = 0.5
	biasNormalScale  = 0.333
	biasOtherScale   = 0.25
)

// Definition maps one metric to its allowed values and their weights.
// The table is fixed at build time and never mutated.
type Definition struct {
	Name    string
	Weights map[string]float64
}

// definitions lists every recognized metric in declaration order. Group
// membership and the missing-metric reporting order both derive from it, so
// adding a metric means adding a row here and nothing else.
var definitions = []Definition{
	{AccessVector, map[string]float64{"remote": 1.0, "local": 0.7}},
	{AccessComplexity, map[string]float64{"low": 1.0, "high": 0.8}},
	{Authentication, map[string]float64{"required": 0.6, "not-required": 1.0}},
	{ConfidentialityImpact, map[string]float64{"none": 0, "partial": 0.7, "complete": 1.0}},
	{IntegrityImpact, map[string]float64{"none": 0, "partial": 0.7, "complete": 1.0}},
	{AvailabilityImpact, map[string]float64{"none": 0, "partial": 0.7, "complete": 1.0}},
	// ImpactBias weights are unused by the formula; the assigned name drives
	// the impact scaling branch instead.
	{ImpactBias, map[string]float64{BiasNormal: 1.0, BiasConfidentiality: 1.0, BiasIntegrity: 1.0, BiasAvailability: 1.0}},
	{Exploitability, map[string]float64{"unproven": 0.85, "proof-of-concept": 0.9, "functional": 0.95, "high": 1.0}},
	{RemediationLevel, map[string]float64{"official-fix": 0.87, "temporary-fix": 0.90, "workaround": 0.95, "unavailable": 1.00}},
	{ReportConfidence, map[string]float64{"unconfirmed": 0.9, "uncorroborated": 0.95, "confirmed": 1.00}},
	{CollateralDamagePotential, map[string]float64{"none": 0, "low": 0.1, "medium": 0.3, "high": 0.5}},
	{TargetDistribution, map[string]float64{"none": 0, "low": 0.25, "medium": 0.75, "high": 1.0}},
}

// Metric groups, in missing-metric reporting order.
var (
	baseMetrics = []string{
		AccessVector, AccessComplexity, Authentication,
		ConfidentialityImpact, IntegrityImpact, AvailabilityImpact, ImpactBias,
	}
	temporalMetrics      = []string{Exploitability, RemediationLevel, ReportConfidence}
	environmentalMetrics = []string{CollateralDamagePotential, TargetDistribution}

	impactMetrics = []string{ConfidentialityImpact, IntegrityImpact, AvailabilityImpact}

	// biasFor names the ImpactBias value that halves each impact metric.
	biasFor = map[string]string{
		ConfidentialityImpact: BiasConfidentiality,
		IntegrityImpact:       BiasIntegrity,
		AvailabilityImpact:    BiasAvailability,
	}
)

// definitionIndex is the lookup side of the table, built once at load time.
var definitionIndex = func() map[string]Definition {
	idx := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		idx[def.Name] = def
	}
	return idx
}()

// Metric group names.
const (
	GroupBase          = "base"
	GroupTemporal      = "temporal"
	GroupEnvironmental = "environmental"
)

// GroupOf returns the scoring group a metric belongs to, or "" when the name
// is not in the table.
func GroupOf(name string) string {
	for _, m := range temporalMetrics {
		if m == name {
			return GroupTemporal
		}
	}
	for _, m := range environmentalMetrics {
		if m == name {
			return GroupEnvironmental
		}
	}
	if _, ok := definitionIndex[name]; ok {
		return GroupBase
	}
	return ""
}

// Definitions returns the full metric table in declaration order. Callers get
// copies; the table itself is immutable.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	for i, def := range definitions {
		weights := make(map[string]float64, len(def.Weights))
		for v, w := range def.Weights {
			weights[v] = w
		}
		out[i] = Definition{Name: def.Name, Weights: weights}
	}
	return out
}
