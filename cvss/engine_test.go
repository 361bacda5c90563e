package cvss

import (
	"errors"
	"testing"
)

func TestSetNormalizesCase(t *testing.T) {
	e, err := New(nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, input := range []string{"remote", "Remote", "REMOTE", "rEmOtE"} {
		got, err := e.Set(AccessVector, input)
		if err != nil {
			t.Fatalf("Set(AccessVector, %q) error: %v", input, err)
		}
		if got != "remote" {
			t.Errorf("Set(AccessVector, %q) = %q, want %q", input, got, "remote")
		}
		if v, _ := e.Get(AccessVector); v != "remote" {
			t.Errorf("stored value = %q, want %q", v, "remote")
		}
	}
}

func TestSetErrors(t *testing.T) {
	e, _ := New(nil)

	if _, err := e.Set("AttackVector", "remote"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("Set with unrecognized name: err = %v, want ErrUnknownMetric", err)
	}
	if _, err := e.Set(AccessVector, "adjacent"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set with out-of-set value: err = %v, want ErrInvalidValue", err)
	}
	if _, ok := e.Get(AccessVector); ok {
		t.Error("failed Set must not store a value")
	}
}

func TestSetAcceptsEveryTableEntry(t *testing.T) {
	for _, def := range Definitions() {
		for value := range def.Weights {
			e, _ := New(nil)
			got, err := e.Set(def.Name, value)
			if err != nil {
				t.Errorf("Set(%s, %q) error: %v", def.Name, value, err)
			}
			if got != value {
				t.Errorf("Set(%s, %q) = %q, want input unchanged (table values are lowercase)", def.Name, value, got)
			}
		}
	}
}

func TestBaseScoreMissingMetric(t *testing.T) {
	e, _ := New(nil)

	_, err := e.BaseScore()
	if !errors.Is(err, ErrMissingMetric) {
		t.Fatalf("BaseScore on empty engine: err = %v, want ErrMissingMetric", err)
	}
	if want := "missing metric: AccessVector"; err.Error() != want {
		t.Errorf("err = %q, want %q (first missing in group order)", err.Error(), want)
	}

	if _, err := e.Set(AccessVector, "remote"); err != nil {
		t.Fatal(err)
	}
	_, err = e.BaseScore()
	if err == nil || err.Error() != "missing metric: AccessComplexity" {
		t.Errorf("err = %v, want next missing metric named", err)
	}
}

func TestTemporalScoreRequiresBaseTransitively(t *testing.T) {
	e, err := New(map[string]string{
		Exploitability:   "functional",
		RemediationLevel: "official-fix",
		ReportConfidence: "confirmed",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.TemporalScore(); !errors.Is(err, ErrMissingMetric) {
		t.Errorf("TemporalScore without Base metrics: err = %v, want ErrMissingMetric", err)
	}
}

func TestEnvironmentalScoreRequiresOwnGroupFirst(t *testing.T) {
	e, _ := New(nil)
	_, err := e.EnvironmentalScore()
	if err == nil || err.Error() != "missing metric: CollateralDamagePotential" {
		t.Errorf("err = %v, want CollateralDamagePotential reported", err)
	}
}

func TestScoresEndToEnd(t *testing.T) {
	tests := []struct {
		name          string
		metrics       map[string]string
		base          float64
		temporal      float64
		environmental float64
		hasTemporal   bool
		hasEnv        bool
	}{
		{
			name: "CVE-2002-0392",
			metrics: map[string]string{
				AccessVector:              "Remote",
				AccessComplexity:          "Low",
				Authentication:            "Not-Required",
				ConfidentialityImpact:     "Partial",
				IntegrityImpact:           "Partial",
				AvailabilityImpact:        "Complete",
				ImpactBias:                "Availability",
				Exploitability:            "Functional",
				RemediationLevel:          "Official-Fix",
				ReportConfidence:          "Confirmed",
				CollateralDamagePotential: "Medium",
				TargetDistribution:        "Medium",
			},
			base: 8.5, temporal: 7.0, environmental: 5.9,
			hasTemporal: true, hasEnv: true,
		},
		{
			name: "CVE-2003-0818",
			metrics: map[string]string{
				AccessVector:          "Remote",
				AccessComplexity:      "Low",
				Authentication:        "Not-Required",
				ConfidentialityImpact: "Complete",
				IntegrityImpact:       "Complete",
				AvailabilityImpact:    "Complete",
				ImpactBias:            "Normal",
				Exploitability:        "Functional",
				RemediationLevel:      "Official-Fix",
				ReportConfidence:      "Confirmed",
			},
			base: 10.0, temporal: 8.3,
			hasTemporal: true,
		},
		{
			name: "CVE-2003-0062",
			metrics: map[string]string{
				AccessVector:          "Local",
				AccessComplexity:      "High",
				Authentication:        "Not-Required",
				ConfidentialityImpact: "Complete",
				IntegrityImpact:       "Complete",
				AvailabilityImpact:    "Complete",
				ImpactBias:            "Normal",
				Exploitability:        "Proof-Of-Concept",
				RemediationLevel:      "Official-Fix",
				ReportConfidence:      "Confirmed",
			},
			base: 5.6, temporal: 4.4,
			hasTemporal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.metrics)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			base, err := e.BaseScore()
			if err != nil {
				t.Fatalf("BaseScore() error: %v", err)
			}
			if base != tt.base {
				t.Errorf("BaseScore() = %v, want %v", base, tt.base)
			}

			if tt.hasTemporal {
				temporal, err := e.TemporalScore()
				if err != nil {
					t.Fatalf("TemporalScore() error: %v", err)
				}
				if temporal != tt.temporal {
					t.Errorf("TemporalScore() = %v, want %v", temporal, tt.temporal)
				}
			}

			if tt.hasEnv {
				env, err := e.EnvironmentalScore()
				if err != nil {
					t.Fatalf("EnvironmentalScore() error: %v", err)
				}
				if env != tt.environmental {
					t.Errorf("EnvironmentalScore() = %v, want %v", env, tt.environmental)
				}
			}
		})
	}
}

func TestReassignmentChangesScore(t *testing.T) {
	e, err := New(map[string]string{
		AccessVector:          "remote",
		AccessComplexity:      "low",
		Authentication:        "not-required",
		ConfidentialityImpact: "complete",
		IntegrityImpact:       "complete",
		AvailabilityImpact:    "complete",
		ImpactBias:            "normal",
	})
	if err != nil {
		t.Fatal(err)
	}

	before, err := e.BaseScore()
	if err != nil {
		t.Fatal(err)
	}
	if before != 10.0 {
		t.Fatalf("BaseScore() = %v, want 10.0", before)
	}

	if _, err := e.Set(AccessVector, "local"); err != nil {
		t.Fatal(err)
	}
	after, err := e.BaseScore()
	if err != nil {
		t.Fatal(err)
	}
	if after != 7.0 {
		t.Errorf("BaseScore() after re-assignment = %v, want 7.0 (no caching of stale values)", after)
	}
}

func TestUpdateFromMapFailFastKeepsPriorState(t *testing.T) {
	e, _ := New(nil)
	if _, err := e.Set(AccessVector, "remote"); err != nil {
		t.Fatal(err)
	}

	err := e.UpdateFromMap(map[string]string{AccessComplexity: "impossible"})
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("UpdateFromMap: err = %v, want ErrInvalidValue", err)
	}
	if v, _ := e.Get(AccessVector); v != "remote" {
		t.Error("failed batch must not disturb prior assignments")
	}
	if _, ok := e.Get(AccessComplexity); ok {
		t.Error("invalid entry must not be stored")
	}
}

func TestNewFromValues(t *testing.T) {
	e, err := NewFromValues(map[string]interface{}{
		AccessVector: "Remote",
	})
	if err != nil {
		t.Fatalf("NewFromValues error: %v", err)
	}
	if v, _ := e.Get(AccessVector); v != "remote" {
		t.Errorf("stored value = %q, want %q", v, "remote")
	}

	_, err = NewFromValues(map[string]interface{}{AccessVector: 1.0})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("non-string value: err = %v, want ErrInvalidArgument", err)
	}
}

func TestNewPropagatesSetErrors(t *testing.T) {
	if _, err := New(map[string]string{"NoSuchMetric": "x"}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("New with unknown metric: err = %v, want ErrUnknownMetric", err)
	}
}

func TestDefinitionsReturnsCopies(t *testing.T) {
	defs := Definitions()
	if len(defs) != 12 {
		t.Fatalf("len(Definitions()) = %d, want 12", len(defs))
	}
	defs[0].Weights["remote"] = 99

	e, _ := New(map[string]string{
		AccessVector:          "remote",
		AccessComplexity:      "low",
		Authentication:        "not-required",
		ConfidentialityImpact: "none",
		IntegrityImpact:       "none",
		AvailabilityImpact:    "complete",
		ImpactBias:            "availability",
	})
	got, err := e.BaseScore()
	if err != nil {
		t.Fatal(err)
	}
	if got != 5.0 {
		t.Errorf("BaseScore() = %v, want 5.0 (table must be immutable through Definitions)", got)
	}
}
