package roi

import "math"

// Validate checks every parameter against its documented domain and returns a
// *ParameterError for the first violation found.
func (p Parameters) Validate() error {
	checks := []struct {
		field string
		value float64
		min   float64
		max   float64
	}{
		{"initialInvestment", p.InitialInvestment, 0, math.Inf(1)},
		{"annualMaintenancePct", p.AnnualMaintenancePct, 0, 1},
		{"revenueLiftPct", p.RevenueLiftPct, 0, 1},
		{"costSavingsPct", p.CostSavingsPct, 0, 1},
		{"baseVolume", p.BaseVolume, 0, math.Inf(1)},
		{"baseValue", p.BaseValue, 0, math.Inf(1)},
		{"processCost", p.ProcessCost, 0, math.Inf(1)},
	}
	for _, c := range checks {
		if err := checkRange(c.field, c.value, c.min, c.max); err != nil {
			return err
		}
	}

	if math.IsNaN(p.DiscountRate) || math.IsInf(p.DiscountRate, 0) {
		return &ParameterError{Field: "discountRate", Value: p.DiscountRate, Reason: "must be finite"}
	}
	if p.DiscountRate <= -1 {
		return &ParameterError{Field: "discountRate", Value: p.DiscountRate, Reason: "must be greater than -1"}
	}
	if p.TimeHorizon < 1 {
		return &ParameterError{Field: "timeHorizon", Value: float64(p.TimeHorizon), Reason: "must be at least 1"}
	}
	return nil
}

func validateProfile(profile UseCaseProfile) error {
	if err := checkRange("revenueFactor", profile.RevenueFactor, 0, 1); err != nil {
		return err
	}
	return checkRange("savingsFactor", profile.SavingsFactor, 0, 1)
}

func checkRange(field string, value, min, max float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ParameterError{Field: field, Value: value, Reason: "must be finite"}
	}
	if value < min {
		return &ParameterError{Field: field, Value: value, Reason: "must not be negative"}
	}
	if value > max {
		return &ParameterError{Field: field, Value: value, Reason: "must not exceed 1"}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

// checkFinite rejects a derived amount that overflowed float64. The error
// names the largest of the inputs it was computed from.
func checkFinite(amount float64, what string, inputs ...namedValue) error {
	if !math.IsNaN(amount) && !math.IsInf(amount, 0) {
		return nil
	}
	culprit := inputs[0]
	for _, in := range inputs[1:] {
		if math.Abs(in.value) > math.Abs(culprit.value) {
			culprit = in
		}
	}
	return &ParameterError{Field: culprit.name, Value: culprit.value, Reason: what + " is not finite"}
}
