// Package roi projects the multi-year cash flows of an automation initiative
// and derives NPV, ROI and payback from them.
//
// Project is a pure function: it performs no I/O, keeps no state between
// calls and is safe to call concurrently.
package roi

import (
	"math"

	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

// Parameters holds the caller-supplied assumptions for one projection run.
// Percentages are fractions (0.18 means 18%).
type Parameters struct {
	InitialInvestment    float64 `json:"initialInvestment" yaml:"initialInvestment"`
	AnnualMaintenancePct float64 `json:"annualMaintenancePct" yaml:"annualMaintenancePct"`
	RevenueLiftPct       float64 `json:"revenueLiftPct" yaml:"revenueLiftPct"`
	CostSavingsPct       float64 `json:"costSavingsPct" yaml:"costSavingsPct"`
	DiscountRate         float64 `json:"discountRate" yaml:"discountRate"`
	TimeHorizon          int     `json:"timeHorizon" yaml:"timeHorizon"`
	BaseVolume           float64 `json:"baseVolume" yaml:"baseVolume"`
	BaseValue            float64 `json:"baseValue" yaml:"baseValue"`
	ProcessCost          float64 `json:"processCost" yaml:"processCost"`
}

// YearRecord is one row of the projected ledger.
type YearRecord struct {
	Year               int     `json:"year"`
	InvestmentCost     float64 `json:"investmentCost"`
	MaintenanceCost    float64 `json:"maintenanceCost"`
	RevenueLift        float64 `json:"revenueLift"`
	CostSavings        float64 `json:"costSavings"`
	OperationalBenefit float64 `json:"operationalBenefit"`
	NetCashFlow        float64 `json:"netCashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	DiscountedCashFlow float64 `json:"discountedCashFlow"`
}

// Payback is the fractional year at which cumulative cash flow turns
// positive. Years is meaningless when Achieved is false.
type Payback struct {
	Achieved bool    `json:"achieved"`
	Years    float64 `json:"years"`
}

// Months returns the payback period in months. It returns 0 when the payback
// was not achieved; callers must check Achieved first.
func (p Payback) Months() float64 {
	if !p.Achieved {
		return 0
	}
	return p.Years * constants.MonthsPerYear
}

// Metrics summarizes a ledger.
type Metrics struct {
	NPV float64 `json:"npv"`
	// ROI is a percentage. When total costs are zero ROI is undefined:
	// ROIDefined is false and ROI is 0.
	ROI           float64 `json:"roi"`
	ROIDefined    bool    `json:"roiDefined"`
	Payback       Payback `json:"payback"`
	TotalBenefits float64 `json:"totalBenefits"`
	TotalCosts    float64 `json:"totalCosts"`
}

// Projection is the result of a single run.
type Projection struct {
	Ledger  []YearRecord `json:"ledger"`
	Metrics Metrics      `json:"metrics"`
}

// Project computes the year-by-year ledger for years 0..params.TimeHorizon and
// the summary metrics. Invalid parameters, including inputs large enough to
// overflow any amount, are rejected with a *ParameterError.
func Project(profile UseCaseProfile, params Parameters) (*Projection, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	revenueLift := params.BaseVolume * params.BaseValue * profile.RevenueFactor * params.RevenueLiftPct
	costSavings := params.BaseVolume * params.ProcessCost * profile.SavingsFactor * params.CostSavingsPct
	maintenance := params.InitialInvestment * params.AnnualMaintenancePct
	if err := checkFinite(revenueLift, "revenue lift", namedValue{"baseVolume", params.BaseVolume}, namedValue{"baseValue", params.BaseValue}); err != nil {
		return nil, err
	}
	if err := checkFinite(costSavings, "cost savings", namedValue{"baseVolume", params.BaseVolume}, namedValue{"processCost", params.ProcessCost}); err != nil {
		return nil, err
	}
	if err := checkFinite(maintenance, "maintenance", namedValue{"initialInvestment", params.InitialInvestment}); err != nil {
		return nil, err
	}

	ledger := make([]YearRecord, 0, params.TimeHorizon+1)

	// Year 0 is the rollout year: partial benefits, full investment, no maintenance.
	year0 := YearRecord{
		Year:           0,
		InvestmentCost: params.InitialInvestment,
		RevenueLift:    revenueLift * constants.ImplementationYearBenefitShare,
		CostSavings:    costSavings * constants.ImplementationYearBenefitShare,
	}
	year0.OperationalBenefit = year0.RevenueLift + year0.CostSavings
	year0.NetCashFlow = year0.OperationalBenefit - year0.InvestmentCost
	year0.CumulativeCashFlow = year0.NetCashFlow
	year0.DiscountedCashFlow = year0.NetCashFlow
	ledger = append(ledger, year0)

	cumulative := year0.NetCashFlow
	for year := 1; year <= params.TimeHorizon; year++ {
		ramp, growth := RampFactor(year), GrowthFactor(year)

		rec := YearRecord{
			Year:            year,
			MaintenanceCost: maintenance,
			RevenueLift:     revenueLift * ramp * growth,
			CostSavings:     costSavings * ramp * growth,
		}
		rec.OperationalBenefit = rec.RevenueLift + rec.CostSavings
		rec.NetCashFlow = rec.OperationalBenefit - rec.InvestmentCost - rec.MaintenanceCost
		cumulative += rec.NetCashFlow
		rec.CumulativeCashFlow = cumulative
		rec.DiscountedCashFlow = mathutil.Discount(rec.NetCashFlow, params.DiscountRate, year)
		ledger = append(ledger, rec)
	}

	metrics := Metrics{
		TotalCosts: params.InitialInvestment + maintenance*float64(params.TimeHorizon),
	}
	cumulativeSeries := make([]float64, len(ledger))
	for i, rec := range ledger {
		metrics.NPV += rec.DiscountedCashFlow
		metrics.TotalBenefits += rec.OperationalBenefit
		cumulativeSeries[i] = rec.CumulativeCashFlow
	}
	if err := checkFinite(metrics.TotalCosts, "total costs", namedValue{"initialInvestment", params.InitialInvestment}); err != nil {
		return nil, err
	}
	benefitInputs := []namedValue{{"baseVolume", params.BaseVolume}, {"baseValue", params.BaseValue}, {"processCost", params.ProcessCost}}
	if err := checkFinite(metrics.TotalBenefits, "total benefits", benefitInputs...); err != nil {
		return nil, err
	}
	if err := checkFinite(cumulative, "cumulative cash flow", benefitInputs...); err != nil {
		return nil, err
	}
	if err := checkFinite(metrics.NPV, "net present value", namedValue{"discountRate", params.DiscountRate}); err != nil {
		return nil, err
	}
	metrics.ROI, metrics.ROIDefined = ReturnOnInvestment(metrics.TotalBenefits, metrics.TotalCosts)
	if err := checkFinite(metrics.ROI, "return on investment", namedValue{"initialInvestment", params.InitialInvestment}); err != nil {
		return nil, err
	}
	metrics.Payback = PaybackPeriod(cumulativeSeries)

	return &Projection{Ledger: ledger, Metrics: metrics}, nil
}

// RampFactor is the share of steady-state benefit realized in a
// post-implementation year.
func RampFactor(year int) float64 {
	return math.Min(constants.RampBase+constants.RampStep*float64(year), 1.0)
}

// GrowthFactor is the linear organic growth multiplier for a
// post-implementation year.
func GrowthFactor(year int) float64 {
	return 1 + constants.AnnualGrowthRate*float64(year-1)
}

// ReturnOnInvestment returns the percentage gain of benefits over costs. The
// second result is false, with a zero ROI, when costs are zero.
func ReturnOnInvestment(benefits, costs float64) (float64, bool) {
	return mathutil.Percentage(benefits-costs, costs)
}

// PaybackPeriod finds the first index whose cumulative value is positive and
// interpolates linearly inside that year. A crossing with a zero denominator
// resolves to the crossing index.
func PaybackPeriod(cumulative []float64) Payback {
	for y, value := range cumulative {
		if value <= 0 {
			continue
		}
		if y == 0 {
			return Payback{Achieved: true, Years: 0}
		}
		fraction, ok := mathutil.CrossingFraction(cumulative[y-1], value)
		if !ok {
			return Payback{Achieved: true, Years: float64(y)}
		}
		return Payback{Achieved: true, Years: float64(y-1) + fraction}
	}
	return Payback{}
}
