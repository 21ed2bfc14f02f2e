package roi

import "github.com/iwvelando/roi-forecast/pkg/constants"

// UseCaseProfile is a named template describing the business process an
// automation initiative targets. Profiles are read-only inputs to Project.
type UseCaseProfile struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`

	BaseVolume  float64 `json:"baseVolume" yaml:"baseVolume" toml:"baseVolume"`
	BaseValue   float64 `json:"baseValue" yaml:"baseValue" toml:"baseValue"`
	ProcessCost float64 `json:"processCost" yaml:"processCost" toml:"processCost"`

	// RevenueFactor and SavingsFactor are the shares of transaction value and
	// process cost attributable to revenue lift and cost savings.
	RevenueFactor float64 `json:"revenueFactor" yaml:"revenueFactor" toml:"revenueFactor"`
	SavingsFactor float64 `json:"savingsFactor" yaml:"savingsFactor" toml:"savingsFactor"`

	DefaultRevenueLift    float64 `json:"defaultRevenueLift" yaml:"defaultRevenueLift" toml:"defaultRevenueLift"`
	DefaultCostSavings    float64 `json:"defaultCostSavings" yaml:"defaultCostSavings" toml:"defaultCostSavings"`
	DefaultInvestment     float64 `json:"defaultInvestment" yaml:"defaultInvestment" toml:"defaultInvestment"`
	DefaultMaintenancePct float64 `json:"defaultMaintenancePct" yaml:"defaultMaintenancePct" toml:"defaultMaintenancePct"`

	ImpactCategories []ImpactCategory `json:"impactCategories" yaml:"impactCategories" toml:"impactCategories"`
}

// ImpactCategory is a display label used to split benefits in charts.
type ImpactCategory struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color"`
}

// DefaultParameters seeds a parameter set from the profile defaults using the
// standard discount rate and time horizon.
func (p UseCaseProfile) DefaultParameters() Parameters {
	return Parameters{
		InitialInvestment:    p.DefaultInvestment,
		AnnualMaintenancePct: p.DefaultMaintenancePct,
		RevenueLiftPct:       p.DefaultRevenueLift,
		CostSavingsPct:       p.DefaultCostSavings,
		DiscountRate:         constants.DefaultDiscountRate,
		TimeHorizon:          constants.DefaultTimeHorizon,
		BaseVolume:           p.BaseVolume,
		BaseValue:            p.BaseValue,
		ProcessCost:          p.ProcessCost,
	}
}
