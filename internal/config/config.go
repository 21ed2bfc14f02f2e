// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving it into projection
// inputs.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for roi-forecast.
type Configuration struct {
	Profile     string             `yaml:"profile,omitempty"`
	CatalogFile string             `yaml:"catalogFile,omitempty"`
	Parameters  ParameterOverrides `yaml:"parameters,omitempty"`
	Logging     LoggingConfig      `yaml:"logging,omitempty"`
	Output      OutputConfig       `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, pdf
	File   string `yaml:"file,omitempty"`   // optional export path
}

// ParameterOverrides replaces individual profile defaults. Nil fields keep
// the default.
type ParameterOverrides struct {
	InitialInvestment    *float64 `yaml:"initialInvestment,omitempty" json:"initialInvestment,omitempty"`
	AnnualMaintenancePct *float64 `yaml:"annualMaintenancePct,omitempty" json:"annualMaintenancePct,omitempty"`
	RevenueLiftPct       *float64 `yaml:"revenueLiftPct,omitempty" json:"revenueLiftPct,omitempty"`
	CostSavingsPct       *float64 `yaml:"costSavingsPct,omitempty" json:"costSavingsPct,omitempty"`
	DiscountRate         *float64 `yaml:"discountRate,omitempty" json:"discountRate,omitempty"`
	TimeHorizon          *int     `yaml:"timeHorizon,omitempty" json:"timeHorizon,omitempty"`
	BaseVolume           *float64 `yaml:"baseVolume,omitempty" json:"baseVolume,omitempty"`
	BaseValue            *float64 `yaml:"baseValue,omitempty" json:"baseValue,omitempty"`
	ProcessCost          *float64 `yaml:"processCost,omitempty" json:"processCost,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("ROI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ProfileKey returns the configured profile key or the default one.
func (c *Configuration) ProfileKey() string {
	key := strings.TrimSpace(c.Profile)
	if key == "" {
		return constants.DefaultProfileKey
	}
	return key
}

// Resolve looks up the configured profile in cat and returns it together
// with its default parameters overlaid by the configured overrides.
func (c *Configuration) Resolve(cat *catalog.Catalog) (roi.UseCaseProfile, roi.Parameters, error) {
	profile, err := cat.Lookup(c.ProfileKey())
	if err != nil {
		return roi.UseCaseProfile{}, roi.Parameters{}, err
	}
	return profile, c.Parameters.Apply(profile.DefaultParameters()), nil
}

// Apply returns params with every non-nil override substituted.
func (o ParameterOverrides) Apply(params roi.Parameters) roi.Parameters {
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat(&params.InitialInvestment, o.InitialInvestment)
	setFloat(&params.AnnualMaintenancePct, o.AnnualMaintenancePct)
	setFloat(&params.RevenueLiftPct, o.RevenueLiftPct)
	setFloat(&params.CostSavingsPct, o.CostSavingsPct)
	setFloat(&params.DiscountRate, o.DiscountRate)
	setFloat(&params.BaseVolume, o.BaseVolume)
	setFloat(&params.BaseValue, o.BaseValue)
	setFloat(&params.ProcessCost, o.ProcessCost)
	if o.TimeHorizon != nil {
		params.TimeHorizon = *o.TimeHorizon
	}
	return params
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are valid but likely unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	p := c.Parameters

	if p.DiscountRate != nil && *p.DiscountRate <= 0 && *p.DiscountRate > -1 {
		warnings = append(warnings, fmt.Sprintf("Discount rate %g is not positive - NPV will not discount future cash flows", *p.DiscountRate))
	}
	if p.TimeHorizon != nil && *p.TimeHorizon > 30 {
		warnings = append(warnings, fmt.Sprintf("Time horizon of %d years extends the linear growth model well past its intended range", *p.TimeHorizon))
	}
	if p.InitialInvestment != nil && *p.InitialInvestment == 0 {
		warnings = append(warnings, "Initial investment is zero - maintenance is zero as well and ROI is undefined")
	}
	if p.RevenueLiftPct != nil && p.CostSavingsPct != nil && *p.RevenueLiftPct == 0 && *p.CostSavingsPct == 0 {
		warnings = append(warnings, "Revenue lift and cost savings are both zero - the projection has no benefits")
	}

	return warnings
}
