package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/pkg/constants"
)

const sampleConfig = `profile: invoice-processing
catalogFile: extra-catalog.yaml
parameters:
  initialInvestment: 600000
  discountRate: 0.1
  timeHorizon: 7
  baseVolume: 100000
logging:
  level: debug
  format: console
output:
  format: csv
  file: out.csv
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Profile != "invoice-processing" {
		t.Errorf("Profile = %s", conf.Profile)
	}
	if conf.CatalogFile != "extra-catalog.yaml" {
		t.Errorf("CatalogFile = %s", conf.CatalogFile)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" || conf.Output.File != "out.csv" {
		t.Errorf("Output = %+v", conf.Output)
	}

	p := conf.Parameters
	if p.InitialInvestment == nil || *p.InitialInvestment != 600000 {
		t.Errorf("InitialInvestment override not loaded: %v", p.InitialInvestment)
	}
	if p.TimeHorizon == nil || *p.TimeHorizon != 7 {
		t.Errorf("TimeHorizon override not loaded: %v", p.TimeHorizon)
	}
	if p.BaseVolume == nil || *p.BaseVolume != 100000 {
		t.Errorf("BaseVolume override not loaded: %v", p.BaseVolume)
	}
	if p.RevenueLiftPct != nil || p.ProcessCost != nil {
		t.Errorf("expected unset overrides to stay nil, got %+v", p)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.ProfileKey() != "invoice-processing" {
		t.Errorf("ProfileKey() = %s", conf.ProfileKey())
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("profile: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestResolveAppliesOverrides(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	profile, params, err := conf.Resolve(catalog.New())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if profile.Name != "Invoice Processing & Approval" {
		t.Errorf("profile = %s", profile.Name)
	}
	if params.InitialInvestment != 600000 || params.DiscountRate != 0.1 || params.TimeHorizon != 7 {
		t.Errorf("overrides not applied: %+v", params)
	}
	if params.BaseVolume != 100000 {
		t.Errorf("BaseVolume = %.0f, expected 100000", params.BaseVolume)
	}
	// Unset values fall back to profile defaults.
	if params.RevenueLiftPct != 0.22 || params.CostSavingsPct != 0.30 || params.ProcessCost != 45 {
		t.Errorf("defaults not kept: %+v", params)
	}
	if params.AnnualMaintenancePct != 0.18 || params.BaseValue != 3500 {
		t.Errorf("defaults not kept: %+v", params)
	}
}

func TestResolveDefaultsAndUnknownProfile(t *testing.T) {
	conf := &Configuration{}
	profile, params, err := conf.Resolve(catalog.New())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if conf.ProfileKey() != constants.DefaultProfileKey {
		t.Errorf("ProfileKey() = %s", conf.ProfileKey())
	}
	if profile.Name != "Order Management & Validation" {
		t.Errorf("profile = %s", profile.Name)
	}
	if params.DiscountRate != constants.DefaultDiscountRate || params.TimeHorizon != constants.DefaultTimeHorizon {
		t.Errorf("unexpected defaults %+v", params)
	}

	conf.Profile = "payroll"
	if _, _, err := conf.Resolve(catalog.New()); !errors.Is(err, catalog.ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	zero := 0.0
	long := 40
	conf := Configuration{
		Parameters: ParameterOverrides{
			DiscountRate:      &zero,
			TimeHorizon:       &long,
			InitialInvestment: &zero,
			RevenueLiftPct:    &zero,
			CostSavingsPct:    &zero,
		},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}

	clean := Configuration{}
	if w := clean.ValidateConfiguration(); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
}
