package forecast

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/iwvelando/roi-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func TestGetForecastDefaults(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	result, err := GetForecast(logger, config.Configuration{}, nil)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}

	if result.Key != "order-management" {
		t.Errorf("Key = %s", result.Key)
	}
	if len(result.Projection.Ledger) != 6 {
		t.Errorf("expected 6 ledger rows, got %d", len(result.Projection.Ledger))
	}
	if result.Report == nil || len(result.Report.Cards) != 4 {
		t.Errorf("expected report with 4 cards, got %+v", result.Report)
	}
	if result.Parameters.InitialInvestment != 500000 {
		t.Errorf("InitialInvestment = %.0f", result.Parameters.InitialInvestment)
	}
}

func TestGetForecastWithOverrides(t *testing.T) {
	horizon := 3
	investment := 2000000.0
	conf := config.Configuration{
		Profile: "customer-service",
		Parameters: config.ParameterOverrides{
			TimeHorizon:       &horizon,
			InitialInvestment: &investment,
		},
	}

	result, err := GetForecast(zap.NewNop(), conf, catalog.New())
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if len(result.Projection.Ledger) != 4 {
		t.Errorf("expected 4 ledger rows, got %d", len(result.Projection.Ledger))
	}
	if rec := testutil.FindYear(result.Projection.Ledger, 0); rec == nil || rec.InvestmentCost != investment {
		t.Errorf("year 0 investment = %+v", rec)
	}
	if rec := testutil.FindYear(result.Projection.Ledger, 3); rec == nil || rec.MaintenanceCost != investment*0.25 {
		t.Errorf("year 3 maintenance = %+v", rec)
	}
	if result.Profile.Name != "Customer Service Automation" {
		t.Errorf("Profile = %s", result.Profile.Name)
	}
}

func TestGetForecastInvalidParameters(t *testing.T) {
	zero := 0
	conf := config.Configuration{
		Parameters: config.ParameterOverrides{TimeHorizon: &zero},
	}

	_, err := GetForecast(zap.NewNop(), conf, nil)
	if !errors.Is(err, roi.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestGetForecastUnknownProfile(t *testing.T) {
	conf := config.Configuration{Profile: "payroll"}

	_, err := GetForecast(nil, conf, nil)
	if !errors.Is(err, catalog.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestGetForecastLoadsCatalogFile(t *testing.T) {
	path := testutil.WriteFile(t, "catalog.yaml", `profiles:
  payroll:
    name: Payroll Reconciliation
    baseVolume: 24000
    baseValue: 3200
    processCost: 30
    revenueFactor: 0.2
    savingsFactor: 0.8
    defaultRevenueLift: 0.05
    defaultCostSavings: 0.4
    defaultInvestment: 200000
    defaultMaintenancePct: 0.15
    impactCategories:
      - label: Exception Handling
      - label: Accuracy
      - label: Audit Readiness
`)

	conf := config.Configuration{Profile: "payroll", CatalogFile: path}
	result, err := GetForecast(zap.NewNop(), conf, nil)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if result.Profile.Name != "Payroll Reconciliation" {
		t.Errorf("Profile = %s", result.Profile.Name)
	}

	conf.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := GetForecast(zap.NewNop(), conf, nil); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestComputeRejectsBadCategories(t *testing.T) {
	profile := roi.UseCaseProfile{Name: "No categories", RevenueFactor: 0.5, SavingsFactor: 0.5}
	params := roi.Parameters{DiscountRate: 0.08, TimeHorizon: 2}

	if _, err := Compute(zap.NewNop(), "none", profile, params); err == nil {
		t.Fatal("expected error for profile without impact categories")
	}
}
