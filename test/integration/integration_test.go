package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/forecast"
	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/iwvelando/roi-forecast/internal/server"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
	"github.com/iwvelando/roi-forecast/pkg/output"
	"go.uber.org/zap"
)

const testConfigPath = "../test_config.yaml"

func loadReference(t *testing.T) *forecast.Forecast {
	t.Helper()

	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	result, err := forecast.GetForecast(zap.NewNop(), *conf, nil)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}
	return result
}

// TestMainIntegrationBaseline runs the reference configuration end to end and
// checks the published figures.
func TestMainIntegrationBaseline(t *testing.T) {
	result := loadReference(t)

	ledger := result.Projection.Ledger
	if len(ledger) != 6 {
		t.Fatalf("expected 6 ledger rows, got %d", len(ledger))
	}

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"year 0 net cash flow", ledger[0].NetCashFlow, 1749531.25},
		{"year 5 cumulative", ledger[5].CumulativeCashFlow, 75439071.875},
		{"total benefits", result.Projection.Metrics.TotalBenefits, 76439071.875},
		{"total costs", result.Projection.Metrics.TotalCosts, 1000000},
		{"roi", result.Projection.Metrics.ROI, 7543.9071875},
		{"npv", result.Projection.Metrics.NPV, 59749522.5967},
	}
	for _, c := range checks {
		if !mathutil.WithinTolerance(c.got, c.expected, 1e-3) {
			t.Errorf("%s = %.4f, expected %.4f", c.name, c.got, c.expected)
		}
	}

	if !result.Projection.Metrics.Payback.Achieved || result.Projection.Metrics.Payback.Years != 0 {
		t.Errorf("unexpected payback %+v", result.Projection.Metrics.Payback)
	}

	cards := result.Report.Cards
	if cards[0].Delta != "Positive Return" || cards[3].Delta != "Over 5 Years" {
		t.Errorf("unexpected card deltas %q, %q", cards[0].Delta, cards[3].Delta)
	}
}

func TestCSVOutputFormat(t *testing.T) {
	result := loadReference(t)

	var buf bytes.Buffer
	if err := output.Write(&buf, constants.OutputFormatCSV, result.Report); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}

	// Cumulative cash flow in the CSV must equal the running sum of net cash flow.
	var running float64
	for i, row := range records[1:] {
		net, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		cumulative, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		running += net
		if !mathutil.WithinTolerance(running, cumulative, 1e-6) {
			t.Errorf("row %d cumulative = %.4f, running sum %.4f", i, cumulative, running)
		}
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	result := loadReference(t)

	var buf bytes.Buffer
	if err := output.Write(&buf, constants.OutputFormatPretty, result.Report); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Net Cash Flow") {
		t.Errorf("pretty output is missing the summary table")
	}
}

func TestCatalogFileProfile(t *testing.T) {
	conf := config.Configuration{Profile: "payroll", CatalogFile: "../test_catalog.toml"}

	result, err := forecast.GetForecast(zap.NewNop(), conf, nil)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}
	if result.Profile.Name != "Payroll Reconciliation" {
		t.Errorf("Profile = %s", result.Profile.Name)
	}
	if report.FileName(result.Profile, "pdf") != "Payroll_Reconciliation_analysis.pdf" {
		t.Errorf("unexpected file name %s", report.FileName(result.Profile, "pdf"))
	}
	if len(result.Report.Impact) != 3 {
		t.Errorf("expected 3 impact series, got %d", len(result.Report.Impact))
	}
}

// TestServerMatchesCLI checks that the HTTP API returns the same ledger as the
// library path for the same inputs.
func TestServerMatchesCLI(t *testing.T) {
	expected := loadReference(t)

	srv := httptest.NewServer(server.NewHandler(zap.NewNop(), catalog.New(), constants.DefaultMaxBodySizeBytes, "test"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/projection", "application/json", strings.NewReader(`{"profile":"order-management"}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Ledger []struct {
			Year               int     `json:"year"`
			NetCashFlow        float64 `json:"netCashFlow"`
			CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
		} `json:"ledger"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Ledger) != len(expected.Projection.Ledger) {
		t.Fatalf("expected %d rows, got %d", len(expected.Projection.Ledger), len(body.Ledger))
	}
	for i, row := range body.Ledger {
		want := expected.Projection.Ledger[i]
		if row.Year != want.Year || row.NetCashFlow != want.NetCashFlow || row.CumulativeCashFlow != want.CumulativeCashFlow {
			t.Errorf("row %d = %+v, expected %+v", i, row, want)
		}
	}
}

// TestConcurrentProjections runs the same projection from many goroutines and
// requires identical results.
func TestConcurrentProjections(t *testing.T) {
	expected := loadReference(t)
	cat := catalog.New()
	conf := config.Configuration{Profile: "order-management"}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := forecast.GetForecast(zap.NewNop(), conf, cat)
			if err != nil {
				errs <- err.Error()
				return
			}
			if result.Projection.Metrics != expected.Projection.Metrics {
				errs <- "metrics differ between runs"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func BenchmarkGetForecast(b *testing.B) {
	cat := catalog.New()
	horizon := 30
	conf := config.Configuration{Parameters: config.ParameterOverrides{TimeHorizon: &horizon}}
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := forecast.GetForecast(logger, conf, cat); err != nil {
			b.Fatal(err)
		}
	}
}
