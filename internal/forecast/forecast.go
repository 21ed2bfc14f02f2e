// Package forecast resolves a configuration into projection inputs, runs the
// projection engine and assembles the report for the renderers.
package forecast

import (
	"fmt"

	"github.com/iwvelando/roi-forecast/internal/catalog"
	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/iwvelando/roi-forecast/internal/roi"
	"go.uber.org/zap"
)

// Forecast holds all information related to a single projection run.
type Forecast struct {
	Key        string
	Profile    roi.UseCaseProfile
	Parameters roi.Parameters
	Projection *roi.Projection
	Report     *report.Report
}

// LoadCatalog returns the built-in catalog merged with the configured
// catalog file, if any.
func LoadCatalog(logger *zap.Logger, conf config.Configuration) (*catalog.Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := catalog.New()
	if conf.CatalogFile == "" {
		return cat, nil
	}
	if err := cat.LoadFile(conf.CatalogFile); err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("loaded catalog file %s", conf.CatalogFile),
		zap.String("op", "forecast.LoadCatalog"),
		zap.Int("profiles", len(cat.Keys())),
	)
	return cat, nil
}

// GetForecast resolves the configured profile and parameters against cat and
// computes the projection. A nil catalog is loaded from the configuration.
func GetForecast(logger *zap.Logger, conf config.Configuration, cat *catalog.Catalog) (*Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cat == nil {
		var err error
		cat, err = LoadCatalog(logger, conf)
		if err != nil {
			return nil, err
		}
	}

	profile, params, err := conf.Resolve(cat)
	if err != nil {
		return nil, err
	}
	return Compute(logger, conf.ProfileKey(), profile, params)
}

// Compute runs the projection for an already resolved profile and builds its
// report.
func Compute(logger *zap.Logger, key string, profile roi.UseCaseProfile, params roi.Parameters) (*Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	projection, err := roi.Project(profile, params)
	if err != nil {
		return nil, err
	}

	r, err := report.Build(profile, projection)
	if err != nil {
		return nil, fmt.Errorf("failed to build report for %s: %w", key, err)
	}

	logger.Debug("projection computed",
		zap.String("op", "forecast.Compute"),
		zap.String("profile", key),
		zap.Int("years", len(projection.Ledger)),
		zap.Float64("npv", projection.Metrics.NPV),
		zap.Bool("paybackAchieved", projection.Metrics.Payback.Achieved),
	)

	return &Forecast{
		Key:        key,
		Profile:    profile,
		Parameters: params,
		Projection: projection,
		Report:     r,
	}, nil
}
