package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/iwvelando/roi-forecast/internal/config"
	"github.com/iwvelando/roi-forecast/internal/forecast"
	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/iwvelando/roi-forecast/internal/server"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/format"
	"github.com/iwvelando/roi-forecast/pkg/output"
	"github.com/iwvelando/roi-forecast/pkg/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

type cliOptions struct {
	configLocation string
	logLevel       string
	outputFormat   string
	profile        string
	out            string
	serverConfig   string
	maxBodySize    string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "roi-forecast",
		Short:         "Project the return on investment of process automation initiatives",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.PersistentFlags().StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Run one projection and render it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, opts)
		},
	}
	projectCmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, pdf")
	projectCmd.Flags().StringVar(&opts.profile, "profile", "", "use case profile key override")
	projectCmd.Flags().StringVar(&opts.out, "out", "", "write the report to this file instead of stdout")

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available use case profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfiles(cmd, opts)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&opts.maxBodySize, "max-body-size", "", "request body limit override (e.g., 256K, 1M)")

	rootCmd.AddCommand(projectCmd, profilesCmd, serveCmd)
	return rootCmd
}

// loadConfiguration reads the configuration file. A missing file at the
// default location yields an empty configuration so the built-in defaults
// apply.
func loadConfiguration(cmd *cobra.Command, opts *cliOptions) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(opts.configLocation); errors.Is(err, fs.ErrNotExist) {
			return &config.Configuration{}, nil
		}
	}

	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
	}
	return conf, nil
}

func runProject(cmd *cobra.Command, opts *cliOptions) error {
	conf, err := loadConfiguration(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if opts.profile != "" {
		conf.Profile = opts.profile
	}

	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.project"),
		)
	}

	result, err := forecast.GetForecast(logger, *conf, nil)
	if err != nil {
		return fmt.Errorf("failed to compute projection: %w", err)
	}

	outPath := conf.Output.File
	if opts.out != "" {
		outPath = opts.out
	}
	if outPath == "" && validation.IsBinaryFormat(outputFormat) {
		outPath = report.FileName(result.Profile, outputFormat)
	}

	if outPath == "" {
		return output.Write(cmd.OutOrStdout(), outputFormat, result.Report)
	}

	if err := writeReportFile(outPath, outputFormat, result.Report); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("report written to %s", outPath),
		zap.String("op", "main.project"),
		zap.String("format", outputFormat),
	)
	return nil
}

func writeReportFile(path, outputFormat string, r *report.Report) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	return output.Write(file, outputFormat, r)
}

func runProfiles(cmd *cobra.Command, opts *cliOptions) error {
	conf, err := loadConfiguration(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cat, err := forecast.LoadCatalog(logger, *conf)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Key", "Name", "Investment", "Revenue Lift", "Cost Savings", "Maintenance"}}
	for _, entry := range cat.Entries() {
		p := entry.Profile
		data = append(data, []string{
			entry.Key,
			p.Name,
			format.WholeCurrency(p.DefaultInvestment),
			format.Percent(p.DefaultRevenueLift * constants.PercentageMultiplier),
			format.Percent(p.DefaultCostSavings * constants.PercentageMultiplier),
			format.Percent(p.DefaultMaintenancePct * constants.PercentageMultiplier),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render profiles: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
	return err
}

// loadServerConfig reads the server configuration and applies the serve
// command's flag overrides on top of it.
func loadServerConfig(opts *cliOptions) (*server.Config, error) {
	cfg, err := server.LoadConfig(opts.serverConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load server configuration at %s: %w", opts.serverConfig, err)
	}

	if opts.maxBodySize != "" {
		size, err := server.ParseSize(opts.maxBodySize)
		if err != nil {
			return nil, fmt.Errorf("invalid --max-body-size: %w", err)
		}
		if size <= 0 {
			return nil, fmt.Errorf("invalid --max-body-size: must be positive, got %s", opts.maxBodySize)
		}
		cfg.SetBodySizeBytes(size)
	}
	return cfg, nil
}

func runServe(opts *cliOptions) error {
	cfg, err := loadServerConfig(opts)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cat, err := forecast.LoadCatalog(logger, config.Configuration{CatalogFile: cfg.CatalogFile})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cat, cfg.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(fmt.Sprintf("listening on %s", cfg.Address),
		zap.String("op", "main.serve"),
		zap.Int64("maxBodySize", cfg.BodySizeBytes()),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
