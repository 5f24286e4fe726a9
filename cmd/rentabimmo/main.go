package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rudyyyy/rentabimmo-engine/internal/config"
	"github.com/Rudyyyy/rentabimmo-engine/internal/projection"
	"github.com/Rudyyyy/rentabimmo-engine/internal/sci"
	"github.com/Rudyyyy/rentabimmo-engine/internal/search"
	"github.com/Rudyyyy/rentabimmo-engine/internal/tax"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/output"
	"github.com/Rudyyyy/rentabimmo-engine/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.ParseDates(); err != nil {
		logger.Fatal("failed to parse configured dates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	warnings, err := conf.Validate()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := conf.ProcessLoans(logger); err != nil {
		logger.Fatal("failed to build amortization schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var reports []output.PropertyReport
	for i := range conf.Properties {
		p := &conf.Properties[i]
		report := output.PropertyReport{
			Name:      p.Name,
			Snapshots: make(map[tax.Regime][]projection.YearSnapshot, len(tax.AllRegimes)),
		}
		for _, regime := range tax.AllRegimes {
			snapshots, err := projection.Run(logger, p, regime)
			if err != nil {
				logger.Fatal("projection failed",
					zap.String("op", "main"),
					zap.String("property", p.Name),
					zap.String("regime", regime.String()),
					zap.Error(err),
				)
			}
			report.Snapshots[regime] = snapshots
		}
		reports = append(reports, report)
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvFormat(reports)
	default:
		output.PrettyFormat(reports)
	}

	for i := range conf.SCIs {
		vehicle := &conf.SCIs[i]
		members, err := conf.MembersOf(vehicle)
		if err != nil {
			logger.Fatal("failed to resolve SCI members",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		results, err := sci.ResultsAcrossYears(logger, vehicle, members)
		if err != nil {
			logger.Fatal("SCI consolidation failed",
				zap.String("op", "main"),
				zap.String("sci", vehicle.Name),
				zap.Error(err),
			)
		}
		output.PrettyFormatSCI(vehicle.Name, results)
	}

	if conf.Target != nil && conf.Target.SCI != "" {
		vehicle, err := conf.SCIByName(conf.Target.SCI)
		if err != nil {
			logger.Fatal("failed to resolve target SCI",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		members, err := conf.MembersOf(vehicle)
		if err != nil {
			logger.Fatal("failed to resolve SCI members",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		outcome, err := search.FindEarliestYearSCI(logger, vehicle, members,
			search.TargetKind(conf.Target.Kind), conf.Target.Value, nil)
		if err != nil {
			logger.Fatal("goal search failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		output.PrettySCISearchOutcome(outcome)
	} else if conf.Target != nil {
		p, err := conf.PropertyByName(conf.Target.Property)
		if err != nil {
			logger.Fatal("failed to resolve target property",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		candidates := tax.AllRegimes
		if conf.Target.Candidate != "" {
			regime, ok := tax.ParseRegime(conf.Target.Candidate)
			if !ok {
				logger.Fatal("unknown candidate regime",
					zap.String("op", "main"),
					zap.String("candidate", conf.Target.Candidate),
				)
			}
			candidates = []tax.Regime{regime}
		}
		outcome, err := search.FindEarliestYear(logger, p,
			search.TargetKind(conf.Target.Kind), conf.Target.Value, candidates)
		if err != nil {
			logger.Fatal("goal search failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		output.PrettySearchOutcome(outcome)
	}
}
