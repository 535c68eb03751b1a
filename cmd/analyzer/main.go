package main

import (
	"context"
	"errors"
	"fmt"
	"ftm-analyzer/internal/config"
	"ftm-analyzer/internal/database/influx"
	"ftm-analyzer/internal/database/postgres"
	"ftm-analyzer/internal/database/postgres/repositories"
	"ftm-analyzer/internal/dataset"
	"ftm-analyzer/internal/interfaces"
	"ftm-analyzer/internal/logger"
	"ftm-analyzer/internal/mq"
	"ftm-analyzer/internal/report"
	"ftm-analyzer/internal/services"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const exportTimeout = 30 * time.Second

type Application struct {
	config *config.Config

	postgresDB *postgres.PostgresDB
	influxDB   *influx.InfluxDB
	mqttClient *mq.Client

	runRepository *repositories.RunRepository
	exporters     []interfaces.IExporter

	analysisService *services.AnalysisService
	exportService   *services.ExportService
	historyService  *services.HistoryService

	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	app := &Application{}

	if err := app.initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	err := app.run()
	app.shutdown()

	if err != nil {
		os.Exit(1)
	}
}

func (app *Application) initialize() error {
	var err error

	app.config, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.NewLogger(app.config.Logger)
	log.Info().
		Str("component", "main").
		Str("version", app.config.Service.Version).
		Str("input", app.config.Analysis.InputPath).
		Str("output", app.config.Analysis.OutputDir).
		Msg("Setting up analyzer...")

	app.ctx, app.cancelFunc = signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app.initializeSinks()
	app.initializeServices()

	log.Info().
		Str("component", "main").
		Int("sinks", len(app.exporters)).
		Msg("Successfully initialized application")
	return nil
}

// initializeSinks connects every enabled export sink. A sink that cannot be
// reached is skipped; the analysis itself never depends on one.
func (app *Application) initializeSinks() {
	if app.config.Postgres.Enabled {
		if err := app.initializePostgres(); err != nil {
			log.Warn().Err(err).Str("component", "main").Msg("PostgreSQL export disabled")
		}
	}

	if app.config.InfluxDB.Enabled {
		if err := app.initializeInflux(); err != nil {
			log.Warn().Err(err).Str("component", "main").Msg("InfluxDB export disabled")
		}
	}

	if app.config.MQTT.Enabled {
		if err := app.initializeMQTT(); err != nil {
			log.Warn().Err(err).Str("component", "main").Msg("MQTT export disabled")
		}
	}
}

func (app *Application) initializePostgres() error {
	var err error

	app.postgresDB, err = postgres.NewConnection(app.config.Postgres, logger.GetLogger("postgres"))
	if err != nil {
		return fmt.Errorf("could not connect to PostgreSQL: %w", err)
	}

	app.runRepository = repositories.NewRunRepository(app.postgresDB.GetDB())
	app.exporters = append(app.exporters, app.runRepository)
	return nil
}

func (app *Application) initializeInflux() error {
	var err error

	app.influxDB, err = influx.NewConnection(&app.config.InfluxDB, logger.GetLogger("influxdb"))
	if err != nil {
		return fmt.Errorf("could not connect to InfluxDB: %w", err)
	}

	writer := influx.NewMetricsWriter(app.influxDB.GetWriteAPI(), logger.GetLogger("metrics-writer"))
	app.exporters = append(app.exporters, writer)
	return nil
}

func (app *Application) initializeMQTT() error {
	topicManager := mq.NewTopicManager(app.config.MQTT.BaseTopic)
	client := mq.NewClient(app.config.MQTT, logger.GetLogger("mq-client"))

	connectCtx, cancel := context.WithTimeout(app.ctx, app.config.MQTT.ConnectTimeout)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		return fmt.Errorf("could not connect to MQTT broker: %w", err)
	}
	app.mqttClient = client

	publisher := mq.NewAdvisoryPublisher(client, topicManager, logger.GetLogger("advisory-publisher"))
	app.exporters = append(app.exporters, publisher)
	return nil
}

func (app *Application) initializeServices() {
	renderer := report.NewFileRenderer(app.config.Analysis.OutputDir, logger.GetLogger("renderer"))

	app.analysisService = services.NewAnalysisService(
		app.config.Analysis.InputPath,
		app.config.Analysis.Profile,
		renderer,
		os.Stdout,
		logger.GetLogger("analysis-service"),
	)

	app.exportService = services.NewExportService(
		exportTimeout,
		logger.GetLogger("export-service"),
		app.exporters...,
	)

	if app.runRepository != nil {
		app.historyService = services.NewHistoryService(app.runRepository, logger.GetLogger("history-service"))
	}
}

func (app *Application) run() error {
	run, err := app.analysisService.Run(app.ctx)
	if err != nil {
		var missing *dataset.MissingInputError
		var writeErr *report.OutputWriteError
		switch {
		case errors.As(err, &missing):
			fmt.Fprintf(os.Stdout, "Error: %v\n", missing)
		case errors.As(err, &writeErr):
			log.Error().Err(writeErr.Err).Str("path", writeErr.Path).Msg("Failed to write output")
		default:
			log.Error().Err(err).Msg("Analysis failed")
		}
		return err
	}

	if failures := app.exportService.Export(app.ctx, run); len(failures) > 0 {
		log.Warn().
			Int("failed", len(failures)).
			Int("sinks", app.exportService.Len()).
			Msg("Some exports failed")
	}

	if app.historyService != nil {
		historyCtx, cancel := context.WithTimeout(app.ctx, exportTimeout)
		app.historyService.Report(historyCtx, run)
		cancel()
	}

	fmt.Fprintf(os.Stdout, "\nGenerated files in '%s/' folder:\n", app.config.Analysis.OutputDir)
	fmt.Fprintf(os.Stdout, "  ✓ %s - Main performance visualization\n", report.FigureFile)
	fmt.Fprintf(os.Stdout, "  ✓ %s - AI decision timeline\n", report.TimelineFile)
	fmt.Fprintf(os.Stdout, "  ✓ %s - Text summary report\n", report.ReportFile)

	return nil
}

func (app *Application) shutdown() {
	if app.mqttClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		app.mqttClient.Disconnect(ctx)
		cancel()
	}

	if app.influxDB != nil {
		app.influxDB.Close()
	}

	if app.postgresDB != nil {
		if err := app.postgresDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing PostgreSQL connection")
		}
	}

	if app.cancelFunc != nil {
		app.cancelFunc()
	}
}
