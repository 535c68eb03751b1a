package influx

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/config"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/rs/zerolog"
)

type InfluxDB struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	config   *config.InfluxConfig
	logger   zerolog.Logger
}

func NewConnection(cfg *config.InfluxConfig, logger zerolog.Logger) (*InfluxDB, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to InfluxDB: %w", err)
	}

	if health.Status != "pass" {
		client.Close()
		return nil, fmt.Errorf("InfluxDB health check failed: %s", health.Status)
	}

	logger.Info().
		Str("url", cfg.URL).
		Str("organization", cfg.Organization).
		Str("bucket", cfg.Bucket).
		Msg("Successfully connected to InfluxDB")

	return &InfluxDB{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Organization, cfg.Bucket),
		config:   cfg,
		logger:   logger,
	}, nil
}

func (i *InfluxDB) GetWriteAPI() api.WriteAPIBlocking {
	return i.writeAPI
}

func (i *InfluxDB) Close() {
	i.client.Close()
	i.logger.Info().Msg("InfluxDB connection closed")
}
