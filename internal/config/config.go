package config

import (
	"fmt"
	"ftm-analyzer/internal/config/shared"
	"ftm-analyzer/internal/models"
	"github.com/joho/godotenv"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultInputPath = "result/ftm_metrics.csv"
	DefaultOutputDir = "result"
)

type Config struct {
	Analysis AnalysisConfig `json:"analysis"`
	MQTT     MQTTConfig     `json:"mqtt"`
	Postgres PostgresConfig `json:"postgres"`
	InfluxDB InfluxConfig   `json:"influxdb"`
	Logger   LoggerConfig   `json:"logger"`
	Service  ServiceConfig  `json:"service"`
}

type AnalysisConfig struct {
	InputPath   string         `json:"input_path"`
	OutputDir   string         `json:"output_dir"`
	ProfilePath string         `json:"profile_path"`
	Profile     models.Profile `json:"profile"`
}

type MQTTConfig struct {
	Enabled        bool          `json:"enabled"`
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Username       string        `json:"username"`
	Password       string        `json:"password"`
	ClientID       string        `json:"client_id"`
	BaseTopic      string        `json:"base_topic"`
	QoS            byte          `json:"qos"`
	KeepAlive      int           `json:"keep_alive"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
}

type PostgresConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Dsn      string `json:"dsn"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
	TimeZone string `json:"timezone"`
}

type InfluxConfig struct {
	Enabled      bool          `json:"enabled"`
	URL          string        `json:"url"`
	Token        string        `json:"token"`
	Organization string        `json:"organization"`
	Bucket       string        `json:"bucket"`
	Timeout      time.Duration `json:"timeout"`
}

type LoggerConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type ServiceConfig struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	qos := shared.GetEnvAsInt("MQTT_QOS", 1)
	if qos < 0 || qos > 2 {
		return nil, shared.NewConfigError("MQTT", "QOS", qos, "must be 0, 1 or 2")
	}

	config := &Config{
		Analysis: AnalysisConfig{
			InputPath:   shared.GetEnv("FTM_INPUT_PATH", DefaultInputPath),
			OutputDir:   shared.GetEnv("FTM_OUTPUT_DIR", DefaultOutputDir),
			ProfilePath: shared.GetEnv("FTM_PROFILE_PATH", ""),
		},
		MQTT: MQTTConfig{
			Enabled:        shared.GetEnvAsBool("MQTT_ENABLED", false),
			Host:           shared.GetEnv("MQTT_HOST", "localhost"),
			Port:           shared.GetEnvAsInt("MQTT_PORT", 1883),
			Username:       shared.GetEnv("MQTT_USERNAME", ""),
			Password:       shared.GetEnv("MQTT_PASSWORD", ""),
			ClientID:       shared.GetEnv("MQTT_CLIENT_ID", "ftm-analyzer"),
			BaseTopic:      shared.GetEnv("MQTT_BASE_TOPIC", "ftm/analysis"),
			QoS:            byte(qos),
			KeepAlive:      shared.GetEnvAsInt("MQTT_KEEP_ALIVE", 60),
			ConnectTimeout: shared.GetEnvAsDuration("MQTT_CONNECT_TIMEOUT", 30*time.Second),
		},
		Postgres: PostgresConfig{
			Enabled:  shared.GetEnvAsBool("POSTGRES_ENABLED", false),
			Host:     shared.GetEnv("POSTGRES_HOST", "localhost"),
			Port:     shared.GetEnvAsInt("POSTGRES_PORT", 5432),
			User:     shared.GetEnv("POSTGRES_USER", "postgres"),
			Password: shared.GetEnv("POSTGRES_PASSWORD", ""),
			Database: shared.GetEnv("POSTGRES_DATABASE", "ftm_analysis"),
			SSLMode:  shared.GetEnv("POSTGRES_SSL_MODE", "disable"),
			TimeZone: shared.GetEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		InfluxDB: InfluxConfig{
			Enabled:      shared.GetEnvAsBool("INFLUXDB_ENABLED", false),
			URL:          shared.GetEnv("INFLUXDB_URL", "http://localhost:8086"),
			Token:        shared.GetEnv("INFLUXDB_TOKEN", ""),
			Organization: shared.GetEnv("INFLUXDB_ORG", "ftm"),
			Bucket:       shared.GetEnv("INFLUXDB_BUCKET", "ftm_metrics"),
			Timeout:      shared.GetEnvAsDuration("INFLUXDB_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:  shared.GetEnv("LOG_LEVEL", "info"),
			Format: shared.GetEnv("LOG_FORMAT", "console"),
		},
		Service: ServiceConfig{
			Name:    shared.GetEnv("SERVICE_NAME", "ftm-analyzer"),
			Version: shared.GetEnv("SERVICE_VERSION", "1.0.0"),
		},
	}

	baseTopic, found := strings.CutSuffix(config.MQTT.BaseTopic, "/")
	if found {
		config.MQTT.BaseTopic = baseTopic
	}

	config.Postgres.Dsn = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		config.Postgres.Host, config.Postgres.Port, config.Postgres.User, config.Postgres.Password, config.Postgres.Database,
		func() string {
			if config.Postgres.SSLMode == "false" || config.Postgres.SSLMode == "" {
				return "disable"
			}
			return config.Postgres.SSLMode
		}(),
		config.Postgres.TimeZone,
	)

	profile := models.DefaultProfile()
	if config.Analysis.ProfilePath != "" {
		loaded, err := LoadProfile(config.Analysis.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load analysis profile: %w", err)
		}
		profile = loaded
	}
	config.Analysis.Profile = profile

	return config, config.validate()
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Analysis.InputPath) == "" {
		return shared.NewConfigError("FTM", "INPUT_PATH", nil, "has to be set")
	}
	if strings.TrimSpace(c.Analysis.OutputDir) == "" {
		return shared.NewConfigError("FTM", "OUTPUT_DIR", nil, "has to be set")
	}
	c.Analysis.OutputDir = filepath.Clean(c.Analysis.OutputDir)

	if c.MQTT.Enabled {
		if c.MQTT.Host == "" {
			return shared.NewConfigError("MQTT", "HOST", nil, "has to be set when MQTT export is enabled")
		}
		if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
			return shared.NewConfigError("MQTT", "PORT", c.MQTT.Port, "must be a valid port")
		}
	}
	if c.Postgres.Enabled && c.Postgres.Host == "" {
		return shared.NewConfigError("POSTGRES", "HOST", nil, "has to be set when PostgreSQL export is enabled")
	}
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			return shared.NewConfigError("INFLUXDB", "URL", nil, "has to be set when InfluxDB export is enabled")
		}
		if c.InfluxDB.Token == "" {
			return shared.NewConfigError("INFLUXDB", "TOKEN", nil, "has to be set when InfluxDB export is enabled")
		}
	}

	return ValidateProfile(c.Analysis.Profile)
}
