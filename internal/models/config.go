package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	BackendURL     string        `mapstructure:"backend_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DataFile       string        `mapstructure:"data_file"`
	LogLevel       string        `mapstructure:"log_level"`
	DemoMode       bool          `mapstructure:"demo_mode"`
	DemoSeed       int64         `mapstructure:"demo_seed"`

	// Tracking event sink selection: "console", "json", "kafka", "postgres",
	// "parquet". Parquet goes to S3 when a bucket is configured.
	OutputType      string `mapstructure:"output_type"`
	OutputFolder    string `mapstructure:"output_folder"`
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	AWSRegion       string `mapstructure:"aws_region"`

	Database DatabaseConfig `mapstructure:"database"`

	// Delivery simulation knobs. Distances are in coordinate degrees, matching
	// the map surface the positions are drawn on.
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	CourierStep      float64       `mapstructure:"courier_step"`
	ArrivalThreshold float64       `mapstructure:"arrival_threshold"`
	CourierOffsetLat float64       `mapstructure:"courier_offset_lat"`
	CourierOffsetLng float64       `mapstructure:"courier_offset_lng"`
	DefaultCity      string        `mapstructure:"default_city"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("backend_url", "http://localhost:5000/api")
	viper.SetDefault("request_timeout", "10s")
	viper.SetDefault("data_file", "medireach.json")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("demo_seed", 42)
	viper.SetDefault("output_type", "console")
	viper.SetDefault("tick_interval", "3s")
	viper.SetDefault("courier_step", 0.004)
	viper.SetDefault("arrival_threshold", 0.0005)
	viper.SetDefault("courier_offset_lat", 0.02)
	viper.SetDefault("courier_offset_lng", -0.02)
	viper.SetDefault("default_city", "douala")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env cover the common case.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
