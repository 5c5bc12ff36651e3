package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
)

const (
	TraceExporterNone      = "none"
	TraceExporterConsole   = "console"
	TraceExporterHoneycomb = "honeycomb"
	TraceExporterJaeger    = "jaeger"

	PersonStoreDynamo = "dynamo"
	PersonStoreMemory = "memory"
)

// Settings is the process configuration, read from the environment.
type Settings struct {
	PersonsTableName string        `mapstructure:"DYNAMODB_PERSONS_TABLE_NAME"`
	DynamoEndpoint   string        `mapstructure:"DYNAMODB_ENDPOINT"`
	TenureApiURL     string        `mapstructure:"TENURE_API_URL"`
	TenureApiToken   string        `mapstructure:"TENURE_API_TOKEN"`
	AccountApiURL    string        `mapstructure:"ACCOUNT_API_URL"`
	AccountApiToken  string        `mapstructure:"ACCOUNT_API_TOKEN"`
	ApiTimeout       time.Duration `mapstructure:"API_TIMEOUT"`
	ApiRetryAttempts uint          `mapstructure:"API_RETRY_ATTEMPTS"`
	FanOutLimit      int           `mapstructure:"FAN_OUT_LIMIT"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	TraceExporter    string        `mapstructure:"TRACE_EXPORTER"`
	HoneycombTeam    string        `mapstructure:"HONEYCOMB_TEAM"`
	HoneycombDataset string        `mapstructure:"HONEYCOMB_DATASET"`
	HTTPAddress      string        `mapstructure:"HTTP_ADDRESS"`
	PersonStore      string        `mapstructure:"PERSON_STORE"`
}

var defaults = map[string]any{
	"DYNAMODB_PERSONS_TABLE_NAME": "",
	"DYNAMODB_ENDPOINT":           "",
	"TENURE_API_URL":              "",
	"TENURE_API_TOKEN":            "",
	"ACCOUNT_API_URL":             "",
	"ACCOUNT_API_TOKEN":           "",
	"API_TIMEOUT":                 "10s",
	"API_RETRY_ATTEMPTS":          1,
	"FAN_OUT_LIMIT":               8,
	"LOG_LEVEL":                   "info",
	"TRACE_EXPORTER":              TraceExporterNone,
	"HONEYCOMB_TEAM":              "",
	"HONEYCOMB_DATASET":           "",
	"HTTP_ADDRESS":                ":9080",
	"PERSON_STORE":                PersonStoreDynamo,
}

// LoadSettings reads Settings from environment variables, applying defaults for anything unset.
func LoadSettings() (Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return Settings{}, err
		}
	}
	v.AutomaticEnv()

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, err
	}

	settings.TraceExporter = strings.ToLower(strings.TrimSpace(settings.TraceExporter))
	settings.PersonStore = strings.ToLower(strings.TrimSpace(settings.PersonStore))

	return settings, settings.validate()
}

func (s Settings) validate() error {
	switch s.TraceExporter {
	case TraceExporterNone, TraceExporterConsole, TraceExporterJaeger:
	case TraceExporterHoneycomb:
		if s.HoneycombTeam == "" {
			return fmt.Errorf("HONEYCOMB_TEAM is required for the honeycomb exporter")
		}
	default:
		return fmt.Errorf("unknown TRACE_EXPORTER %q", s.TraceExporter)
	}

	switch s.PersonStore {
	case PersonStoreDynamo, PersonStoreMemory:
	default:
		return fmt.Errorf("unknown PERSON_STORE %q", s.PersonStore)
	}

	if s.FanOutLimit < 1 {
		return fmt.Errorf("FAN_OUT_LIMIT must be positive, got %d", s.FanOutLimit)
	}

	return nil
}

func AWSConfig(ctx context.Context) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx)
}
