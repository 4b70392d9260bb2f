package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/compme/internal/logging"
	"github.com/spf13/viper"
)

// Settings is the application configuration read from compme.yaml and the
// COMPME_* environment.
type Settings struct {
	Log         logging.Config      `mapstructure:"log"`
	Data        DataSettings        `mapstructure:"data"`
	Server      ServerSettings      `mapstructure:"server"`
	ScenarioLog ScenarioLogSettings `mapstructure:"scenario_log"`
	Offer       OfferSettings       `mapstructure:"offer"`
}

// DataSettings overrides the embedded datasets. Empty paths use the embedded copy.
type DataSettings struct {
	TaxTables string `mapstructure:"tax_tables"`
	BasePay   string `mapstructure:"base_pay"`
	BAH       string `mapstructure:"bah"`
}

// ServerSettings configures the HTTP API
type ServerSettings struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ScenarioLogSettings selects where compared scenarios are recorded
type ScenarioLogSettings struct {
	Driver  string        `mapstructure:"driver"` // none, postgres, sqlite
	DSN     string        `mapstructure:"dsn"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OfferSettings configures LLM offer-letter extraction
type OfferSettings struct {
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}

// DefaultOfferModel is the Gemini model used when none is configured
const DefaultOfferModel = "gemini-2.0-flash"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("data.tax_tables", "")
	v.SetDefault("data.base_pay", "")
	v.SetDefault("data.bah", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("scenario_log.driver", "none")
	v.SetDefault("scenario_log.dsn", "")
	v.SetDefault("scenario_log.timeout", "5s")
	v.SetDefault("offer.model", DefaultOfferModel)
	v.SetDefault("offer.api_key", "")
}

// LoadSettings reads settings. envFile is loaded first into the process
// environment (a missing file is fine); configFile, when empty, is looked up
// as compme.yaml in the working directory and is optional.
func LoadSettings(configFile, envFile string) (*Settings, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("COMPME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("compme")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read compme.yaml: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	// Conventional variable names for secrets
	if s.Offer.APIKey == "" {
		s.Offer.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if s.ScenarioLog.DSN == "" {
		s.ScenarioLog.DSN = os.Getenv("DATABASE_URL")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated settings
func (s *Settings) Validate() error {
	switch s.ScenarioLog.Driver {
	case "", "none":
	case "postgres", "sqlite":
		if s.ScenarioLog.DSN == "" {
			return &ValidationError{Field: "scenario_log.dsn", Message: fmt.Sprintf("is required for driver %s", s.ScenarioLog.Driver)}
		}
	default:
		return &ValidationError{Field: "scenario_log.driver", Message: fmt.Sprintf("unknown driver %q", s.ScenarioLog.Driver)}
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return &ValidationError{Field: "log.level", Message: err.Error()}
	}
	if s.ScenarioLog.Timeout < 0 {
		return &ValidationError{Field: "scenario_log.timeout", Message: "cannot be negative"}
	}
	return nil
}
