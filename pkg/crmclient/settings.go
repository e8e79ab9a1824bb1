package crmclient

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/internal/logging"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Settings is the file and environment representation of a client
// configuration. TokenExpiresAt holds the RFC 3339 expiry of AccessKey when
// a Session saved it.
type Settings struct {
	BaseURL        string            `mapstructure:"base_url"         yaml:"base_url"`
	APIKey         string            `mapstructure:"api_key"          yaml:"api_key,omitempty"`
	AccessKey      string            `mapstructure:"access_key"       yaml:"access_key,omitempty"`
	RefreshToken   string            `mapstructure:"refresh_token"    yaml:"refresh_token,omitempty"`
	TokenExpiresAt string            `mapstructure:"token_expires_at" yaml:"token_expires_at,omitempty"`
	RequestMaker   string            `mapstructure:"request_maker"    yaml:"request_maker,omitempty"`
	Parser         string            `mapstructure:"parser"           yaml:"parser,omitempty"`
	Headers        map[string]string `mapstructure:"headers"          yaml:"headers,omitempty"`
	Timeout        time.Duration     `mapstructure:"timeout"          yaml:"timeout,omitempty"`
	RetryMax       int               `mapstructure:"retry_max"        yaml:"retry_max,omitempty"`
	RetryWaitMin   time.Duration     `mapstructure:"retry_wait_min"   yaml:"retry_wait_min,omitempty"`
	RetryWaitMax   time.Duration     `mapstructure:"retry_wait_max"   yaml:"retry_wait_max,omitempty"`
	RateLimit      float64           `mapstructure:"rate_limit"       yaml:"rate_limit,omitempty"`
	RateBurst      int               `mapstructure:"rate_burst"       yaml:"rate_burst,omitempty"`
	UserAgent      string            `mapstructure:"user_agent"       yaml:"user_agent,omitempty"`
	RequestID      bool              `mapstructure:"request_id"       yaml:"request_id,omitempty"`
	Debug          bool              `mapstructure:"debug"            yaml:"debug,omitempty"`
	LogBackend     string            `mapstructure:"log_backend"      yaml:"log_backend,omitempty"`
	LogLevel       string            `mapstructure:"log_level"        yaml:"log_level,omitempty"`
}

// DefaultSettings returns the settings used for keys that are not set.
func DefaultSettings() *Settings {
	return &Settings{
		RequestMaker: DefaultRequestMaker,
		Parser:       DefaultParser,
		Timeout:      constants.DefaultHTTPTimeout,
		RetryMax:     constants.DefaultRetryMax,
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
		RateBurst:    constants.DefaultRateBurst,
		UserAgent:    constants.DefaultUserAgent,
		LogBackend:   constants.DefaultLogBackend,
		LogLevel:     constants.DefaultLogLevel,
	}
}

// LoadSettings reads settings from the YAML file at path, when path is not
// empty, and from CRM_* environment variables, which take precedence.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("base_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("access_key", "")
	v.SetDefault("refresh_token", "")
	v.SetDefault("token_expires_at", "")
	v.SetDefault("request_maker", defaults.RequestMaker)
	v.SetDefault("parser", defaults.Parser)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("retry_max", defaults.RetryMax)
	v.SetDefault("retry_wait_min", defaults.RetryWaitMin)
	v.SetDefault("retry_wait_max", defaults.RetryWaitMax)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_burst", defaults.RateBurst)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("request_id", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_backend", defaults.LogBackend)
	v.SetDefault("log_level", defaults.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
	}

	// Read in environment variables that match
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var settings Settings

	err := v.Unmarshal(&settings)
	if err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	return &settings, nil
}

// Save writes the settings as YAML to path, creating its directory.
func (s *Settings) Save(path string) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// NewBuilderFromSettings returns a builder with every non-empty setting
// applied. The caller may keep configuring it before calling Build.
func NewBuilderFromSettings(settings *Settings) (*Builder, error) {
	if settings == nil {
		return nil, crm.NewBuildError("settings are required")
	}

	builder := NewBuilder()

	err := applyConnectionSettings(builder, settings)
	if err != nil {
		return nil, err
	}

	err = applyTransportSettings(builder, settings)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Backend: settings.LogBackend,
		Level:   settings.LogLevel,
	})
	if err != nil {
		return nil, crm.NewRequestError(crm.KindBuild, "configuring logger", crm.RequestDetails{}, err)
	}

	builder.
		WithUserAgent(settings.UserAgent).
		WithRequestID(settings.RequestID).
		WithDebug(settings.Debug).
		WithLogger(logger)

	return builder, nil
}

func applyConnectionSettings(builder *Builder, settings *Settings) error {
	var err error

	if settings.BaseURL != "" {
		_, err = builder.WithBaseURL(settings.BaseURL)
		if err != nil {
			return err
		}
	}

	if settings.APIKey != "" {
		_, err = builder.WithAPIKey(settings.APIKey)
		if err != nil {
			return err
		}
	}

	// An access key overrides an API key.
	if settings.AccessKey != "" {
		_, err = builder.WithAccessKey(settings.AccessKey)
		if err != nil {
			return err
		}
	}

	if len(settings.Headers) > 0 {
		_, err = builder.WithHeaders(settings.Headers)
		if err != nil {
			return err
		}
	}

	return nil
}

func applyTransportSettings(builder *Builder, settings *Settings) error {
	requestMaker := settings.RequestMaker
	if requestMaker == "" {
		requestMaker = DefaultRequestMaker
	}

	_, err := builder.WithRequestMaker(requestMaker)
	if err != nil {
		return err
	}

	parser := settings.Parser
	if parser == "" {
		parser = DefaultParser
	}

	_, err = builder.WithParser(parser)
	if err != nil {
		return err
	}

	if settings.Timeout > 0 {
		_, err = builder.WithTimeout(settings.Timeout)
		if err != nil {
			return err
		}
	}

	if settings.RetryMax > 0 {
		_, err = builder.WithRetryConfig(settings.RetryMax, settings.RetryWaitMin, settings.RetryWaitMax)
		if err != nil {
			return err
		}
	}

	if settings.RateLimit > 0 {
		burst := settings.RateBurst
		if burst <= 0 {
			burst = constants.DefaultRateBurst
		}

		_, err = builder.WithRateLimit(settings.RateLimit, burst)
		if err != nil {
			return err
		}
	}

	return nil
}
