package settings

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/ghodss/yaml"

	"github.com/coolify-notifications/push-relay/assets"
	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/templates"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
)

type Server struct {
	Port         int     `json:"port"`
	WebhookPath  string  `json:"webhookPath"`
	Secret       string  `json:"secret,omitempty"`
	MetricsPath  string  `json:"metricsPath"`
	RateLimit    float64 `json:"rateLimit,omitempty"`
	RateBurst    int     `json:"rateBurst,omitempty"`
	MaxBodyBytes int64   `json:"maxBodyBytes"`
}

// Service is an additional notification channel receiving the translated notification.
type Service struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Recipients []string        `json:"recipients"`
	Options    json.RawMessage `json:"options,omitempty"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Updates struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url"`
	Schedule string `json:"schedule"`
}

type Coolify struct {
	APIURL      string `json:"apiUrl,omitempty"`
	APIToken    string `json:"apiToken,omitempty"`
	APIEndpoint string `json:"apiEndpoint"`
	PollSeconds int    `json:"pollSeconds"`
}

// Config is loaded once at startup and never modified afterwards.
type Config struct {
	Server         Server                                    `json:"server"`
	Expo           services.ExpoOptions                      `json:"expo"`
	Mirrors        []services.WebhookOptions                 `json:"mirrors,omitempty"`
	Services       []Service                                 `json:"services,omitempty"`
	Templates      map[string]templates.NotificationTemplate `json:"templates,omitempty"`
	Filters        []triggers.Filter                         `json:"filters,omitempty"`
	NoActionPolicy string                                    `json:"noActionPolicy"`
	TimeoutSeconds int                                       `json:"timeoutSeconds"`
	TLSCertsDir    string                                    `json:"tlsCertsDir,omitempty"`
	Log            Log                                       `json:"log"`
	Updates        Updates                                   `json:"updates"`
	Coolify        Coolify                                   `json:"coolify"`
}

// Timeout bounds every outbound call.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Coolify.PollSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(assets.DefaultConfig), &cfg); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Parse applies the YAML document on top of the built-in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// Load reads the optional configuration file, applies environment overrides, then normalizes and validates the result.
func Load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	data := []byte("{}")
	if path != "" {
		var err error
		if data, err = ioutil.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
		}
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
