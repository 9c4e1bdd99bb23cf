package settings

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/coolify-notifications/push-relay/builtin"
	"github.com/coolify-notifications/push-relay/pkg/services"
)

func (c *Config) normalize() error {
	c.Server.WebhookPath = strings.TrimSpace(c.Server.WebhookPath)
	c.Server.MetricsPath = strings.TrimSpace(c.Server.MetricsPath)
	c.Coolify.APIURL = strings.TrimRight(strings.TrimSpace(c.Coolify.APIURL), "/")
	c.Coolify.APIEndpoint = strings.Trim(strings.TrimSpace(c.Coolify.APIEndpoint), "/")
	c.NoActionPolicy = strings.ToLower(strings.TrimSpace(c.NoActionPolicy))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	tokens, invalid := services.ParseExpoTokens(c.Expo.Tokens...)
	for _, token := range invalid {
		log.Warnf("Ignoring invalid Expo push token '%s', expected format ExponentPushToken[...]", token)
	}
	c.Expo.Tokens = tokens

	for i, f := range c.Filters {
		if strings.TrimSpace(f.When) != "" {
			continue
		}
		predefined, ok := builtin.LookupFilter(f.Name)
		if !ok {
			return fmt.Errorf("filters[%d]: '%s' has no condition and is not a predefined filter", i, f.Name)
		}
		c.Filters[i] = predefined
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDelivery(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	if err := c.validateCoolify(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d is not a valid port", c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.WebhookPath, "/") {
		return fmt.Errorf("server.webhookPath: %q must start with '/'", c.Server.WebhookPath)
	}
	if c.Server.MetricsPath != "" {
		if !strings.HasPrefix(c.Server.MetricsPath, "/") {
			return fmt.Errorf("server.metricsPath: %q must start with '/'", c.Server.MetricsPath)
		}
		if c.Server.MetricsPath == c.Server.WebhookPath {
			return errors.New("server.metricsPath must differ from server.webhookPath")
		}
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("server.rateLimit and server.rateBurst must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.maxBodyBytes must be positive")
	}
	return nil
}

func (c *Config) validateDelivery() error {
	switch c.NoActionPolicy {
	case "suppress", "fallback":
	default:
		return fmt.Errorf("noActionPolicy: %q must be one of suppress, fallback", c.NoActionPolicy)
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeoutSeconds must be positive")
	}
	for i, m := range c.Mirrors {
		if strings.TrimSpace(m.URL) == "" {
			return fmt.Errorf("mirrors[%d]: url is required", i)
		}
	}
	return nil
}

// service types that cannot deliver without an explicit recipient
var recipientServices = map[string]bool{"slack": true, "telegram": true, "email": true, "opsgenie": true}

func (c *Config) validateServices() error {
	names := map[string]bool{}
	for i, s := range c.Services {
		if s.Name == "" || s.Type == "" {
			return fmt.Errorf("services[%d]: name and type are required", i)
		}
		if names[s.Name] {
			return fmt.Errorf("services[%d]: duplicate name '%s'", i, s.Name)
		}
		names[s.Name] = true
		if recipientServices[s.Type] && len(s.Recipients) == 0 {
			return fmt.Errorf("services[%d]: %s service '%s' needs at least one recipient", i, s.Type, s.Name)
		}
	}
	return nil
}

func (c *Config) validateLog() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: %q must be one of text, json", c.Log.Format)
	}
	return nil
}

func (c *Config) validateCoolify() error {
	if c.Coolify.APIURL == "" {
		return nil
	}
	if c.Coolify.APIToken == "" {
		return errors.New("coolify.apiToken is required when coolify.apiUrl is set")
	}
	if c.Coolify.PollSeconds <= 0 {
		return errors.New("coolify.pollSeconds must be positive")
	}
	return nil
}
