package pkg

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/templates"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
	"github.com/coolify-notifications/push-relay/relay"
	"github.com/coolify-notifications/push-relay/shared/settings"
)

// ParseConfig assembles the delivery components described by the settings.
func ParseConfig(cfg *settings.Config, lookupEnv func(string) (string, bool)) (*relay.Config, error) {
	res := relay.Config{
		Gateway:        services.NewExpoService(cfg.Expo),
		Mirrors:        map[string]services.NotificationService{},
		NoActionPolicy: cfg.NoActionPolicy,
		Timeout:        cfg.Timeout(),
	}

	for i, opts := range cfg.Mirrors {
		name := mirrorName(opts.URL)
		if _, ok := res.Mirrors[name]; ok {
			name = fmt.Sprintf("%s#%d", name, i)
		}
		res.Mirrors[name] = services.NewWebhookService(opts)
	}

	for _, s := range cfg.Services {
		optsData, err := replaceSecrets(s.Options, lookupEnv)
		if err != nil {
			return nil, fmt.Errorf("service '%s' has invalid options: %w", s.Name, err)
		}
		svc, err := services.NewService(s.Type, optsData)
		if err != nil {
			return nil, fmt.Errorf("service '%s': %w", s.Name, err)
		}
		res.Channels = append(res.Channels, relay.Channel{Name: s.Name, Service: svc, Recipients: recipients(s)})
	}

	if len(cfg.Templates) > 0 {
		svc, err := templates.NewService(cfg.Templates)
		if err != nil {
			return nil, err
		}
		res.Templates = svc
	}
	if len(cfg.Filters) > 0 {
		svc, err := triggers.NewService(cfg.Filters)
		if err != nil {
			return nil, err
		}
		res.Filters = svc
	}
	return &res, nil
}

// recipients defaults to a single broadcast delivery when none are listed.
func recipients(s settings.Service) []string {
	if len(s.Recipients) == 0 {
		return []string{""}
	}
	return s.Recipients
}

func mirrorName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}

func replaceSecrets(data json.RawMessage, lookupEnv func(string) (string, bool)) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	var opts interface{}
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return json.Marshal(replaceValue(opts, lookupEnv))
}

func replaceValue(val interface{}, lookupEnv func(string) (string, bool)) interface{} {
	switch v := val.(type) {
	case string:
		return replaceStringSecret(v, lookupEnv)
	case map[string]interface{}:
		for k := range v {
			v[k] = replaceValue(v[k], lookupEnv)
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = replaceValue(v[i], lookupEnv)
		}
		return v
	default:
		return val
	}
}

// replaceStringSecret checks if given string is an environment variable reference ( starts with $ ) and returns its value
func replaceStringSecret(val string, lookupEnv func(string) (string, bool)) string {
	if val == "" || !strings.HasPrefix(val, "$") || lookupEnv == nil {
		return val
	}
	name := val[1:]
	secretVal, ok := lookupEnv(name)
	if !ok {
		log.Warnf("config referenced '%s', but environment variable does not exist", val)
		return val
	}
	return secretVal
}
