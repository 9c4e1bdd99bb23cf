package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/shared/text"
)

func lookupString(lookupEnv func(string) (string, bool), target *string, names ...string) {
	for _, name := range names {
		if val, ok := lookupEnv(name); ok && strings.TrimSpace(val) != "" {
			*target = strings.TrimSpace(val)
			return
		}
	}
}

func lookupInt(lookupEnv func(string) (string, bool), target *int, name string) error {
	val, ok := lookupEnv(name)
	if !ok || strings.TrimSpace(val) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, val)
	}
	*target = parsed
	return nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	if err := lookupInt(lookupEnv, &c.Server.Port, "PORT"); err != nil {
		return err
	}
	lookupString(lookupEnv, &c.Server.WebhookPath, "WEBHOOK_PATH")
	lookupString(lookupEnv, &c.Server.Secret, "WEBHOOK_SECRET")

	lookupString(lookupEnv, &c.Expo.URL, "EXPO_PUSH_URL")
	lookupString(lookupEnv, &c.Expo.AccessToken, "EXPO_ACCESS_TOKEN")
	lookupString(lookupEnv, &c.Expo.BodyFallback, "EXPO_BODY_FALLBACK")
	tokens := ""
	lookupString(lookupEnv, &tokens, "EXPO_PUSH_TOKENS", "EXPO_PUSH_TOKEN")
	if tokens != "" {
		c.Expo.Tokens = text.SplitRemoveEmpty(tokens, ",")
	}

	urls := ""
	lookupString(lookupEnv, &urls, "WEBHOOK_RELAY_URLS")
	if urls != "" {
		c.Mirrors = nil
		for _, url := range text.SplitRemoveEmpty(urls, ",") {
			c.Mirrors = append(c.Mirrors, services.WebhookOptions{URL: url})
		}
	}

	lookupString(lookupEnv, &c.Log.Level, "LOG_LEVEL")
	lookupString(lookupEnv, &c.Log.Format, "LOG_FORMAT")

	lookupString(lookupEnv, &c.Coolify.APIURL, "COOLIFY_API_URL")
	lookupString(lookupEnv, &c.Coolify.APIToken, "COOLIFY_API_TOKEN")
	lookupString(lookupEnv, &c.Coolify.APIEndpoint, "COOLIFY_API_ENDPOINT")
	return lookupInt(lookupEnv, &c.Coolify.PollSeconds, "COOLIFY_DEPLOYMENT_POLL_SECONDS")
}
