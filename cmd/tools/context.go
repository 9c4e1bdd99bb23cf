package tools

import (
	"io"
	"io/ioutil"

	"github.com/coolify-notifications/push-relay/pkg"
	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/relay"
	"github.com/coolify-notifications/push-relay/shared/settings"
)

type commandContext struct {
	configPath string
	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	lookupEnv  func(string) (string, bool)
}

func (c *commandContext) getConfig() (*settings.Config, error) {
	return settings.Load(c.configPath, c.lookupEnv)
}

func (c *commandContext) getRelay() (*relay.Relay, *settings.Config, error) {
	cfg, err := c.getConfig()
	if err != nil {
		return nil, nil, err
	}
	relayCfg, err := pkg.ParseConfig(cfg, c.lookupEnv)
	if err != nil {
		return nil, nil, err
	}
	return relay.New(*relayCfg, nil), cfg, nil
}

// loadPayload reads the payload from the given file, or from stdin if the path is empty or '-'.
func (c *commandContext) loadPayload(path string) ([]byte, events.Payload, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = ioutil.ReadAll(c.stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	payload, err := events.ParsePayload(data)
	if err != nil {
		return nil, nil, err
	}
	return data, payload, nil
}
