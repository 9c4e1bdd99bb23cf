package testing

import (
	"encoding/json"
	"time"
)

const (
	TestServerName      = "prod-1"
	TestApplicationName = "api"
	TestProject         = "backend"
)

func WithField(name string, value interface{}) func(payload map[string]interface{}) {
	return func(payload map[string]interface{}) {
		payload[name] = value
	}
}

func WithMessage(message string) func(payload map[string]interface{}) {
	return WithField("message", message)
}

func WithServer(name string) func(payload map[string]interface{}) {
	return WithField("server_name", name)
}

func WithApplication(name string, project string) func(payload map[string]interface{}) {
	return func(payload map[string]interface{}) {
		payload["application_name"] = name
		payload["project"] = project
	}
}

func WithPreview(fqdn interface{}) func(payload map[string]interface{}) {
	return WithField("preview_fqdn", fqdn)
}

func WithDeploymentUUID(uuid string) func(payload map[string]interface{}) {
	return WithField("deployment_uuid", uuid)
}

func WithCreatedAt(t time.Time) func(payload map[string]interface{}) {
	return WithField("created_at", t.UTC().Format(time.RFC3339))
}

// NewPayload builds a decoded webhook payload for the given event.
func NewPayload(event string, modifiers ...func(payload map[string]interface{})) map[string]interface{} {
	payload := map[string]interface{}{}
	if event != "" {
		payload["event"] = event
	}
	for i := range modifiers {
		modifiers[i](payload)
	}
	return payload
}

// NewPayloadJSON is NewPayload encoded as JSON.
func NewPayloadJSON(event string, modifiers ...func(payload map[string]interface{})) []byte {
	data, err := json.Marshal(NewPayload(event, modifiers...))
	if err != nil {
		panic(err)
	}
	return data
}
