package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/templates"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
)

const (
	NoActionSuppress = "suppress"
	NoActionFallback = "fallback"

	DefaultTimeout = 10 * time.Second

	// label used for every event kind that has no dedicated builder
	unknownEventLabel = "unknown"
)

// Channel delivers the translated notification to every recipient of a notification service.
type Channel struct {
	Name       string
	Service    services.NotificationService
	Recipients []string
}

type Config struct {
	Gateway        services.ExpoService
	Mirrors        map[string]services.NotificationService
	Channels       []Channel
	Templates      templates.Service
	Filters        triggers.Service
	NoActionPolicy string
	Timeout        time.Duration
	Now            func() time.Time
}

// Response is the outcome of a handled event, rendered as the JSON reply to the webhook caller.
type Response struct {
	Status int
	Body   map[string]interface{}
}

type Relay struct {
	cfg             Config
	metricsRegistry *MetricsRegistry
}

func New(cfg Config, metricsRegistry *MetricsRegistry) *Relay {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.NoActionPolicy == "" {
		cfg.NoActionPolicy = NoActionSuppress
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if metricsRegistry == nil {
		metricsRegistry = NewMetricsRegistry()
	}
	return &Relay{cfg: cfg, metricsRegistry: metricsRegistry}
}

// Render translates the payload and applies custom templates and the no-action policy.
// A nil notification means there is nothing to push.
func (r *Relay) Render(logEntry *log.Entry, payload events.Payload) (events.Result, *events.Notification) {
	res := events.Translate(payload)
	notification := res.Notification
	switch res.Outcome {
	case events.OutcomeFallback:
		if r.cfg.Templates != nil && r.cfg.Templates.Has(payload.Event()) {
			if n, err := r.cfg.Templates.FormatNotification(payload.Event(), payload); err != nil {
				logEntry.Warnf("Failed to render template of event '%s', using generic message: %v", payload.Event(), err)
			} else {
				notification = n
			}
		}
	case events.OutcomeNoAction:
		if r.cfg.NoActionPolicy == NoActionFallback {
			notification = events.Fallback(payload)
		}
	}
	return res, notification
}

// Suppressed returns the name of the first filter matching the event.
func (r *Relay) Suppressed(res events.Result, notification *events.Notification, payload events.Payload) (string, bool) {
	if r.cfg.Filters == nil {
		return "", false
	}
	return r.cfg.Filters.Match(FilterVars(res, notification, payload))
}

// FilterVars exposes the payload fields plus the translation outcome and rendered text to filter conditions.
func FilterVars(res events.Result, notification *events.Notification, payload events.Payload) map[string]interface{} {
	vars := map[string]interface{}{}
	for k, v := range payload {
		vars[k] = v
	}
	vars["outcome"] = string(res.Outcome)
	if notification != nil {
		vars["title"] = notification.Title
		vars["body"] = notification.Body
	}
	return vars
}

// Data builds the extra data attached to every push message.
func (r *Relay) Data(payload events.Payload) map[string]interface{} {
	return map[string]interface{}{
		"source":     "coolify",
		"event":      payload["event"],
		"success":    payload["success"],
		"url":        payload["url"],
		"payload":    map[string]interface{}(payload),
		"receivedAt": r.cfg.Now().UTC().Format(time.RFC3339),
	}
}

func (r *Relay) eventLabel(kind events.Kind) string {
	if kind.Known() {
		return string(kind)
	}
	return unknownEventLabel
}

func (r *Relay) newContext() (context.Context, context.CancelFunc) {
	// outbound calls are not cancelled when the inbound request goes away
	return context.WithTimeout(context.Background(), r.cfg.Timeout)
}

// Handle delivers an event: raw payload to mirrors, translated notification to the push gateway and channels.
func (r *Relay) Handle(logEntry *log.Entry, raw []byte, payload events.Payload) Response {
	var wg sync.WaitGroup
	r.mirror(logEntry, raw, &wg)
	defer wg.Wait()

	if len(r.cfg.Gateway.Tokens()) == 0 {
		logEntry.Error("Expo push tokens are not configured")
		return Response{Status: http.StatusInternalServerError, Body: map[string]interface{}{
			"ok":    false,
			"error": "EXPO_PUSH_TOKEN(S) not configured",
		}}
	}

	res, notification := r.Render(logEntry, payload)
	r.metricsRegistry.IncEventsCounter(r.eventLabel(res.Kind), string(res.Outcome))
	if notification == nil {
		logEntry.Infof("Event '%s' produced no notification", payload.Event())
		return suppressed("no_action")
	}
	if name, ok := r.Suppressed(res, notification, payload); ok {
		logEntry.Infof("Event '%s' suppressed by filter '%s'", payload.Event(), name)
		return suppressed("filter:" + name)
	}

	n := services.Notification{Title: notification.Title, Body: notification.Body, Data: r.Data(payload), Payload: raw}
	r.notifyChannels(logEntry, n, &wg)

	ctx, cancel := r.newContext()
	defer cancel()
	logEntry.Infof("Sending push notification '%s' to %d device(s)", n.Preview(), len(r.cfg.Gateway.Tokens()))
	pushRes, err := r.cfg.Gateway.Push(ctx, n)
	if err != nil {
		r.metricsRegistry.IncDeliveriesCounter("expo", false)
		if pushErr, ok := err.(*services.PushError); ok {
			logEntry.Errorf("Expo push failed: %v", err)
			return Response{Status: http.StatusBadGateway, Body: map[string]interface{}{
				"ok":     false,
				"error":  "Expo push failed",
				"status": pushErr.Status,
				"expo":   pushErr.Body,
			}}
		}
		logEntry.Errorf("Failed to send Expo notification: %v", err)
		return Response{Status: http.StatusBadGateway, Body: map[string]interface{}{
			"ok":    false,
			"error": "Failed to send Expo notification",
		}}
	}
	r.metricsRegistry.IncDeliveriesCounter("expo", true)
	logEntry.Infof("Expo push sent, status %d", pushRes.Status)
	return Response{Status: http.StatusOK, Body: map[string]interface{}{
		"ok":   true,
		"expo": pushRes.Body,
	}}
}

func suppressed(reason string) Response {
	return Response{Status: http.StatusOK, Body: map[string]interface{}{
		"ok":         true,
		"suppressed": true,
		"reason":     reason,
	}}
}

func (r *Relay) mirror(logEntry *log.Entry, raw []byte, wg *sync.WaitGroup) {
	for name, svc := range r.cfg.Mirrors {
		wg.Add(1)
		go func(name string, svc services.NotificationService) {
			defer wg.Done()
			ctx, cancel := r.newContext()
			defer cancel()
			dest := services.Destination{Service: name}
			if err := svc.Send(ctx, services.Notification{Payload: raw}, dest); err != nil {
				logEntry.Warnf("Failed to forward payload to mirror %s: %v", name, err)
				r.metricsRegistry.IncDeliveriesCounter("mirror:"+name, false)
			} else {
				logEntry.Debugf("Payload forwarded to mirror %s", name)
				r.metricsRegistry.IncDeliveriesCounter("mirror:"+name, true)
			}
		}(name, svc)
	}
}

func (r *Relay) notifyChannels(logEntry *log.Entry, n services.Notification, wg *sync.WaitGroup) {
	for _, channel := range r.cfg.Channels {
		for _, recipient := range channel.Recipients {
			wg.Add(1)
			go func(channel Channel, recipient string) {
				defer wg.Done()
				ctx, cancel := r.newContext()
				defer cancel()
				dest := services.Destination{Service: channel.Name, Recipient: recipient}
				if err := channel.Service.Send(ctx, n, dest); err != nil {
					logEntry.Warnf("Failed to notify recipient %s of %s: %v", recipient, channel.Name, err)
					r.metricsRegistry.IncDeliveriesCounter("channel:"+channel.Name, false)
				} else {
					logEntry.Debugf("Notification %s was sent to %s", recipient, channel.Name)
					r.metricsRegistry.IncDeliveriesCounter("channel:"+channel.Name, true)
				}
			}(channel, recipient)
		}
	}
}

// MarshalJSON renders the response body.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Body)
}
