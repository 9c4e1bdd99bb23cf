package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/text"
	"github.com/coolify-notifications/push-relay/shared/version"
)

const (
	notificationTitle = "Deployment Started"
	unknownApp        = "Unknown"
)

// Poller watches the Coolify deployments API and notifies about every deployment it has not seen yet.
type Poller struct {
	url     string
	token   string
	gateway services.ExpoService
	client  *http.Client
	timeout time.Duration

	lock sync.Mutex
	seen triggers.State
}

func NewPoller(apiURL string, apiToken string, endpoint string, gateway services.ExpoService, timeout time.Duration) *Poller {
	url := fmt.Sprintf("%s/%s", strings.TrimRight(apiURL, "/"), strings.Trim(endpoint, "/"))
	return &Poller{
		url:     url,
		token:   apiToken,
		gateway: gateway,
		client:  httputil.NewClient(url, false, log.WithField("service", "poller")),
		timeout: timeout,
		seen:    triggers.State{},
	}
}

func (p *Poller) URL() string {
	return p.url
}

// Deployments returns the deployments currently in progress.
func (p *Poller) Deployments(ctx context.Context) ([]events.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Coolify deployments API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Coolify deployments API response: %w", err)
	}
	if !(resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		return nil, fmt.Errorf("request to %s has failed with error code %d : %s", p.url, resp.StatusCode, string(data))
	}
	var deployments []events.Payload
	if err := json.Unmarshal(data, &deployments); err != nil {
		return nil, fmt.Errorf("failed to parse Coolify deployments API response: %w", err)
	}
	return deployments, nil
}

// Fresh records the deployments and returns the ones seen for the first time.
// Deployments that are no longer listed are forgotten.
func (p *Poller) Fresh(deployments []events.Payload) []events.Payload {
	p.lock.Lock()
	defer p.lock.Unlock()

	var current []string
	for _, d := range deployments {
		if id, ok := d["deployment_uuid"].(string); ok {
			current = append(current, id)
		}
	}
	p.seen.Retain(current)

	var fresh []events.Payload
	for _, d := range deployments {
		id, ok := d["deployment_uuid"].(string)
		if !ok {
			continue
		}
		if p.seen.SetAlreadyNotified(id, true) {
			fresh = append(fresh, d)
		}
	}
	return fresh
}

// Notification announces a started deployment.
func Notification(deployment events.Payload) services.Notification {
	name, _ := deployment["application_name"].(string)
	return services.Notification{
		Title: notificationTitle,
		Body:  fmt.Sprintf("New deployment has started for %s", text.Coalesce(name, unknownApp)),
		Data:  map[string]interface{}(deployment),
	}
}

// Run polls the API once and notifies about fresh deployments. Errors are logged.
func (p *Poller) Run() {
	logEntry := log.WithField("service", "poller")
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	deployments, err := p.Deployments(ctx)
	if err != nil {
		logEntry.Warn(err)
		return
	}
	for _, d := range p.Fresh(deployments) {
		n := Notification(d)
		logEntry.Infof("Sending push notification '%s'", n.Preview())
		if _, err := p.gateway.Push(ctx, n); err != nil {
			logEntry.Errorf("Failed to send deployment notification: %v", err)
		}
	}
}
