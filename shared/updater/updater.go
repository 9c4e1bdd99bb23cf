package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/version"
)

const notificationTitle = "Update Available"

// Release is the subset of the GitHub release document the updater needs.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type Updater struct {
	url     string
	current string
	gateway services.ExpoService
	client  *http.Client
	timeout time.Duration

	lock     sync.Mutex
	notified triggers.State
}

func NewUpdater(url string, gateway services.ExpoService, timeout time.Duration) *Updater {
	return &Updater{
		url:      url,
		current:  version.Tag(),
		gateway:  gateway,
		client:   httputil.NewClient(url, false, log.WithField("service", "updater")),
		timeout:  timeout,
		notified: triggers.State{},
	}
}

// Latest fetches the latest published release.
func (u *Updater) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request latest release: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest release: %w", err)
	}
	if !(resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		return nil, fmt.Errorf("request to %s has failed with error code %d : %s", u.url, resp.StatusCode, string(data))
	}
	var release Release
	if err := json.Unmarshal(data, &release); err != nil {
		return nil, fmt.Errorf("failed to parse latest release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release document from %s has no tag_name", u.url)
	}
	return &release, nil
}

// Check returns the latest release if it differs from the running version, nil otherwise.
func (u *Updater) Check(ctx context.Context) (*Release, error) {
	release, err := u.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if release.TagName == u.current {
		return nil, nil
	}
	return release, nil
}

// Notification describes the release to the device owner.
func (u *Updater) Notification(release Release) services.Notification {
	return services.Notification{
		Title: notificationTitle,
		Body: fmt.Sprintf("A new version of %s is available. Current version: %s, latest version: %s",
			version.Name, u.current, release.TagName),
		Data: map[string]interface{}{
			"source":          version.Name,
			"latest_version":  release.TagName,
			"current_version": u.current,
			"release_url":     release.HTMLURL,
		},
	}
}

// Notify pushes the release notification once per release tag. Returns true if a notification was sent.
func (u *Updater) Notify(ctx context.Context, release Release) (bool, error) {
	u.lock.Lock()
	defer u.lock.Unlock()
	if u.notified.AlreadyNotified(release.TagName) {
		return false, nil
	}
	if _, err := u.gateway.Push(ctx, u.Notification(release)); err != nil {
		return false, err
	}
	u.notified.SetAlreadyNotified(release.TagName, true)
	return true, nil
}

// Run checks for a new release and notifies about it. Errors are logged.
func (u *Updater) Run() {
	logEntry := log.WithField("service", "updater")
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	release, err := u.Check(ctx)
	if err != nil {
		logEntry.Warnf("Failed to check for updates: %v", err)
		return
	}
	if release == nil {
		logEntry.Debugf("Running the latest version %s", u.current)
		return
	}
	logEntry.Infof("New version %s is available (running %s): %s", release.TagName, u.current, release.HTMLURL)
	if sent, err := u.Notify(ctx, *release); err != nil {
		logEntry.Errorf("Failed to send update notification: %v", err)
	} else if sent {
		logEntry.Infof("Update notification for %s sent", release.TagName)
	}
}
