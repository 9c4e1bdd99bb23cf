package events_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolify-notifications/push-relay/pkg/events"
	. "github.com/coolify-notifications/push-relay/testing"
)

func translate(event string, modifiers ...func(payload map[string]interface{})) events.Result {
	return events.Translate(NewPayload(event, modifiers...))
}

func TestTranslate_KnownKinds(t *testing.T) {
	fields := []func(map[string]interface{}){
		WithServer("srv"),
		WithField("database_name", "db"),
		WithField("disk_usage", 91),
		WithField("threshold", 80),
		WithApplication("app", "proj"),
		WithField("container_name", "ctr"),
		WithField("task_name", "job"),
		WithField("affected_servers_count", 3),
		WithField("total_updates", 12),
	}
	expected := map[events.Kind]events.Notification{
		events.KindDockerCleanupSuccess:       {Title: "Docker Cleanup Success", Body: "Docker cleanup job succeeded on server srv"},
		events.KindDockerCleanupFailed:        {Title: "Docker Cleanup Failed", Body: "Docker cleanup job failed on server srv"},
		events.KindDatabaseBackupSuccess:      {Title: "Database Backup Success", Body: "Database backup job succeeded on database db"},
		events.KindDatabaseBackupFailed:       {Title: "Database Backup Failed", Body: "Database backup job failed on database db"},
		events.KindBackupSuccessWithS3Warning: {Title: "Local Backup Success, S3 Backup Failed", Body: "Local backup of db was successful, but S3 backup failed"},
		events.KindServerPatchesAvailable:     {Title: "Server Patches Available", Body: "12 patches are available for server srv"},
		events.KindServerPatchCheck:           {Title: "Server Patches Available", Body: "12 patches are available for server srv"},
		events.KindServerPatchCheckError:      {Title: "Failed to Check for Patches", Body: "Failed to check for patches on server srv"},
		events.KindServerReachable:            {Title: "Server Revived", Body: "Server srv is back online"},
		events.KindServerUnreachable:          {Title: "Server Unreachable", Body: "Server srv is unreachable"},
		events.KindHighDiskUsage:              {Title: "High Disk Usage Detected", Body: "Server srv is using 91% of its disk space, which is above the threshold of 80%"},
		events.KindDeploymentSuccess:          {Title: "Deployment Success", Body: "app was deployed successfully for proj"},
		events.KindDeploymentFailed:           {Title: "Deployment Failed", Body: "Deployment of app for proj failed"},
		events.KindContainerStopped:           {Title: "Resource Stopped Unexpectedly", Body: "Resource ctr was stopped unexpectedly on server srv"},
		events.KindContainerRestarted:         {Title: "Resource Restarted Automatically", Body: "Resource ctr was restarted automatically on server srv"},
		events.KindTraefikVersionOutdated:     {Title: "Traefik Version Outdated", Body: "Traefik version for 3 servers is outdated"},
		events.KindTaskSuccess:                {Title: "Scheduled Task Success", Body: "Scheduled task job was successful"},
		events.KindTaskFailed:                 {Title: "Scheduled Task Failed", Body: "Scheduled task job failed"},
		events.KindTest:                       {Title: "Coolify Test Event", Body: "Test event received"},
	}

	for kind, notification := range expected {
		res := translate(string(kind), fields...)
		assert.Equal(t, events.OutcomeRendered, res.Outcome, kind)
		assert.Equal(t, kind, res.Kind)
		if assert.NotNil(t, res.Notification, kind) {
			assert.Equal(t, notification, *res.Notification, kind)
		}
	}
}

func TestTranslate_EveryKnownKindIsHandled(t *testing.T) {
	for _, kind := range events.Kinds() {
		res := translate(string(kind), WithField("title", "Application Stopped"))
		assert.NotEqual(t, events.OutcomeFallback, res.Outcome, kind)
		assert.True(t, kind.Known())
	}
}

func TestTranslate_UnknownKind(t *testing.T) {
	res := translate("foo", WithMessage("bar"))
	assert.Equal(t, events.OutcomeFallback, res.Outcome)
	assert.False(t, res.Kind.Known())
	assert.Equal(t, &events.Notification{Title: "Event: foo", Body: "bar"}, res.Notification)
}

func TestTranslate_KindLookupIsCaseSensitive(t *testing.T) {
	res := translate("TEST", WithMessage("upper"))
	assert.Equal(t, events.OutcomeFallback, res.Outcome)
	assert.Equal(t, "Event: TEST", res.Notification.Title)
}

func TestTranslate_MissingEvent(t *testing.T) {
	res := events.Translate(events.Payload{})
	assert.Equal(t, events.OutcomeFallback, res.Outcome)
	assert.Equal(t, &events.Notification{Title: "Event: undefined", Body: ""}, res.Notification)

	res = events.Translate(nil)
	assert.Equal(t, events.OutcomeFallback, res.Outcome)
	assert.Equal(t, "Event: undefined", res.Notification.Title)

	res = events.Translate(events.Payload{"event": nil, "message": "m"})
	assert.Equal(t, &events.Notification{Title: "Event: null", Body: "m"}, res.Notification)

	res = events.Translate(events.Payload{"event": ""})
	assert.Equal(t, "Event: ", res.Notification.Title)
}

func TestTranslate_MissingFieldsRenderEmpty(t *testing.T) {
	res := translate(string(events.KindServerUnreachable))
	assert.Equal(t, "Server  is unreachable", res.Notification.Body)

	res = translate(string(events.KindServerUnreachable), WithField("server_name", nil))
	assert.Equal(t, "Server  is unreachable", res.Notification.Body)
}

func TestTranslate_PreviewDeployment(t *testing.T) {
	truthy := []interface{}{"pr-1.example.com", true, 1, map[string]interface{}{}, []interface{}{}}
	for _, value := range truthy {
		assert.Equal(t, "Preview Deployment Success",
			translate(string(events.KindDeploymentSuccess), WithPreview(value)).Notification.Title, value)
		assert.Equal(t, "Preview Deployment Failed",
			translate(string(events.KindDeploymentFailed), WithPreview(value)).Notification.Title, value)
	}

	falsy := []interface{}{nil, false, "", 0, float64(0)}
	for _, value := range falsy {
		assert.Equal(t, "Deployment Success",
			translate(string(events.KindDeploymentSuccess), WithPreview(value)).Notification.Title, value)
		assert.Equal(t, "Deployment Failed",
			translate(string(events.KindDeploymentFailed), WithPreview(value)).Notification.Title, value)
	}

	assert.Equal(t, "Deployment Success", translate(string(events.KindDeploymentSuccess)).Notification.Title)
}

func TestTranslate_StatusChanged(t *testing.T) {
	for _, title := range []string{"Application Stopped", "application stopped", "APPLICATION STOPPED"} {
		res := translate(string(events.KindStatusChanged), WithField("title", title), WithApplication("X", ""))
		assert.Equal(t, events.OutcomeRendered, res.Outcome)
		assert.Equal(t, &events.Notification{Title: "Application Stopped", Body: "Application X has been stopped"}, res.Notification)
	}

	for _, title := range []interface{}{"Something Else", "", nil, 42, " application stopped"} {
		res := translate(string(events.KindStatusChanged), WithField("title", title))
		assert.Equal(t, events.OutcomeNoAction, res.Outcome, title)
		assert.Nil(t, res.Notification)
	}

	res := translate(string(events.KindStatusChanged))
	assert.Equal(t, events.OutcomeNoAction, res.Outcome)
}

func TestTranslate_PatchKindsAreIdentical(t *testing.T) {
	available := translate(string(events.KindServerPatchesAvailable), WithServer("a"), WithField("total_updates", 7))
	check := translate(string(events.KindServerPatchCheck), WithServer("a"), WithField("total_updates", 7))

	left, err := json.Marshal(available.Notification)
	assert.NoError(t, err)
	right, err := json.Marshal(check.Notification)
	assert.NoError(t, err)
	assert.Equal(t, left, right)
}

func TestTranslate_TestIgnoresFields(t *testing.T) {
	res := translate(string(events.KindTest), WithMessage("ignored"), WithServer("srv"), WithField("title", "x"))
	assert.Equal(t, &events.Notification{Title: "Coolify Test Event", Body: "Test event received"}, res.Notification)
}

func TestTranslate_Deterministic(t *testing.T) {
	payload := NewPayload(string(events.KindHighDiskUsage), WithServer("srv"), WithField("disk_usage", 85.5))
	first := events.Translate(payload)
	second := events.Translate(payload)
	assert.Equal(t, first, second)
	assert.NotSame(t, first.Notification, second.Notification)
	assert.Equal(t, NewPayload(string(events.KindHighDiskUsage), WithServer("srv"), WithField("disk_usage", 85.5)), map[string]interface{}(payload))
}

func TestNotification_JSON(t *testing.T) {
	data, err := json.Marshal(events.Notification{Title: "t"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"title":"t"}`, string(data))

	data, err = json.Marshal(events.Notification{Title: "t", Body: "b"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","body":"b"}`, string(data))
}
