package events

import (
	"strings"
)

// Notification is the human readable rendition of an event.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Outcome tells how a payload was translated.
type Outcome string

const (
	// OutcomeRendered is returned when a known kind produced a notification.
	OutcomeRendered Outcome = "rendered"
	// OutcomeFallback is returned for unknown kinds, which get the generic notification.
	OutcomeFallback Outcome = "fallback"
	// OutcomeNoAction is returned when a known kind intentionally produced nothing.
	OutcomeNoAction Outcome = "no_action"
)

// Result is the output of Translate. Notification is nil only when Outcome is OutcomeNoAction.
type Result struct {
	Kind         Kind
	Outcome      Outcome
	Notification *Notification
}

// Fallback builds the generic notification used for unknown kinds.
// A missing event reads "undefined" and a null one "null".
func Fallback(p Payload) *Notification {
	event, ok := p["event"]
	switch {
	case !ok:
		return &Notification{Title: "Event: undefined", Body: p.Message()}
	case event == nil:
		return &Notification{Title: "Event: null", Body: p.Message()}
	}
	return &Notification{Title: "Event: " + p.Event(), Body: p.Message()}
}

func rendered(kind Kind, title, body string) Result {
	return Result{Kind: kind, Outcome: OutcomeRendered, Notification: &Notification{Title: title, Body: body}}
}

// Translate maps a payload to a notification. It never fails and has no side effects.
func Translate(p Payload) Result {
	kind := p.Kind()
	switch kind {
	case KindDockerCleanupSuccess:
		return rendered(kind, "Docker Cleanup Success", "Docker cleanup job succeeded on server "+p.Field("server_name"))
	case KindDockerCleanupFailed:
		return rendered(kind, "Docker Cleanup Failed", "Docker cleanup job failed on server "+p.Field("server_name"))
	case KindDatabaseBackupSuccess:
		return rendered(kind, "Database Backup Success", "Database backup job succeeded on database "+p.Field("database_name"))
	case KindDatabaseBackupFailed:
		return rendered(kind, "Database Backup Failed", "Database backup job failed on database "+p.Field("database_name"))
	case KindBackupSuccessWithS3Warning:
		return rendered(kind, "Local Backup Success, S3 Backup Failed",
			"Local backup of "+p.Field("database_name")+" was successful, but S3 backup failed")
	case KindServerPatchesAvailable:
		return rendered(kind, "Server Patches Available",
			p.Field("total_updates")+" patches are available for server "+p.Field("server_name"))
	case KindServerPatchCheck:
		return rendered(kind, "Server Patches Available",
			p.Field("total_updates")+" patches are available for server "+p.Field("server_name"))
	case KindServerPatchCheckError:
		return rendered(kind, "Failed to Check for Patches", "Failed to check for patches on server "+p.Field("server_name"))
	case KindServerReachable:
		return rendered(kind, "Server Revived", "Server "+p.Field("server_name")+" is back online")
	case KindServerUnreachable:
		return rendered(kind, "Server Unreachable", "Server "+p.Field("server_name")+" is unreachable")
	case KindHighDiskUsage:
		return rendered(kind, "High Disk Usage Detected",
			"Server "+p.Field("server_name")+" is using "+p.Field("disk_usage")+
				"% of its disk space, which is above the threshold of "+p.Field("threshold")+"%")
	case KindDeploymentSuccess:
		title := "Deployment Success"
		if p.Truthy("preview_fqdn") {
			title = "Preview Deployment Success"
		}
		return rendered(kind, title, p.Field("application_name")+" was deployed successfully for "+p.Field("project"))
	case KindDeploymentFailed:
		title := "Deployment Failed"
		if p.Truthy("preview_fqdn") {
			title = "Preview Deployment Failed"
		}
		return rendered(kind, title, "Deployment of "+p.Field("application_name")+" for "+p.Field("project")+" failed")
	case KindContainerStopped:
		return rendered(kind, "Resource Stopped Unexpectedly",
			"Resource "+p.Field("container_name")+" was stopped unexpectedly on server "+p.Field("server_name"))
	case KindContainerRestarted:
		return rendered(kind, "Resource Restarted Automatically",
			"Resource "+p.Field("container_name")+" was restarted automatically on server "+p.Field("server_name"))
	case KindStatusChanged:
		// only the "application stopped" transition is announced
		if title, ok := p["title"].(string); ok && strings.ToLower(title) == "application stopped" {
			return rendered(kind, "Application Stopped", "Application "+p.Field("application_name")+" has been stopped")
		}
		return Result{Kind: kind, Outcome: OutcomeNoAction}
	case KindTraefikVersionOutdated:
		return rendered(kind, "Traefik Version Outdated",
			"Traefik version for "+p.Field("affected_servers_count")+" servers is outdated")
	case KindTaskSuccess:
		return rendered(kind, "Scheduled Task Success", "Scheduled task "+p.Field("task_name")+" was successful")
	case KindTaskFailed:
		return rendered(kind, "Scheduled Task Failed", "Scheduled task "+p.Field("task_name")+" failed")
	case KindTest:
		return rendered(kind, "Coolify Test Event", "Test event received")
	default:
		return Result{Kind: kind, Outcome: OutcomeFallback, Notification: Fallback(p)}
	}
}
