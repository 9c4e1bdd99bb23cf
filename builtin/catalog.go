package builtin

import (
	"regexp"

	"github.com/coolify-notifications/push-relay/pkg/events"
)

// Entry documents how a known event kind is rendered. Body placeholders use the {field} syntax.
type Entry struct {
	Kind         events.Kind `json:"kind"`
	Group        string      `json:"group"`
	Title        string      `json:"title"`
	PreviewTitle string      `json:"previewTitle,omitempty"`
	Body         string      `json:"body"`
	Description  string      `json:"description,omitempty"`
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// Fields returns the payload fields referenced by the body template.
func (e Entry) Fields() []string {
	var res []string
	for _, match := range placeholder.FindAllStringSubmatch(e.Body, -1) {
		res = append(res, match[1])
	}
	return res
}

// Render substitutes placeholders with the given values.
func (e Entry) Render(values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(e.Body, func(s string) string {
		return values[s[1:len(s)-1]]
	})
}

var (
	Catalog = []Entry{{
		Kind:  events.KindDockerCleanupSuccess,
		Group: "docker",
		Title: "Docker Cleanup Success",
		Body:  "Docker cleanup job succeeded on server {server_name}",
	}, {
		Kind:  events.KindDockerCleanupFailed,
		Group: "docker",
		Title: "Docker Cleanup Failed",
		Body:  "Docker cleanup job failed on server {server_name}",
	}, {
		Kind:  events.KindDatabaseBackupSuccess,
		Group: "database",
		Title: "Database Backup Success",
		Body:  "Database backup job succeeded on database {database_name}",
	}, {
		Kind:  events.KindDatabaseBackupFailed,
		Group: "database",
		Title: "Database Backup Failed",
		Body:  "Database backup job failed on database {database_name}",
	}, {
		Kind:  events.KindBackupSuccessWithS3Warning,
		Group: "database",
		Title: "Local Backup Success, S3 Backup Failed",
		Body:  "Local backup of {database_name} was successful, but S3 backup failed",
	}, {
		Kind:  events.KindServerPatchesAvailable,
		Group: "server",
		Title: "Server Patches Available",
		Body:  "{total_updates} patches are available for server {server_name}",
	}, {
		Kind:        events.KindServerPatchCheck,
		Group:       "server",
		Title:       "Server Patches Available",
		Body:        "{total_updates} patches are available for server {server_name}",
		Description: "Alias of server_patches_available",
	}, {
		Kind:  events.KindServerPatchCheckError,
		Group: "server",
		Title: "Failed to Check for Patches",
		Body:  "Failed to check for patches on server {server_name}",
	}, {
		Kind:  events.KindServerReachable,
		Group: "server",
		Title: "Server Revived",
		Body:  "Server {server_name} is back online",
	}, {
		Kind:  events.KindServerUnreachable,
		Group: "server",
		Title: "Server Unreachable",
		Body:  "Server {server_name} is unreachable",
	}, {
		Kind:  events.KindHighDiskUsage,
		Group: "server",
		Title: "High Disk Usage Detected",
		Body:  "Server {server_name} is using {disk_usage}% of its disk space, which is above the threshold of {threshold}%",
	}, {
		Kind:         events.KindDeploymentSuccess,
		Group:        "deployment",
		Title:        "Deployment Success",
		PreviewTitle: "Preview Deployment Success",
		Body:         "{application_name} was deployed successfully for {project}",
		Description:  "Preview title is used when preview_fqdn is set",
	}, {
		Kind:         events.KindDeploymentFailed,
		Group:        "deployment",
		Title:        "Deployment Failed",
		PreviewTitle: "Preview Deployment Failed",
		Body:         "Deployment of {application_name} for {project} failed",
		Description:  "Preview title is used when preview_fqdn is set",
	}, {
		Kind:  events.KindContainerStopped,
		Group: "container",
		Title: "Resource Stopped Unexpectedly",
		Body:  "Resource {container_name} was stopped unexpectedly on server {server_name}",
	}, {
		Kind:  events.KindContainerRestarted,
		Group: "container",
		Title: "Resource Restarted Automatically",
		Body:  "Resource {container_name} was restarted automatically on server {server_name}",
	}, {
		Kind:        events.KindStatusChanged,
		Group:       "container",
		Title:       "Application Stopped",
		Body:        "Application {application_name} has been stopped",
		Description: "Only sent when title is 'Application Stopped', other status changes produce nothing",
	}, {
		Kind:  events.KindTraefikVersionOutdated,
		Group: "traefik",
		Title: "Traefik Version Outdated",
		Body:  "Traefik version for {affected_servers_count} servers is outdated",
	}, {
		Kind:  events.KindTaskSuccess,
		Group: "task",
		Title: "Scheduled Task Success",
		Body:  "Scheduled task {task_name} was successful",
	}, {
		Kind:  events.KindTaskFailed,
		Group: "task",
		Title: "Scheduled Task Failed",
		Body:  "Scheduled task {task_name} failed",
	}, {
		Kind:  events.KindTest,
		Group: "test",
		Title: "Coolify Test Event",
		Body:  "Test event received",
	}}
)

// Lookup returns the catalog entry for the given kind.
func Lookup(kind events.Kind) (Entry, bool) {
	for _, e := range Catalog {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}
