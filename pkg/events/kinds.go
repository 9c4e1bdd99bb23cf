package events

// Kind names a webhook event. Known kinds are listed below; any other value is handled as an unknown kind.
type Kind string

const (
	KindDockerCleanupSuccess       Kind = "docker_cleanup_success"
	KindDockerCleanupFailed        Kind = "docker_cleanup_failed"
	KindDatabaseBackupSuccess      Kind = "database_backup_success"
	KindDatabaseBackupFailed       Kind = "database_backup_failed"
	KindBackupSuccessWithS3Warning Kind = "backup_success_with_s3_warning"
	KindServerPatchesAvailable     Kind = "server_patches_available"
	KindServerPatchCheck           Kind = "server_patch_check"
	KindServerPatchCheckError      Kind = "server_patch_check_error"
	KindServerReachable            Kind = "server_reachable"
	KindServerUnreachable          Kind = "server_unreachable"
	KindHighDiskUsage              Kind = "high_disk_usage"
	KindDeploymentSuccess          Kind = "deployment_success"
	KindDeploymentFailed           Kind = "deployment_failed"
	KindContainerStopped           Kind = "container_stopped"
	KindContainerRestarted         Kind = "container_restarted"
	KindStatusChanged              Kind = "status_changed"
	KindTraefikVersionOutdated     Kind = "traefik_version_outdated"
	KindTaskSuccess                Kind = "task_success"
	KindTaskFailed                 Kind = "task_failed"
	KindTest                       Kind = "test"
)

var knownKinds = []Kind{
	KindDockerCleanupSuccess,
	KindDockerCleanupFailed,
	KindDatabaseBackupSuccess,
	KindDatabaseBackupFailed,
	KindBackupSuccessWithS3Warning,
	KindServerPatchesAvailable,
	KindServerPatchCheck,
	KindServerPatchCheckError,
	KindServerReachable,
	KindServerUnreachable,
	KindHighDiskUsage,
	KindDeploymentSuccess,
	KindDeploymentFailed,
	KindContainerStopped,
	KindContainerRestarted,
	KindStatusChanged,
	KindTraefikVersionOutdated,
	KindTaskSuccess,
	KindTaskFailed,
	KindTest,
}

// Kinds returns every known kind.
func Kinds() []Kind {
	res := make([]Kind, len(knownKinds))
	copy(res, knownKinds)
	return res
}

// Known reports whether k is handled by a dedicated builder.
func (k Kind) Known() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
