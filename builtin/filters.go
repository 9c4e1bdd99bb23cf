package builtin

import (
	"github.com/coolify-notifications/push-relay/pkg/triggers"
)

// Filters are predefined suppression filters. A configured filter with a name but no expression refers to one of them.
var (
	Filters = []triggers.Filter{{
		Name:        "ignore-test-events",
		When:        "event == 'test'",
		Description: "Drops the Coolify test event",
	}, {
		Name:        "ignore-preview-deployments",
		When:        "event in ['deployment_success', 'deployment_failed'] && preview_fqdn != nil && preview_fqdn != ''",
		Description: "Drops deployment events of preview environments",
	}, {
		Name:        "ignore-successful-deployments",
		When:        "event == 'deployment_success'",
		Description: "Only failed deployments are pushed",
	}, {
		Name:        "ignore-unknown-events",
		When:        "outcome == 'fallback'",
		Description: "Drops events without a dedicated message",
	}, {
		Name:        "ignore-cleanup-success",
		When:        "event == 'docker_cleanup_success'",
		Description: "Drops successful docker cleanup reports",
	}}
)

// LookupFilter returns the predefined filter with the given name.
func LookupFilter(name string) (triggers.Filter, bool) {
	for _, f := range Filters {
		if f.Name == name {
			return f, true
		}
	}
	return triggers.Filter{}, false
}
