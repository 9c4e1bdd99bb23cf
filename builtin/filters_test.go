package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolify-notifications/push-relay/pkg/triggers"
	. "github.com/coolify-notifications/push-relay/testing"
)

type testCase struct {
	positiveInputs []map[string]interface{}
	negativeInputs []map[string]interface{}
}

var testCases = map[string]testCase{
	"ignore-test-events": {
		positiveInputs: []map[string]interface{}{NewPayload("test")},
		negativeInputs: []map[string]interface{}{NewPayload("deployment_success")},
	},
	"ignore-preview-deployments": {
		positiveInputs: []map[string]interface{}{
			NewPayload("deployment_success", WithPreview("pr-1.example.com")),
			NewPayload("deployment_failed", WithPreview("pr-1.example.com")),
		},
		negativeInputs: []map[string]interface{}{
			NewPayload("deployment_success"),
			NewPayload("deployment_success", WithPreview("")),
			NewPayload("test", WithPreview("pr-1.example.com")),
		},
	},
	"ignore-successful-deployments": {
		positiveInputs: []map[string]interface{}{NewPayload("deployment_success")},
		negativeInputs: []map[string]interface{}{NewPayload("deployment_failed")},
	},
	"ignore-unknown-events": {
		positiveInputs: []map[string]interface{}{NewPayload("foo", WithField("outcome", "fallback"))},
		negativeInputs: []map[string]interface{}{NewPayload("test", WithField("outcome", "rendered"))},
	},
	"ignore-cleanup-success": {
		positiveInputs: []map[string]interface{}{NewPayload("docker_cleanup_success")},
		negativeInputs: []map[string]interface{}{NewPayload("docker_cleanup_failed")},
	},
}

func TestBuiltinFilters(t *testing.T) {
	for _, f := range Filters {
		tc, ok := testCases[f.Name]
		if !assert.True(t, ok, "filter %s is not tested", f.Name) {
			continue
		}
		svc, err := triggers.NewService([]triggers.Filter{f})
		if !assert.NoError(t, err) {
			return
		}
		for _, in := range tc.positiveInputs {
			_, matched := svc.Match(in)
			assert.True(t, matched, "%s should match %v", f.Name, in)
		}
		for _, in := range tc.negativeInputs {
			_, matched := svc.Match(in)
			assert.False(t, matched, "%s should not match %v", f.Name, in)
		}
	}
}

func TestLookupFilter(t *testing.T) {
	f, ok := LookupFilter("ignore-test-events")
	assert.True(t, ok)
	assert.Equal(t, "event == 'test'", f.When)

	_, ok = LookupFilter("nope")
	assert.False(t, ok)
}
