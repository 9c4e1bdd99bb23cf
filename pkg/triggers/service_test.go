package triggers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	svc, err := NewService([]Filter{{
		Name: "no-tests",
		When: "event == 'test'",
	}, {
		Name: "no-big-disks",
		When: "disk_usage > 90",
	}})

	if !assert.NoError(t, err) {
		return
	}

	t.Run("Matched", func(t *testing.T) {
		res := svc.Run(map[string]interface{}{"event": "test"})
		assert.Equal(t, []FilterResult{{
			Name:    "no-tests",
			Matched: true,
		}, {
			Name: "no-big-disks",
		}}, res)
	})

	t.Run("NotMatched", func(t *testing.T) {
		_, ok := svc.Match(map[string]interface{}{"event": "deployment_success", "disk_usage": 50.0})
		assert.False(t, ok)
	})

	t.Run("ErrorIsNoMatch", func(t *testing.T) {
		// comparing a string with a number fails at runtime
		name, ok := svc.Match(map[string]interface{}{"event": "x", "disk_usage": "full"})
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("FirstMatchWins", func(t *testing.T) {
		name, ok := svc.Match(map[string]interface{}{"event": "test", "disk_usage": 95.0})
		assert.True(t, ok)
		assert.Equal(t, "no-tests", name)
	})
}

func TestNewService_Invalid(t *testing.T) {
	_, err := NewService([]Filter{{Name: "broken", When: "event =="}})
	assert.Error(t, err)

	_, err = NewService([]Filter{{Name: "empty"}})
	assert.EqualError(t, err, "filter 'empty' has no condition")
}

func TestRun_NonBoolResult(t *testing.T) {
	svc, err := NewService([]Filter{{Name: "str", When: "event"}})
	if !assert.NoError(t, err) {
		return
	}
	_, ok := svc.Match(map[string]interface{}{"event": "test"})
	assert.False(t, ok)
}
