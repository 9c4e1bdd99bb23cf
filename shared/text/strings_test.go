package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "a", Coalesce("a", "b"))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestSplitRemoveEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitRemoveEmpty(" a, ,b ,", ","))
	assert.Nil(t, SplitRemoveEmpty(" , ", ","))
}
