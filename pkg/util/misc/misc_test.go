package misc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintFormatted(t *testing.T) {
	in := map[string]string{"title": "Coolify Test Event"}

	var out bytes.Buffer
	assert.NoError(t, PrintFormatted(in, "json", &out))
	assert.Equal(t, "{\n  \"title\": \"Coolify Test Event\"\n}\n", out.String())

	out.Reset()
	assert.NoError(t, PrintFormatted(in, "yaml", &out))
	assert.Equal(t, "title: Coolify Test Event\n", out.String())

	assert.EqualError(t, PrintFormatted(in, "xml", &out), "output 'xml' is not supported")
}

func TestPrintFormatted_MarshalError(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, PrintFormatted(map[string]interface{}{"ch": make(chan int)}, "json", &out))
	assert.Empty(t, out.String())
}
