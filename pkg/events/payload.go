package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Payload is an inbound webhook event. Fields are read defensively: any of them may be absent.
type Payload map[string]interface{}

// ParsePayload decodes a JSON object into a Payload.
func ParsePayload(data []byte) (Payload, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.New("payload must be a JSON object")
	}
	return Payload(obj), nil
}

// Event returns the event name coerced to a string.
func (p Payload) Event() string {
	return p.Field("event")
}

// Kind returns the event kind named by the payload.
func (p Payload) Kind() Kind {
	return Kind(p.Event())
}

// Message returns the free-text message carried by the payload.
func (p Payload) Message() string {
	return p.Field("message")
}

// Field renders the named field the way it appears inside a notification body.
func (p Payload) Field(name string) string {
	return Stringify(p[name])
}

// Truthy reports whether the named field holds a truthy value.
func (p Payload) Truthy(name string) bool {
	return Truthy(p[name])
}

// Stringify renders a decoded JSON value: strings verbatim, numbers in their shortest decimal form,
// objects and arrays as compact JSON, absent and null values as an empty string.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return formatFloat(f)
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n"))
	}
}

// Truthy follows JavaScript truthiness for decoded JSON values.
func Truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// formatFloat switches to exponent notation outside [1e-6, 1e21), like JavaScript number printing.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if abs := math.Abs(v); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go pads the exponent to two digits
		i := strings.IndexByte(s, 'e') + 2
		return s[:i] + strings.TrimLeft(s[i:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
