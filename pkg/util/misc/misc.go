package misc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

// PrintFormatted writes input to out as indented JSON or as YAML.
func PrintFormatted(input interface{}, output string, out io.Writer) error {
	var data []byte
	var err error
	switch output {
	case "json":
		data, err = json.MarshalIndent(input, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(input)
	default:
		return fmt.Errorf("output '%s' is not supported", output)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
