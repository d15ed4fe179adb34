package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes v as indented JSON with a trailing newline.
// encoding/json already sorts map keys, which, together with rounded
// floats and sorted slices upstream, makes re-renders byte-identical.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes v as YAML. Map keys are emitted in sorted order by
// gopkg.in/yaml.v3 for map types, matching the JSON determinism contract.
func MarshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
