package mvc

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Encoder serializes direct-body results. Implementations are shared by
// all in-flight requests and must be safe for concurrent use.
type Encoder interface {
	Encode(w io.Writer, v any) error
}

// JSONCodec encodes values as compact JSON without HTML escaping and
// without a trailing newline.
type JSONCodec struct{}

// Encode writes v as JSON to w.
func (JSONCodec) Encode(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// YAMLCodec encodes values as YAML.
type YAMLCodec struct{}

// Encode writes v as YAML to w.
func (YAMLCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
