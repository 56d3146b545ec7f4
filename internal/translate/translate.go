// Package translate encodes posts and configuration as JSON, YAML or TOML.
package translate

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/post"
)

// Format is a serialization format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat indicates a format other than json, yaml or toml.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats(), f) {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
	}
	return f, nil
}

// Record is the plain view of a post that Encode serializes: every header
// field as extracted, plus the slug and content.
func Record(p *post.Post) map[string]any {
	return map[string]any{
		"slug":     p.Slug,
		"metadata": p.Raw.Map(),
		"content":  p.Content,
	}
}

// Encode serializes p's Record in format f.
func Encode(f Format, p *post.Post) ([]byte, error) {
	return Marshal(f, Record(p))
}

// Marshal serializes v in format f. Output always ends with a newline.
func Marshal(f Format, v any) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		out, err = marshalYAML(v)
	case FormatTOML:
		out, err = toml.Marshal(v)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", f)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

// marshalYAML uses two-space indentation to match the header style.
func marshalYAML(v any) ([]byte, error) {
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

// Convert re-encodes data from one format to another.
func Convert(data []byte, from, to Format) ([]byte, error) {
	var v any
	var err error
	switch from {
	case FormatJSON:
		err = json.Unmarshal(data, &v)
	case FormatYAML:
		err = yaml.Unmarshal(data, &v)
	case FormatTOML:
		err = toml.Unmarshal(data, &v)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", from)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshaling %s", from)
	}
	return Marshal(to, v)
}
