package loader

import (
	"errors"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format struct {
	Name       string
	Extensions []string

	// unmarshal decodes data into a map; position reports the line and
	// column of a decode error when the library provides one.
	unmarshal func(data []byte, v *map[string]any) error
	position  func(err error) (line, column int)
}

var (
	// TOML is the default format, read by github.com/pelletier/go-toml/v2.
	TOML = &Format{
		Name:       "toml",
		Extensions: []string{".toml"},
		unmarshal: func(data []byte, v *map[string]any) error {
			return toml.Unmarshal(data, v)
		},
		position: func(err error) (int, int) {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return derr.Position()
			}
			return 0, 0
		},
	}

	// YAML is read by gopkg.in/yaml.v3.
	YAML = &Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		unmarshal: func(data []byte, v *map[string]any) error {
			return yaml.Unmarshal(data, v)
		},
	}
)

var formats = []*Format{TOML, YAML}

// FormatFor returns the format for path's extension, or nil.
func FormatFor(path string) *Format {
	ext := extension(path)
	for _, f := range formats {
		if slices.Contains(f.Extensions, ext) {
			return f
		}
	}
	return nil
}

// parse decodes data. An empty document is an empty map.
func (f *Format) parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := f.unmarshal(data, &m); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		if f.position != nil {
			perr.Line, perr.Column = f.position(err)
		}
		return nil, perr
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
