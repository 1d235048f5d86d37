// Package document turns configuration files into node trees and back.
//
// YAML keeps the key order of the file. JSON and TOML are decoded through
// generic maps, so their mapping keys come out sorted.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"logidconf/node"
)

var (
	// ErrUnknownFormat is returned for a file extension or format name
	// no parser is registered for.
	ErrUnknownFormat = errors.New("unknown document format")
	// ErrDuplicateKey is returned when a mapping repeats a key.
	ErrDuplicateKey = errors.New("duplicate mapping key")
	// ErrUnsupportedValue is returned for values with no node equivalent,
	// such as null list elements, dates or non-string keys.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrOutOfRange is returned for integers that do not fit in 64 bits.
	ErrOutOfRange = errors.New("out of range")
)

// Format identifies a document syntax.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	return ParseFormat(ext)
}

// Parse decodes data written in format f.
func Parse(data []byte, f Format) (node.Node, error) {
	switch f {
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatTOML:
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Load reads and parses a file. A zero format selects the parser by extension.
func Load(path string, f Format) (node.Node, error) {
	if f == 0 {
		var err error

		f, err = FormatOf(path)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	n, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as %v: %w", path, f, err)
	}

	return n, nil
}
