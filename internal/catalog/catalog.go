// Package catalog loads property catalogs (configuration metadata) from JSON
// or YAML files and serves them as a merged, ordered properties.Catalog.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/propls/internal/properties"
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for catalog files that are neither JSON nor
// YAML.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// FormatOf returns the catalog format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads and decodes one catalog file.
func LoadFile(path string) (*properties.ConfigurationMetadata, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	metadata, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	return metadata, nil
}

// Decode decodes a catalog and fills derived fields such as the extension
// name.
func Decode(r io.Reader, format Format) (*properties.ConfigurationMetadata, error) {
	var metadata properties.ConfigurationMetadata
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&metadata); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&metadata); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	for _, item := range metadata.Items {
		if item != nil && item.ExtensionName == "" && item.Location != "" {
			item.ExtensionName = ExtensionName(item.Location)
		}
	}
	return &metadata, nil
}

// Merge concatenates catalogs in order. Earlier catalogs take precedence in
// lookups since the first matching entry wins.
func Merge(catalogs ...*properties.ConfigurationMetadata) *properties.ConfigurationMetadata {
	merged := &properties.ConfigurationMetadata{}
	for _, c := range catalogs {
		if c == nil {
			continue
		}
		merged.Items = append(merged.Items, c.Items...)
		merged.Hints = append(merged.Hints, c.Hints...)
	}
	return merged
}

// ExtensionName returns the extension name encoded in a jar location, for
// example "quarkus-core" for ".../quarkus-core-0.21.1.jar". A "-deployment"
// suffix is removed. It returns "" when the location is not a jar.
func ExtensionName(location string) string {
	if !strings.HasSuffix(location, ".jar") {
		return ""
	}
	start := strings.LastIndexByte(location, '/')
	if start == -1 {
		return ""
	}
	start++
	end := strings.LastIndexByte(location, '-')
	if end == -1 {
		end = strings.LastIndexByte(location, '.')
	}
	if end < start {
		return ""
	}
	return strings.TrimSuffix(location[start:end], "-deployment")
}
