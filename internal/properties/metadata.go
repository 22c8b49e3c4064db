// Package properties resolves and renders templated configuration property
// names such as "quarkus.datasource.{*}.jdbc.url", where each "{*}" stands
// for exactly one map-key segment.
//
// The package is pure: it operates on strings and on metadata records owned
// by the caller, and performs no I/O.
package properties

import "errors"

// ErrNilCatalog is returned when a lookup is made against a nil catalog.
var ErrNilCatalog = errors.New("properties: nil catalog")

// ItemMetadata describes one known configuration property. Name is the
// property pattern and may contain wildcard markers.
type ItemMetadata struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	SourceType    string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
	SourceField   string `json:"sourceField,omitempty" yaml:"sourceField,omitempty"`
	SourceMethod  string `json:"sourceMethod,omitempty" yaml:"sourceMethod,omitempty"`
	DefaultValue  string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	ExtensionName string `json:"extensionName,omitempty" yaml:"extensionName,omitempty"`
	Location      string `json:"location,omitempty" yaml:"location,omitempty"`
	Required      bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Phase         int    `json:"phase,omitempty" yaml:"phase,omitempty"`

	// HintName references an ItemHint by name. When empty the hint is looked
	// up by the property name.
	HintName string `json:"hintName,omitempty" yaml:"hintName,omitempty"`
}

// IsBooleanType reports whether the property holds a boolean.
func (m *ItemMetadata) IsBooleanType() bool {
	return m.Type == "boolean" || m.Type == "java.lang.Boolean"
}

// IsMapped reports whether the property name contains a wildcard marker.
func (m *ItemMetadata) IsMapped() bool {
	return IsMappedProperty(m.Name)
}

// ValueHint is one allowed value of a property.
type ValueHint struct {
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SourceType  string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
}

// ItemHint is a named set of allowed values.
type ItemHint struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Values      []ValueHint `json:"values" yaml:"values"`
}

// Value returns the hint value equal to v.
func (h *ItemHint) Value(v string) (ValueHint, bool) {
	for _, vh := range h.Values {
		if vh.Value == v {
			return vh, true
		}
	}
	return ValueHint{}, false
}

// Catalog is an ordered, read-only sequence of property metadata. The first
// entry whose pattern matches a name wins, so order is significant.
type Catalog interface {
	Properties() []*ItemMetadata
}

// ConfigurationMetadata is the property catalog of a project together with its
// value hints.
type ConfigurationMetadata struct {
	Items []*ItemMetadata `json:"properties" yaml:"properties"`
	Hints []*ItemHint     `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Properties implements Catalog.
func (c *ConfigurationMetadata) Properties() []*ItemMetadata {
	if c == nil {
		return nil
	}
	return c.Items
}

// GetHint returns the hint registered for the property, or nil.
func (c *ConfigurationMetadata) GetHint(property *ItemMetadata) *ItemHint {
	if c == nil || property == nil {
		return nil
	}
	name := property.HintName
	if name == "" {
		name = property.Name
	}
	for _, h := range c.Hints {
		if h != nil && h.Name == name {
			return h
		}
	}
	return nil
}
