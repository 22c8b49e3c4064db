package tooling

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/util/fuzzy"
)

// Diagnostic codes.
const (
	CodeUnknownProperty   = "unknown_property"
	CodeDuplicateProperty = "duplicate_property"
	CodeInvalidValue      = "invalid_value"
	CodeRequiredProperty  = "required_property"
)

// GetDiagnostics returns diagnostics for a document
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil
	}

	metadata, err := a.metadata.Load()
	if err != nil && metadata == nil {
		return nil
	}

	diagnostics := make([]Diagnostic, 0)
	seen := make(map[string]struct{})
	rules := a.valuesRules()
	var names []string

	for _, p := range doc.Model.Properties {
		if _, dup := seen[p.Key]; dup {
			diagnostics = append(diagnostics, Diagnostic{
				Range:    keyRange(p),
				Severity: DiagnosticSeverityWarning,
				Code:     CodeDuplicateProperty,
				Message:  fmt.Sprintf("Duplicate property '%s'", p.Key),
				Source:   a.config.Source,
			})
		}
		seen[p.Key] = struct{}{}

		item := findProperty(p, metadata)
		if item == nil {
			if names == nil {
				names = catalogNames(metadata)
			}
			diagnostics = append(diagnostics, Diagnostic{
				Range:    keyRange(p),
				Severity: DiagnosticSeverityWarning,
				Code:     CodeUnknownProperty,
				Message:  unknownPropertyMessage(p.Name(), names),
				Source:   a.config.Source,
			})
			continue
		}

		if p.Value == "" {
			continue
		}
		enums := properties.GetEnums(item, metadata, doc.Model, rules)
		if len(enums) > 0 && !containsValue(enums, p.Value) {
			diagnostics = append(diagnostics, Diagnostic{
				Range:    valueRange(p),
				Severity: DiagnosticSeverityError,
				Code:     CodeInvalidValue,
				Message:  fmt.Sprintf("Invalid value '%s' for property '%s'", p.Value, p.Name()),
				Source:   a.config.Source,
			})
		}
	}

	diagnostics = append(diagnostics, a.requiredDiagnostics(doc, metadata)...)
	return diagnostics
}

// requiredDiagnostics reports required, non-mapped properties missing from the
// document.
func (a *API) requiredDiagnostics(doc *Document, metadata *properties.ConfigurationMetadata) []Diagnostic {
	var diagnostics []Diagnostic
	for _, item := range metadata.Properties() {
		if item == nil || !item.Required || item.IsMapped() || item.DefaultValue != "" {
			continue
		}
		found := false
		for _, p := range doc.Model.Properties {
			if p.Name() == item.Name {
				found = true
				break
			}
		}
		if !found {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: DiagnosticSeverityInfo,
				Code:     CodeRequiredProperty,
				Message:  fmt.Sprintf("Missing required property '%s'", item.Name),
				Source:   a.config.Source,
			})
		}
	}
	return diagnostics
}

func unknownPropertyMessage(name string, candidates []string) string {
	msg := fmt.Sprintf("Unknown property '%s'", name)
	if suggestions := fuzzy.FindSimilar(name, candidates, nil); len(suggestions) > 0 {
		msg += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
	}
	return msg
}

func catalogNames(metadata *properties.ConfigurationMetadata) []string {
	names := make([]string, 0, len(metadata.Properties()))
	for _, item := range metadata.Properties() {
		if item != nil {
			names = append(names, item.Name)
		}
	}
	return names
}

func containsValue(enums []properties.ValueHint, value string) bool {
	for _, e := range enums {
		if e.Value == value {
			return true
		}
	}
	return false
}
