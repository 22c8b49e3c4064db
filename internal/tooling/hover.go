package tooling

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
)

// buildHover creates hover information for the property key or value at pos.
func (a *API) buildHover(doc *Document, metadata *properties.ConfigurationMetadata, pos Position) *Hover {
	p, ok := doc.Model.PropertyAt(pos.Line)
	if !ok {
		return nil
	}
	item := findProperty(p, metadata)
	if item == nil {
		return nil
	}

	if r := keyRange(p); r.Contains(pos) {
		return &Hover{
			Contents: propertyDocumentation(item, p.Profile(), p.Value),
			Range:    r,
		}
	}

	if r := valueRange(p); p.Delimiter != 0 && r.Contains(pos) {
		return a.buildValueHover(doc, metadata, item, p, r)
	}
	return nil
}

func (a *API) buildValueHover(doc *Document, metadata *properties.ConfigurationMetadata, item *properties.ItemMetadata, p *model.Property, r Range) *Hover {
	for _, e := range properties.GetEnums(item, metadata, doc.Model, a.valuesRules()) {
		if e.Value != p.Value {
			continue
		}
		var content strings.Builder
		content.WriteString(fmt.Sprintf("**%s**", e.Value))
		if e.Description != "" {
			content.WriteString("\n\n")
			content.WriteString(e.Description)
		}
		return &Hover{Contents: content.String(), Range: r}
	}
	return nil
}

// propertyDocumentation renders the markdown documentation of a property.
// profile and value describe the document entry and may be empty.
func propertyDocumentation(item *properties.ItemMetadata, profile, value string) string {
	var content strings.Builder

	content.WriteString("**")
	content.WriteString(properties.FormatPropertyForMarkdown(item.Name))
	content.WriteString("**\n\n")

	if item.Description != "" {
		content.WriteString(item.Description)
		content.WriteString("\n\n")
	}

	if profile != "" {
		content.WriteString(fmt.Sprintf(" * Profile: `%s`\n", profile))
	}
	if item.Type != "" {
		content.WriteString(fmt.Sprintf(" * Type: `%s`\n", item.Type))
	}
	if item.DefaultValue != "" {
		content.WriteString(fmt.Sprintf(" * Default: `%s`\n", item.DefaultValue))
	}
	if value != "" {
		content.WriteString(fmt.Sprintf(" * Value: `%s`\n", value))
	}
	if item.Required {
		content.WriteString(" * Required\n")
	}
	if item.ExtensionName != "" {
		content.WriteString(fmt.Sprintf(" * Extension: `%s`\n", item.ExtensionName))
	}
	if source := sourceOf(item); source != "" {
		content.WriteString(fmt.Sprintf(" * Source: `%s`\n", source))
	}

	return strings.TrimRight(content.String(), "\n")
}

func sourceOf(item *properties.ItemMetadata) string {
	switch {
	case item.SourceType == "":
		return ""
	case item.SourceField != "":
		return item.SourceType + "#" + item.SourceField
	case item.SourceMethod != "":
		return item.SourceType + "#" + item.SourceMethod
	default:
		return item.SourceType
	}
}
