package tooling

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/snippets"
)

// CompletionContext describes the context at a completion position
type CompletionContext struct {
	Kind CompletionContextKind

	// Property is the property on the line, nil on an empty line.
	Property *model.Property

	// Profile is the profile typed in front of the key ("dev" for "%dev.").
	Profile string

	// Range is the text replaced by the completion.
	Range Range
}

// CompletionContextKind categorizes the completion context
type CompletionContextKind int

const (
	// CompletionContextUnknown represents a position without completions
	CompletionContextUnknown CompletionContextKind = iota
	// CompletionContextKey represents a property key position
	CompletionContextKey
	// CompletionContextValue represents a property value position
	CompletionContextValue
)

// getCompletionContext determines the completion context at a position
func (a *API) getCompletionContext(doc *Document, pos Position) *CompletionContext {
	if pos.Line < 0 || pos.Line >= doc.Model.LineCount() {
		return &CompletionContext{Kind: CompletionContextUnknown}
	}

	line := doc.Model.Line(pos.Line)
	if pos.Character > len(line) {
		pos.Character = len(line)
	}
	if pos.Character < 0 {
		pos.Character = 0
	}

	trimmed := strings.TrimSpace(line[:pos.Character])
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
		return &CompletionContext{Kind: CompletionContextUnknown}
	}

	p, ok := doc.Model.PropertyAt(pos.Line)
	if !ok {
		start := len(line[:pos.Character]) - len(strings.TrimLeft(line[:pos.Character], " \t"))
		return &CompletionContext{
			Kind: CompletionContextKey,
			Range: Range{
				Start: Position{Line: pos.Line, Character: start},
				End:   pos,
			},
		}
	}

	if pos.Line != p.Line || isValuePosition(line, p, pos.Character) {
		return &CompletionContext{
			Kind:     CompletionContextValue,
			Property: p,
			Range:    valueRange(p),
		}
	}

	var profile string
	if pos.Character > p.KeyStart {
		profile, _ = model.SplitProfile(line[p.KeyStart:pos.Character])
	}
	return &CompletionContext{
		Kind:     CompletionContextKey,
		Property: p,
		Profile:  profile,
		Range:    keyRange(p),
	}
}

func isValuePosition(line string, p *model.Property, character int) bool {
	if p.Delimiter == 0 || character <= p.KeyEnd {
		return false
	}
	if strings.ContainsAny(line[p.KeyEnd:character], "=:") {
		return true
	}
	return character >= p.ValueStart
}

// buildCompletions creates completion items based on context
func (a *API) buildCompletions(doc *Document, metadata *properties.ConfigurationMetadata, ctx *CompletionContext) []CompletionItem {
	switch ctx.Kind {
	case CompletionContextKey:
		return a.buildKeyCompletions(doc, metadata, ctx)
	case CompletionContextValue:
		return a.buildValueCompletions(doc, metadata, ctx)
	default:
		return []CompletionItem{}
	}
}

func (a *API) buildKeyCompletions(doc *Document, metadata *properties.ConfigurationMetadata, ctx *CompletionContext) []CompletionItem {
	existing := make(map[string]struct{})
	for _, p := range doc.Model.Properties {
		if p == ctx.Property {
			continue
		}
		if profile, name := model.SplitProfile(p.Key); profile == ctx.Profile {
			existing[name] = struct{}{}
		}
	}

	prefix := ""
	if ctx.Profile != "" {
		prefix = "%" + ctx.Profile + "."
	}

	snippetsEnabled := a.snippetsEnabled()
	rules := a.valuesRules()
	items := make([]CompletionItem, 0, len(metadata.Properties()))
	for _, item := range metadata.Properties() {
		if item == nil {
			continue
		}
		if _, defined := existing[item.Name]; defined && !item.IsMapped() {
			continue
		}

		enums := properties.GetEnums(item, metadata, doc.Model, rules)
		var insert string
		if snippetsEnabled {
			insert = prefix + propertySnippet(item, enums)
		} else {
			insert = prefix + propertyText(item)
		}

		kind := CompletionKindProperty
		if snippetsEnabled && snippets.IsSnippet(insert) {
			kind = CompletionKindSnippet
		}

		items = append(items, CompletionItem{
			Label:         prefix + item.Name,
			Kind:          kind,
			Detail:        item.Type,
			Documentation: propertyDocumentation(item, "", ""),
			InsertText:    insert,
			Snippet:       kind == CompletionKindSnippet,
			Range:         ctx.Range,
			SortText:      item.Name,
		})
	}
	return items
}

// propertySnippet renders "name=value" with one placeholder per map key,
// followed by a choice of the enumerated values or the default value.
func propertySnippet(item *properties.ItemMetadata, enums []properties.ValueHint) string {
	counter := snippets.NewCounter(1)
	formatted := properties.FormatPropertyForCompletion(item.Name, counter)

	var b strings.Builder
	b.WriteString(formatted.Name)
	b.WriteByte('=')
	switch {
	case len(enums) > 0:
		values := make([]string, 0, len(enums))
		for _, e := range enums {
			values = append(values, e.Value)
		}
		snippets.Choice(counter.Next(), values, &b)
	case item.DefaultValue != "":
		snippets.Placeholder(counter.Next(), item.DefaultValue, &b)
	default:
		snippets.TabStop(0, &b)
	}
	return b.String()
}

// propertyText renders "name=default" for clients without snippet support.
func propertyText(item *properties.ItemMetadata) string {
	name := properties.FormatProperty(item.Name, properties.WildcardFormatterFunc(func(_ int, b *strings.Builder) {
		b.WriteString(properties.CompletionMappedKey)
	})).Name
	return name + "=" + item.DefaultValue
}

func (a *API) buildValueCompletions(doc *Document, metadata *properties.ConfigurationMetadata, ctx *CompletionContext) []CompletionItem {
	item := findProperty(ctx.Property, metadata)
	if item == nil {
		return []CompletionItem{}
	}

	enums := properties.GetEnums(item, metadata, doc.Model, a.valuesRules())
	items := make([]CompletionItem, 0, len(enums))
	for i, e := range enums {
		items = append(items, CompletionItem{
			Label:         e.Value,
			Kind:          CompletionKindValue,
			Detail:        item.Type,
			Documentation: e.Description,
			InsertText:    e.Value,
			Range:         ctx.Range,
			SortText:      sortIndex(i),
		})
	}
	return items
}

// sortIndex keeps enumerated values in declaration order.
func sortIndex(i int) string {
	return fmt.Sprintf("%04d", i)
}
