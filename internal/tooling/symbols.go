package tooling

// Symbol is a property entry of a document.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Range Range

	// SelectionRange covers the key.
	SelectionRange Range

	// Detail is the property value.
	Detail string

	// ContainerName is the profile of the entry, if any.
	ContainerName string
}

// SymbolKind categorizes symbols for IDE display
type SymbolKind int

const (
	// SymbolKindProperty represents a property entry
	SymbolKindProperty SymbolKind = iota
	// SymbolKindProfileProperty represents a property entry bound to a profile
	SymbolKindProfileProperty
)

func extractSymbols(doc *Document) []*Symbol {
	symbols := make([]*Symbol, 0, len(doc.Model.Properties))
	for _, p := range doc.Model.Properties {
		kind := SymbolKindProperty
		if p.Profile() != "" {
			kind = SymbolKindProfileProperty
		}
		symbols = append(symbols, &Symbol{
			Name: p.Key,
			Kind: kind,
			Range: Range{
				Start: Position{Line: p.Line, Character: p.KeyStart},
				End:   Position{Line: p.EndLine, Character: p.ValueEnd},
			},
			SelectionRange: keyRange(p),
			Detail:         p.Value,
			ContainerName:  p.Profile(),
		})
	}
	return symbols
}
