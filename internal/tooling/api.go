// Package tooling provides a programmatic API for IDE integration via LSP.
// It keeps the open properties documents and answers completion, hover,
// diagnostics and symbol queries against the property catalog.
package tooling

import (
	"fmt"
	"sync"

	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
)

// MetadataProvider supplies the property catalog with its hints.
// *catalog.Store implements it.
type MetadataProvider interface {
	Load() (*properties.ConfigurationMetadata, error)
}

// StaticMetadata is a MetadataProvider over a fixed catalog.
type StaticMetadata struct {
	Metadata *properties.ConfigurationMetadata
}

// Load implements MetadataProvider.
func (s StaticMetadata) Load() (*properties.ConfigurationMetadata, error) {
	if s.Metadata == nil {
		return &properties.ConfigurationMetadata{}, nil
	}
	return s.Metadata, nil
}

// API provides thread-safe access to properties documents for IDE integration.
type API struct {
	documents map[string]*Document
	docsMutex sync.RWMutex

	metadata MetadataProvider
	rules    properties.ValuesRulesManager

	config *Config
}

// Config holds configuration for the tooling API
type Config struct {
	// SnippetsEnabled makes completions insert snippets with placeholders.
	SnippetsEnabled bool

	// Source is reported as the origin of diagnostics.
	Source string
}

// Document is an open properties document.
type Document struct {
	URI     string
	Content string
	Version int
	Model   *model.PropertiesModel
}

// Position represents a position in a document (zero-based for LSP compatibility)
type Position struct {
	Line      int // Zero-based line number
	Character int // Zero-based character offset
}

// Range represents a range in a document
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether pos lies within the range, bounds included.
func (r Range) Contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}

// Location represents a source location with URI and range
type Location struct {
	URI   string
	Range Range
}

// Hover represents hover information
type Hover struct {
	// Contents is the hover text (markdown formatted)
	Contents string

	// Range is the range the hover applies to
	Range Range
}

// CompletionItem represents a completion suggestion
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	Detail        string
	Documentation string

	// InsertText is the text to insert (if different from label).
	InsertText string

	// Snippet marks InsertText as snippet syntax. Plain text may still hold
	// "${" sequences, e.g. in default values.
	Snippet bool

	// Range is the text replaced by InsertText.
	Range Range

	SortText string
}

// CompletionKind categorizes completion items
type CompletionKind int

const (
	// CompletionKindProperty represents a property key completion
	CompletionKindProperty CompletionKind = iota
	// CompletionKindValue represents a property value completion
	CompletionKindValue
	// CompletionKindSnippet represents a snippet completion
	CompletionKindSnippet
)

// Diagnostic represents a problem found in a document
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Source   string
}

// DiagnosticSeverity indicates the severity of a diagnostic
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError represents an error diagnostic
	DiagnosticSeverityError DiagnosticSeverity = iota
	// DiagnosticSeverityWarning represents a warning diagnostic
	DiagnosticSeverityWarning
	// DiagnosticSeverityInfo represents an informational diagnostic
	DiagnosticSeverityInfo
	// DiagnosticSeverityHint represents a hint diagnostic
	DiagnosticSeverityHint
)

// DefaultSource is the default diagnostic source.
const DefaultSource = "propls"

// NewAPI creates a tooling API over the given catalog and values rules. rules
// may be nil.
func NewAPI(metadata MetadataProvider, rules properties.ValuesRulesManager) *API {
	return NewAPIWithConfig(metadata, rules, &Config{SnippetsEnabled: true, Source: DefaultSource})
}

// NewAPIWithConfig creates a new tooling API with custom configuration
func NewAPIWithConfig(metadata MetadataProvider, rules properties.ValuesRulesManager, config *Config) *API {
	if metadata == nil {
		metadata = StaticMetadata{}
	}
	if config == nil {
		config = &Config{SnippetsEnabled: true}
	}
	if config.Source == "" {
		config.Source = DefaultSource
	}
	return &API{
		documents: make(map[string]*Document),
		metadata:  metadata,
		rules:     rules,
		config:    config,
	}
}

// OpenDocument parses and caches a document.
func (a *API) OpenDocument(uri, content string, version int) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Model:   model.Parse(content),
	}

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc
}

// UpdateDocument replaces the content of a document. Unchanged content only
// bumps the version.
func (a *API) UpdateDocument(uri, content string, version int) *Document {
	a.docsMutex.RLock()
	oldDoc, exists := a.documents[uri]
	a.docsMutex.RUnlock()

	if exists && oldDoc.Content == content {
		doc := *oldDoc
		doc.Version = version
		a.docsMutex.Lock()
		a.documents[uri] = &doc
		a.docsMutex.Unlock()
		return &doc
	}
	return a.OpenDocument(uri, content, version)
}

// GetDocument retrieves a cached document
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	doc, exists := a.documents[uri]
	return doc, exists
}

// CloseDocument removes a document from the cache
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()
}

// Documents returns the URIs of the open documents.
func (a *API) Documents() []string {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	uris := make([]string, 0, len(a.documents))
	for uri := range a.documents {
		uris = append(uris, uri)
	}
	return uris
}

// SetSnippetsEnabled toggles snippet completions.
func (a *API) SetSnippetsEnabled(enabled bool) {
	a.docsMutex.Lock()
	a.config.SnippetsEnabled = enabled
	a.docsMutex.Unlock()
}

func (a *API) snippetsEnabled() bool {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()
	return a.config.SnippetsEnabled
}

// SetRules replaces the values rules, e.g. after the rules file changed.
func (a *API) SetRules(rules properties.ValuesRulesManager) {
	a.docsMutex.Lock()
	a.rules = rules
	a.docsMutex.Unlock()
}

func (a *API) valuesRules() properties.ValuesRulesManager {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()
	return a.rules
}

// GetHover returns hover information for a position in a document.
// Returns (nil, nil) if there is nothing to show at the position.
func (a *API) GetHover(uri string, pos Position) (*Hover, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	metadata, err := a.metadata.Load()
	if err != nil && metadata == nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return a.buildHover(doc, metadata, pos), nil
}

// GetCompletions returns completion items for a position in a document
func (a *API) GetCompletions(uri string, pos Position) ([]CompletionItem, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	metadata, err := a.metadata.Load()
	if err != nil && metadata == nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	ctx := a.getCompletionContext(doc, pos)
	return a.buildCompletions(doc, metadata, ctx), nil
}

// GetDocumentSymbols returns all properties of a document as symbols
func (a *API) GetDocumentSymbols(uri string) ([]*Symbol, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	return extractSymbols(doc), nil
}

// findProperty resolves a document key against the catalog, ignoring its
// profile prefix.
func findProperty(p *model.Property, metadata *properties.ConfigurationMetadata) *properties.ItemMetadata {
	item, err := properties.FindProperty(p.Name(), metadata)
	if err != nil {
		return nil
	}
	return item
}

func keyRange(p *model.Property) Range {
	return Range{
		Start: Position{Line: p.Line, Character: p.KeyStart},
		End:   Position{Line: p.Line, Character: p.KeyEnd},
	}
}

func valueRange(p *model.Property) Range {
	return Range{
		Start: Position{Line: p.Line, Character: p.ValueStart},
		End:   Position{Line: p.EndLine, Character: p.ValueEnd},
	}
}
