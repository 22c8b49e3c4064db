package properties

import (
	"strings"

	"github.com/conduit-lang/propls/internal/snippets"
)

// MarkdownMappedKey is the markdown rendering of a wildcard marker.
const MarkdownMappedKey = `\{\*\}`

// CompletionMappedKey is the placeholder text used for a map key in completion
// snippets.
const CompletionMappedKey = "key"

// FormattedProperty is a rendered property pattern.
type FormattedProperty struct {
	// Name is the rendered pattern.
	Name string

	// MappedParameterCount is the number of wildcard markers replaced.
	MappedParameterCount int
}

// WildcardFormatter writes the replacement for the index-th (1-based) wildcard
// marker of a pattern.
type WildcardFormatter interface {
	OnWildcard(index int, b *strings.Builder)
}

// WildcardFormatterFunc adapts a function to WildcardFormatter.
type WildcardFormatterFunc func(index int, b *strings.Builder)

// OnWildcard implements WildcardFormatter.
func (f WildcardFormatterFunc) OnWildcard(index int, b *strings.Builder) {
	f(index, b)
}

// MarkdownFormatter renders every marker as an escaped "{*}" for markdown.
type MarkdownFormatter struct{}

// OnWildcard implements WildcardFormatter.
func (MarkdownFormatter) OnWildcard(_ int, b *strings.Builder) {
	b.WriteString(MarkdownMappedKey)
}

// PlaceholderFormatter renders every marker as a snippet placeholder. Indices
// come from Counter so that they stay unique across several patterns rendered
// into the same snippet; with a nil Counter the occurrence index is used.
type PlaceholderFormatter struct {
	Counter *snippets.Counter
	Text    string
}

// OnWildcard implements WildcardFormatter.
func (f PlaceholderFormatter) OnWildcard(index int, b *strings.Builder) {
	if f.Counter != nil {
		index = f.Counter.Next()
	}
	text := f.Text
	if text == "" {
		text = CompletionMappedKey
	}
	snippets.Placeholder(index, text, b)
}

// FormatProperty replaces each wildcard marker of pattern with the text written
// by f. Markers are found textually, left to right. A pattern without markers
// is returned unchanged and f is never called.
func FormatProperty(pattern string, f WildcardFormatter) FormattedProperty {
	index := strings.Index(pattern, MappedKeyMarker)
	if index == -1 {
		return FormattedProperty{Name: pattern}
	}

	var b strings.Builder
	b.Grow(len(pattern))
	count := 0
	current := pattern
	for index != -1 {
		b.WriteString(current[:index])
		count++
		f.OnWildcard(count, &b)
		current = current[index+len(MappedKeyMarker):]
		index = strings.Index(current, MappedKeyMarker)
	}
	b.WriteString(current)
	return FormattedProperty{Name: b.String(), MappedParameterCount: count}
}

// FormatPropertyForMarkdown renders pattern for markdown display.
func FormatPropertyForMarkdown(pattern string) string {
	return FormatProperty(pattern, MarkdownFormatter{}).Name
}

// FormatPropertyForCompletion renders pattern as a completion snippet, taking
// placeholder indices from counter. counter may be nil.
func FormatPropertyForCompletion(pattern string, counter *snippets.Counter) FormattedProperty {
	return FormatProperty(pattern, PlaceholderFormatter{Counter: counter})
}

// IsMappedProperty reports whether pattern contains a wildcard marker.
func IsMappedProperty(pattern string) bool {
	return strings.Contains(pattern, MappedKeyMarker)
}

// CountMappedKeys returns the number of wildcard markers in pattern.
func CountMappedKeys(pattern string) int {
	return strings.Count(pattern, MappedKeyMarker)
}
