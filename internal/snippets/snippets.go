// Package snippets builds LSP snippet text (tab stops and placeholders) for
// completion items.
package snippets

import (
	"strconv"
	"strings"
)

// Placeholder writes a snippet placeholder of the form ${index:text}.
func Placeholder(index int, text string, b *strings.Builder) {
	b.WriteString("${")
	b.WriteString(strconv.Itoa(index))
	b.WriteByte(':')
	b.WriteString(escape(text))
	b.WriteByte('}')
}

// Choice writes a snippet choice of the form ${index|a,b,c|}.
func Choice(index int, values []string, b *strings.Builder) {
	b.WriteString("${")
	b.WriteString(strconv.Itoa(index))
	b.WriteByte('|')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeChoice(v))
	}
	b.WriteString("|}")
}

// TabStop writes a bare tab stop of the form $index.
func TabStop(index int, b *strings.Builder) {
	b.WriteByte('$')
	b.WriteString(strconv.Itoa(index))
}

// IsSnippet reports whether text carries snippet syntax.
func IsSnippet(text string) bool {
	return strings.Contains(text, "${") || strings.Contains(text, "$0")
}

var (
	placeholderEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)
	choiceEscaper      = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`, `,`, `\,`, `|`, `\|`)
)

func escape(text string) string {
	return placeholderEscaper.Replace(text)
}

func escapeChoice(text string) string {
	return choiceEscaper.Replace(text)
}

// Counter hands out snippet indices for one rendering session so that
// placeholders stay unique across several rendered fragments. It is not safe
// for concurrent use.
type Counter struct {
	next int
}

// NewCounter returns a counter whose first index is start.
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Next returns the current index and advances the counter.
func (c *Counter) Next() int {
	n := c.next
	c.next++
	return n
}

// Peek returns the index Next would return without advancing.
func (c *Counter) Peek() int {
	return c.next
}
