// Package model parses Java-style .properties documents into a positional
// model used by completion, hover, diagnostics and value rules.
package model

import (
	"strings"
)

// Property is one key/value entry of a properties document. Lines and columns
// are zero-based.
type Property struct {
	Key   string
	Value string

	// Line is the line holding the key.
	Line       int
	KeyStart   int
	KeyEnd     int
	ValueStart int

	// EndLine is the last line of the value when it spans continuation lines.
	EndLine  int
	ValueEnd int

	// Delimiter is the separator between key and value ('=', ':' or ' '),
	// zero when the line only holds a key.
	Delimiter byte
}

// Profile returns the profile prefix of the key ("dev" for "%dev.a.b"), or "".
func (p *Property) Profile() string {
	profile, _ := SplitProfile(p.Key)
	return profile
}

// Name returns the key without its profile prefix.
func (p *Property) Name() string {
	_, name := SplitProfile(p.Key)
	return name
}

// Comment is a comment line of the document.
type Comment struct {
	Line int
	Text string
}

// PropertiesModel is a parsed properties document.
type PropertiesModel struct {
	Properties []*Property
	Comments   []*Comment

	lines []string
}

// Parse parses properties text. It never fails: malformed lines are kept as
// key-only properties.
func Parse(text string) *PropertiesModel {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	m := &PropertiesModel{lines: lines}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		start := firstNonBlank(line)
		if start == len(line) {
			continue
		}
		if line[start] == '#' || line[start] == '!' {
			m.Comments = append(m.Comments, &Comment{Line: i, Text: line[start:]})
			continue
		}

		prop := &Property{Line: i, KeyStart: start, EndLine: i}
		keyEnd := scanKey(line, start)
		prop.Key = line[start:keyEnd]
		prop.KeyEnd = keyEnd

		valueStart, delim := skipDelimiter(line, keyEnd)
		prop.Delimiter = delim
		prop.ValueStart = valueStart

		var value strings.Builder
		segment := line[valueStart:]
		for continues(segment) && i+1 < len(lines) {
			value.WriteString(segment[:len(segment)-1])
			i++
			next := lines[i]
			segment = next[firstNonBlank(next):]
		}
		value.WriteString(segment)

		prop.Value = strings.TrimRight(value.String(), " \t")
		prop.EndLine = i
		prop.ValueEnd = len(strings.TrimRight(lines[i], " \t"))
		if prop.EndLine == prop.Line && prop.ValueEnd < prop.ValueStart {
			prop.ValueEnd = prop.ValueStart
		}
		m.Properties = append(m.Properties, prop)
	}
	return m
}

// Get returns the first property with the given key.
func (m *PropertiesModel) Get(key string) (*Property, bool) {
	if m == nil {
		return nil, false
	}
	for _, p := range m.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return nil, false
}

// Keys returns the property keys in document order.
func (m *PropertiesModel) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Properties))
	for _, p := range m.Properties {
		keys = append(keys, p.Key)
	}
	return keys
}

// PropertyAt returns the property covering the given line.
func (m *PropertiesModel) PropertyAt(line int) (*Property, bool) {
	if m == nil {
		return nil, false
	}
	for _, p := range m.Properties {
		if line >= p.Line && line <= p.EndLine {
			return p, true
		}
	}
	return nil, false
}

// Line returns the raw text of a document line.
func (m *PropertiesModel) Line(n int) string {
	if m == nil || n < 0 || n >= len(m.lines) {
		return ""
	}
	return m.lines[n]
}

// LineCount returns the number of lines in the document.
func (m *PropertiesModel) LineCount() int {
	if m == nil {
		return 0
	}
	return len(m.lines)
}

// SplitProfile splits "%dev.a.b" into ("dev", "a.b"). Keys without a profile
// return an empty profile.
func SplitProfile(key string) (string, string) {
	if !strings.HasPrefix(key, "%") {
		return "", key
	}
	dot := strings.IndexByte(key, '.')
	if dot == -1 {
		return key[1:], ""
	}
	return key[1:dot], key[dot+1:]
}

func firstNonBlank(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\f') {
		i++
	}
	return i
}

// scanKey returns the end of the key starting at start. A backslash escapes the
// following character so that escaped separators stay in the key.
func scanKey(line string, start int) int {
	i := start
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
			continue
		case '=', ':', ' ', '\t', '\f':
			return i
		}
		i++
	}
	if i > len(line) {
		return len(line)
	}
	return i
}

func skipDelimiter(line string, i int) (int, byte) {
	var delim byte
	for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\f') {
		delim = ' '
		i++
	}
	if i < len(line) && (line[i] == '=' || line[i] == ':') {
		delim = line[i]
		i++
		for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\f') {
			i++
		}
	}
	if i >= len(line) && delim == ' ' {
		delim = 0
	}
	return i, delim
}

// continues reports whether a value segment ends with an odd number of
// backslashes.
func continues(segment string) bool {
	n := 0
	for i := len(segment) - 1; i >= 0 && segment[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
