package properties

import "strings"

// MappedKeyMarker is the wildcard marker of a property pattern. It stands for
// exactly one map-key segment.
const MappedKeyMarker = "{*}"

// Match reports whether the property name matches the pattern. Each marker in
// the pattern consumes one non-empty segment of the name: a quoted segment runs
// through its closing quote, an unquoted one up to the next unescaped dot.
// Every other character must match literally and both strings must be
// consumed completely.
func Match(name, pattern string) bool {
	i, j := 0, 0
	for i < len(pattern) || j < len(name) {
		if strings.HasPrefix(pattern[i:], MappedKeyMarker) {
			i += len(MappedKeyMarker)
			if j >= len(name) {
				return false
			}
			j = skipMapKey(name, j)
			continue
		}
		if i >= len(pattern) || j >= len(name) || pattern[i] != name[j] {
			return false
		}
		i++
		j++
	}
	return true
}

// skipMapKey returns the index just past the map key starting at j. The first
// character is always part of the key.
func skipMapKey(name string, j int) int {
	quoted := name[j] == '"'
	for j < len(name) {
		j++
		if j >= len(name) {
			break
		}
		c := name[j]
		if quoted {
			if c == '"' {
				return j + 1
			}
		} else if c == '.' && !isEscapedDot(name, j) {
			return j
		}
	}
	return len(name)
}

// isEscapedDot reports whether the dot at j is protected by a backslash one or
// two characters before it.
func isEscapedDot(name string, j int) bool {
	return charAt(name, j-1) == '\\' || charAt(name, j-2) == '\\'
}

func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
