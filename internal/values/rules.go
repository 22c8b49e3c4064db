// Package values provides a rule-based values provider: it supplies the
// allowed values of properties that carry no explicit hint, matching them by
// type or by name pattern.
package values

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
)

// ErrInvalidRule is returned for rules without values or with a dangling
// definition reference.
var ErrInvalidRule = errors.New("invalid values rule")

//go:embed default-rules.yaml
var defaultRules []byte

// Definition is a named, reusable value set.
type Definition struct {
	ID     string                 `yaml:"id"`
	Values []properties.ValueHint `yaml:"values"`
}

// Matcher selects the properties a rule applies to. A property is selected
// when its type is one of Types or its name matches one of Names.
type Matcher struct {
	Types []string `yaml:"types,omitempty"`
	Names []string `yaml:"names,omitempty"`
}

// Match reports whether the matcher selects property.
func (m Matcher) Match(property *properties.ItemMetadata) bool {
	for _, t := range m.Types {
		if t == property.Type {
			return true
		}
	}
	for _, pattern := range m.Names {
		if properties.Match(property.Name, pattern) {
			return true
		}
	}
	return false
}

// Rule binds a value set to the properties selected by its matcher.
type Rule struct {
	Matcher   Matcher                `yaml:"matcher"`
	Values    []properties.ValueHint `yaml:"values,omitempty"`
	ValuesRef string                 `yaml:"valuesRef,omitempty"`
}

type rulesFile struct {
	Definitions []Definition `yaml:"definitions"`
	Rules       []Rule       `yaml:"rules"`
}

// RulesManager implements properties.ValuesRulesManager. Rules are evaluated
// in order and the first matching rule wins.
type RulesManager struct {
	definitions map[string][]properties.ValueHint
	rules       []Rule
}

var _ properties.ValuesRulesManager = (*RulesManager)(nil)

// Parse decodes and validates a YAML rules document.
func Parse(data []byte) (*RulesManager, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse values rules: %w", err)
	}

	m := &RulesManager{definitions: make(map[string][]properties.ValueHint, len(file.Definitions))}
	for _, d := range file.Definitions {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: definition without id", ErrInvalidRule)
		}
		m.definitions[d.ID] = d.Values
	}
	for i, r := range file.Rules {
		if err := m.validate(r); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		m.rules = append(m.rules, r)
	}
	return m, nil
}

// Load reads a YAML rules file.
func Load(path string) (*RulesManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values rules %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in rules.
func Default() *RulesManager {
	m, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("values: invalid built-in rules: %v", err))
	}
	return m
}

// Merge returns a manager holding the rules of m followed by those of other.
// Definitions of other override those of m with the same id.
func (m *RulesManager) Merge(other *RulesManager) *RulesManager {
	merged := &RulesManager{definitions: make(map[string][]properties.ValueHint)}
	for _, src := range []*RulesManager{m, other} {
		if src == nil {
			continue
		}
		for id, values := range src.definitions {
			merged.definitions[id] = values
		}
		merged.rules = append(merged.rules, src.rules...)
	}
	return merged
}

// Rules returns the number of rules.
func (m *RulesManager) Rules() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}

// GetValues implements properties.ValuesRulesManager. The document model is
// not consulted by YAML rules.
func (m *RulesManager) GetValues(property *properties.ItemMetadata, _ *model.PropertiesModel) []properties.ValueHint {
	if m == nil || property == nil {
		return nil
	}
	for _, r := range m.rules {
		if !r.Matcher.Match(property) {
			continue
		}
		if r.ValuesRef != "" {
			return m.definitions[r.ValuesRef]
		}
		return r.Values
	}
	return nil
}

func (m *RulesManager) validate(r Rule) error {
	if len(r.Matcher.Types) == 0 && len(r.Matcher.Names) == 0 {
		return fmt.Errorf("%w: empty matcher", ErrInvalidRule)
	}
	if r.ValuesRef != "" {
		if _, ok := m.definitions[r.ValuesRef]; !ok {
			return fmt.Errorf("%w: unknown definition %q", ErrInvalidRule, r.ValuesRef)
		}
		return nil
	}
	if len(r.Values) == 0 {
		return fmt.Errorf("%w: no values", ErrInvalidRule)
	}
	return nil
}
