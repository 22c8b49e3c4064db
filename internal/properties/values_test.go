package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduit-lang/propls/internal/model"
)

type stubRules struct {
	values []ValueHint
	calls  int
	model  *model.PropertiesModel
}

func (s *stubRules) GetValues(property *ItemMetadata, m *model.PropertiesModel) []ValueHint {
	s.calls++
	s.model = m
	return s.values
}

func TestGetEnumsExplicitHint(t *testing.T) {
	property := &ItemMetadata{Name: "quarkus.log.level", Type: "boolean"}
	configuration := &ConfigurationMetadata{
		Hints: []*ItemHint{
			{Name: "quarkus.log.level", Values: []ValueHint{{Value: "INFO"}, {Value: "DEBUG"}}},
		},
	}
	rules := &stubRules{values: []ValueHint{{Value: "never"}}}

	values := GetEnums(property, configuration, nil, rules)
	assert.Equal(t, []ValueHint{{Value: "INFO"}, {Value: "DEBUG"}}, values)
	assert.Zero(t, rules.calls)
}

func TestGetEnumsHintName(t *testing.T) {
	property := &ItemMetadata{Name: "quarkus.log.category.{*}.level", HintName: "java.util.logging.Level"}
	configuration := &ConfigurationMetadata{
		Hints: []*ItemHint{
			{Name: "java.util.logging.Level", Values: []ValueHint{{Value: "FINE"}}},
		},
	}

	values := GetEnums(property, configuration, nil, nil)
	assert.Equal(t, []ValueHint{{Value: "FINE"}}, values)
}

func TestGetEnumsBoolean(t *testing.T) {
	rules := &stubRules{values: []ValueHint{{Value: "never"}}}

	for _, typ := range []string{"boolean", "java.lang.Boolean"} {
		t.Run(typ, func(t *testing.T) {
			property := &ItemMetadata{Name: "quarkus.ssl.native", Type: typ}
			assert.Equal(t, []ValueHint{{Value: "true"}, {Value: "false"}},
				GetEnums(property, &ConfigurationMetadata{}, nil, rules))
			assert.Equal(t, []ValueHint{{Value: "true"}, {Value: "false"}},
				GetEnums(property, nil, nil, nil))
		})
	}
	assert.Zero(t, rules.calls)
}

func TestGetEnumsRulesManager(t *testing.T) {
	property := &ItemMetadata{Name: "quarkus.log.console.level", Type: "java.util.logging.Level"}
	m := model.Parse("quarkus.log.console.level=INFO")
	rules := &stubRules{values: []ValueHint{{Value: "INFO"}}}

	values := GetEnums(property, &ConfigurationMetadata{}, m, rules)
	assert.Equal(t, []ValueHint{{Value: "INFO"}}, values)
	assert.Equal(t, 1, rules.calls)
	assert.Same(t, m, rules.model)
}

func TestGetEnumsAbsent(t *testing.T) {
	property := &ItemMetadata{Name: "quarkus.http.port", Type: "int"}
	assert.Nil(t, GetEnums(property, &ConfigurationMetadata{}, nil, nil))
	assert.Nil(t, GetEnums(property, &ConfigurationMetadata{}, nil, &stubRules{}))
	assert.Nil(t, GetEnums(nil, &ConfigurationMetadata{}, nil, nil))
}

func TestItemHintValue(t *testing.T) {
	hint := &ItemHint{Values: []ValueHint{{Value: "a", Description: "first"}}}

	v, ok := hint.Value("a")
	assert.True(t, ok)
	assert.Equal(t, "first", v.Description)

	_, ok = hint.Value("b")
	assert.False(t, ok)
}
