package properties

import "github.com/conduit-lang/propls/internal/model"

// BooleanEnums is the value set of boolean properties.
var BooleanEnums = &ItemHint{
	Name: "boolean",
	Values: []ValueHint{
		{Value: "true"},
		{Value: "false"},
	},
}

// ValuesRulesManager supplies values for properties that have no explicit hint.
// A nil result means no values are known.
type ValuesRulesManager interface {
	GetValues(property *ItemMetadata, model *model.PropertiesModel) []ValueHint
}

// GetEnums returns the allowed values of property. The explicit hint
// registered in configuration wins, then the boolean convention, then the
// rules manager. It returns nil when none applies.
func GetEnums(property *ItemMetadata, configuration *ConfigurationMetadata, m *model.PropertiesModel, rules ValuesRulesManager) []ValueHint {
	if property == nil {
		return nil
	}
	if hint := configuration.GetHint(property); hint != nil {
		return hint.Values
	}
	if property.IsBooleanType() {
		return BooleanEnums.Values
	}
	if rules != nil {
		return rules.GetValues(property, m)
	}
	return nil
}
