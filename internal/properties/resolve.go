package properties

// FindProperty returns the first catalog entry whose pattern matches name. It
// returns nil without error when name is empty or nothing matches, and
// ErrNilCatalog when catalog is nil.
func FindProperty(name string, catalog Catalog) (*ItemMetadata, error) {
	if isNil(catalog) {
		return nil, ErrNilCatalog
	}
	if name == "" {
		return nil, nil
	}
	for _, property := range catalog.Properties() {
		if property != nil && Match(name, property.Name) {
			return property, nil
		}
	}
	return nil, nil
}

// FindProperties returns every catalog entry whose pattern matches name, in
// catalog order.
func FindProperties(name string, catalog Catalog) ([]*ItemMetadata, error) {
	if isNil(catalog) {
		return nil, ErrNilCatalog
	}
	if name == "" {
		return nil, nil
	}
	var found []*ItemMetadata
	for _, property := range catalog.Properties() {
		if property != nil && Match(name, property.Name) {
			found = append(found, property)
		}
	}
	return found, nil
}

// isNil also catches a nil *ConfigurationMetadata held in the interface.
func isNil(catalog Catalog) bool {
	if catalog == nil {
		return true
	}
	c, ok := catalog.(*ConfigurationMetadata)
	return ok && c == nil
}
