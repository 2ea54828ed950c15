package schema

// ResolveField returns the definition of the field called name on parent.
//
// __schema and __type resolve only on the query root; __typename resolves
// on every object, interface and union. Otherwise the first declared
// field with exactly that name wins. Non-composite parents and unknown
// names give nil.
func (s *Schema) ResolveField(parent Type, name string) *FieldDefinition {
	if s.Query != nil && parent == Type(s.Query) {
		switch name {
		case SchemaMetaField.Name:
			return SchemaMetaField
		case TypeMetaField.Name:
			return TypeMetaField
		}
	}

	switch parent := parent.(type) {
	case *Object, *Interface, *Union:
		if name == TypeNameMetaField.Name {
			return TypeNameMetaField
		}
		for _, f := range Fields(parent) {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

// ResolveArgument returns the first definition in defs named name, or nil.
func ResolveArgument(defs []*ArgumentDefinition, name string) *ArgumentDefinition {
	for _, def := range defs {
		if def.Name == name {
			return def
		}
	}
	return nil
}
