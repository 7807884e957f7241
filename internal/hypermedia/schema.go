package hypermedia

type Schema struct {
	Type       string              `json:"type"`
	Required   []string            `json:"required,omitempty"`
	Properties map[string]Property `json:"properties,omitempty"`
}

type Property struct {
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

func ObjectSchema(required ...string) *Schema {
	return &Schema{
		Type:       "object",
		Required:   required,
		Properties: make(map[string]Property),
	}
}

// Prop adds a property and returns the schema for chaining.
func (s *Schema) Prop(name, typ, description string) *Schema {
	s.Properties[name] = Property{Type: typ, Description: description}
	return s
}
