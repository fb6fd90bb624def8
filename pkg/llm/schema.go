package llm

type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema is the subset of OpenAPI / JSON Schema the providers understand.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	// PropertyOrdering keeps generated objects in a stable field order.
	PropertyOrdering []string
	Items            *Schema
	Required         []string
}

// JSONSchema renders the schema as a plain JSON Schema document.
func (s *Schema) JSONSchema() map[string]interface{} {
	if s == nil {
		return nil
	}
	out := map[string]interface{}{
		"type": string(s.Type),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}
