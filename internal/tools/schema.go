package tools

// Param describes one tool argument.
type Param struct {
	Name        string
	Type        string // JSON schema type: string, integer, object, array
	Items       string // element type for arrays
	Description string
	Required    bool
	Default     any
}

// Property is the JSON schema of one argument.
type Property struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Default     any            `json:"default,omitempty"`
	Items       map[string]any `json:"items,omitempty"`
}

// Schema is the JSON schema of a tool's argument object.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Definition is the published description of a tool.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"input_schema"`
}

func schemaOf(params []Param) Schema {
	s := Schema{Type: "object", Properties: make(map[string]Property, len(params))}
	for _, p := range params {
		prop := Property{Type: p.Type, Description: p.Description, Default: p.Default}
		if p.Type == "array" && p.Items != "" {
			prop.Items = map[string]any{"type": p.Items}
		}
		s.Properties[p.Name] = prop
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// Shared argument declarations.
var (
	keywordParam = Param{
		Name: "keyword", Type: "string",
		Description: "Full-text keyword; empty matches every document. Alias: query.",
	}
	queryParam = Param{
		Name: "query", Type: "string",
		Description: "Alias of keyword.",
	}
	filterParam = Param{
		Name: "filter_conditions", Type: "object",
		Description: "Field → value. A scalar means equality, a list means membership, " +
			"an object {gt|gte|lt|lte|ne: value} means comparison. All entries are ANDed.",
	}
	limitParam = Param{
		Name: "limit", Type: "integer", Default: 20,
		Description: "Maximum number of hits.",
	}
	offsetParam = Param{
		Name: "offset", Type: "integer", Default: 0,
		Description: "Number of hits to skip.",
	}
	attributesParam = Param{
		Name: "attributes_to_retrieve", Type: "array", Items: "string",
		Description: "Fields to return; all fields when omitted.",
	}
	sortParam = Param{
		Name: "sort", Type: "array", Items: "string",
		Description: "Sort tokens field[:asc|desc], e.g. createdAt:desc.",
	}
	indexParam = Param{
		Name: "index", Type: "string", Required: true,
		Description: "Index name.",
	}
)

var searchParams = []Param{
	keywordParam, queryParam, filterParam, limitParam, offsetParam, attributesParam, sortParam,
}
