package openapi

import "strings"

// Param describes a single operation parameter.
type Param struct {
	Name        string
	In          string
	Type        string
	Required    bool
	Description string
}

// ResponseDef describes one declared response of an operation.
type ResponseDef struct {
	Description string
	SchemaRef   string
	IsArray     bool
}

// Operation is one declared route of the API. The documentation endpoint
// serves whatever operations were registered, so the route table and the
// document stay in one place.
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Tag         string
	Secured     bool
	Params      []Param
	RequestBody map[string]interface{}
	Responses   map[string]ResponseDef
}

// Generator builds an OpenAPI 3.0 document from declared operations.
type Generator struct {
	title      string
	version    string
	baseURL    string
	operations []Operation
	schemas    map[string]interface{}
}

// NewGenerator creates a new OpenAPI document generator.
func NewGenerator(title, version, baseURL string) *Generator {
	return &Generator{
		title:   title,
		version: version,
		baseURL: baseURL,
		schemas: make(map[string]interface{}),
	}
}

// AddSchema registers a named component schema.
func (g *Generator) AddSchema(name string, schema map[string]interface{}) {
	g.schemas[name] = schema
}

// AddOperation registers a route in the document.
func (g *Generator) AddOperation(op Operation) {
	g.operations = append(g.operations, op)
}

// GenerateSpec produces the OpenAPI 3.0 document as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})

	for _, op := range g.operations {
		pathItem, ok := paths[op.Path].(map[string]interface{})
		if !ok {
			pathItem = make(map[string]interface{})
			paths[op.Path] = pathItem
		}
		pathItem[strings.ToLower(op.Method)] = g.buildOperation(op)
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":   g.title,
			"version": g.version,
		},
		"servers": []map[string]interface{}{
			{"url": g.baseURL},
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": g.schemas,
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]interface{}{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
		},
	}
}

func (g *Generator) buildOperation(op Operation) map[string]interface{} {
	operation := map[string]interface{}{
		"summary":     op.Summary,
		"operationId": operationID(op),
		"tags":        []string{op.Tag},
		"responses":   g.buildResponses(op.Responses),
	}

	if len(op.Params) > 0 {
		operation["parameters"] = g.buildParams(op.Params)
	}

	if op.RequestBody != nil {
		operation["requestBody"] = map[string]interface{}{
			"required": true,
			"content": map[string]interface{}{
				"application/json": map[string]interface{}{
					"schema": op.RequestBody,
				},
			},
		}
	}

	if op.Secured {
		operation["security"] = []map[string]interface{}{
			{"bearerAuth": []string{}},
		}
	}

	return operation
}

func (g *Generator) buildParams(params []Param) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(params))
	for _, p := range params {
		out = append(out, map[string]interface{}{
			"name":        p.Name,
			"in":          p.In,
			"required":    p.Required,
			"description": p.Description,
			"schema":      map[string]interface{}{"type": p.Type},
		})
	}
	return out
}

func (g *Generator) buildResponses(responses map[string]ResponseDef) map[string]interface{} {
	out := make(map[string]interface{}, len(responses))
	for code, def := range responses {
		resp := map[string]interface{}{
			"description": def.Description,
		}
		if def.SchemaRef != "" {
			var schema map[string]interface{}
			if def.IsArray {
				schema = map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"$ref": def.SchemaRef},
				}
			} else {
				schema = map[string]interface{}{"$ref": def.SchemaRef}
			}
			resp["content"] = map[string]interface{}{
				"application/json": map[string]interface{}{
					"schema": schema,
				},
			}
		}
		out[code] = resp
	}
	return out
}

func operationID(op Operation) string {
	path := strings.NewReplacer("/", " ", "{", "", "}", "").Replace(op.Path)
	words := strings.Fields(strings.ToLower(op.Method) + path)
	for i := 1; i < len(words); i++ {
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}
	return strings.Join(words, "")
}
