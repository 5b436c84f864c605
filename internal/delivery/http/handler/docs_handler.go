package handler

import (
	"net/http"

	"patient-records-api/internal/openapi"
	"patient-records-api/pkg/response"
)

// DocsHandler serves the generated OpenAPI document. The document is
// assembled once at construction from the declared operation table, which
// mirrors the router's routes.
type DocsHandler struct {
	spec map[string]interface{}
}

func NewDocsHandler(version, baseURL string) *DocsHandler {
	g := openapi.NewGenerator("Patient API", version, baseURL)

	g.AddSchema("Patient", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":       map[string]interface{}{"type": "integer"},
			"age":      map[string]interface{}{"type": "integer"},
			"gender":   map[string]interface{}{"type": "string"},
			"address":  map[string]interface{}{"type": "string"},
			"phone_no": map[string]interface{}{"type": "string"},
			"user_id":  map[string]interface{}{"type": "integer"},
			"user":     map[string]interface{}{"$ref": "#/components/schemas/User"},
		},
	})
	g.AddSchema("User", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":    map[string]interface{}{"type": "integer"},
			"name":  map[string]interface{}{"type": "string"},
			"email": map[string]interface{}{"type": "string"},
		},
	})
	g.AddSchema("Message", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{"type": "string"},
		},
	})
	g.AddSchema("ValidationError", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{"type": "string"},
			"errors": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]interface{}{"type": "string"},
			},
		},
	})
	g.AddSchema("AuditLog", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":         map[string]interface{}{"type": "integer"},
			"user":       map[string]interface{}{"$ref": "#/components/schemas/User"},
			"action":     map[string]interface{}{"type": "string"},
			"metadata":   map[string]interface{}{"type": "object"},
			"created_at": map[string]interface{}{"type": "string", "format": "date-time"},
		},
	})
	g.AddSchema("AuditLogList", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"logs": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"$ref": "#/components/schemas/AuditLog"},
			},
			"total": map[string]interface{}{"type": "integer"},
		},
	})
	g.AddSchema("TokenPair", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"access_token":  map[string]interface{}{"type": "string"},
			"refresh_token": map[string]interface{}{"type": "string"},
			"expires_in":    map[string]interface{}{"type": "integer"},
		},
	})

	patientBody := map[string]interface{}{
		"type":     "object",
		"required": []string{"age", "gender", "address", "phone_no"},
		"properties": map[string]interface{}{
			"age":      map[string]interface{}{"type": "integer", "example": 30},
			"gender":   map[string]interface{}{"type": "string", "example": "male"},
			"address":  map[string]interface{}{"type": "string", "example": "123 Main St"},
			"phone_no": map[string]interface{}{"type": "string", "example": "1234567890"},
		},
	}

	idParam := openapi.Param{Name: "id", In: "path", Type: "integer", Required: true, Description: "Patient id"}

	g.AddOperation(openapi.Operation{
		Method: http.MethodGet, Path: "/api/patients",
		Summary: "Get all patients", Tag: "Patient", Secured: true,
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "List of patients", SchemaRef: "#/components/schemas/Patient", IsArray: true},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodGet, Path: "/api/patients/{id}",
		Summary: "Get a specific patient", Tag: "Patient", Secured: true,
		Params: []openapi.Param{idParam},
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "Patient details", SchemaRef: "#/components/schemas/Patient"},
			"404": {Description: "Patient not found", SchemaRef: "#/components/schemas/Message"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodPost, Path: "/api/patients",
		Summary: "Create a new patient", Tag: "Patient", Secured: true,
		RequestBody: patientBody,
		Responses: map[string]openapi.ResponseDef{
			"201": {Description: "Patient created successfully", SchemaRef: "#/components/schemas/Message"},
			"400": {Description: "Validation errors", SchemaRef: "#/components/schemas/ValidationError"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodPut, Path: "/api/patients/{id}",
		Summary: "Update a patient", Tag: "Patient", Secured: true,
		Params:      []openapi.Param{idParam},
		RequestBody: patientBody,
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "Patient updated successfully", SchemaRef: "#/components/schemas/Message"},
			"400": {Description: "Validation errors", SchemaRef: "#/components/schemas/ValidationError"},
			"404": {Description: "Patient not found", SchemaRef: "#/components/schemas/Message"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodDelete, Path: "/api/patients/{id}",
		Summary: "Delete a patient", Tag: "Patient", Secured: true,
		Params: []openapi.Param{idParam},
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "Patient deleted successfully", SchemaRef: "#/components/schemas/Message"},
			"404": {Description: "Patient not found", SchemaRef: "#/components/schemas/Message"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodGet, Path: "/api/audit-logs",
		Summary: "Get the audit trail", Tag: "Audit", Secured: true,
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "Audit log entries", SchemaRef: "#/components/schemas/AuditLogList"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodPost, Path: "/api/register",
		Summary: "Register a new user", Tag: "Auth",
		RequestBody: map[string]interface{}{
			"type":     "object",
			"required": []string{"name", "email", "password"},
			"properties": map[string]interface{}{
				"name":     map[string]interface{}{"type": "string"},
				"email":    map[string]interface{}{"type": "string"},
				"password": map[string]interface{}{"type": "string"},
			},
		},
		Responses: map[string]openapi.ResponseDef{
			"201": {Description: "User registered", SchemaRef: "#/components/schemas/TokenPair"},
			"400": {Description: "Validation errors", SchemaRef: "#/components/schemas/ValidationError"},
			"409": {Description: "Email already exists", SchemaRef: "#/components/schemas/Message"},
		},
	})
	g.AddOperation(openapi.Operation{
		Method: http.MethodPost, Path: "/api/login",
		Summary: "Login", Tag: "Auth",
		RequestBody: map[string]interface{}{
			"type":     "object",
			"required": []string{"email", "password"},
			"properties": map[string]interface{}{
				"email":    map[string]interface{}{"type": "string"},
				"password": map[string]interface{}{"type": "string"},
			},
		},
		Responses: map[string]openapi.ResponseDef{
			"200": {Description: "Token pair", SchemaRef: "#/components/schemas/TokenPair"},
			"401": {Description: "Invalid credentials", SchemaRef: "#/components/schemas/Message"},
		},
	})

	return &DocsHandler{spec: g.GenerateSpec()}
}

func (h *DocsHandler) ServeDocs(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.spec)
}
