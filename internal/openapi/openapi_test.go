package openapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *Generator {
	g := NewGenerator("Patient API", "1.0.0", "http://localhost:8080")
	g.AddSchema("Patient", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":  map[string]interface{}{"type": "integer"},
			"age": map[string]interface{}{"type": "integer"},
		},
	})
	g.AddOperation(Operation{
		Method: http.MethodGet, Path: "/api/patients",
		Summary: "Get all patients", Tag: "Patient", Secured: true,
		Responses: map[string]ResponseDef{
			"200": {Description: "List of patients", SchemaRef: "#/components/schemas/Patient", IsArray: true},
		},
	})
	g.AddOperation(Operation{
		Method: http.MethodPost, Path: "/api/patients",
		Summary: "Create a new patient", Tag: "Patient", Secured: true,
		RequestBody: map[string]interface{}{"type": "object"},
		Responses: map[string]ResponseDef{
			"201": {Description: "Created"},
		},
	})
	g.AddOperation(Operation{
		Method: http.MethodGet, Path: "/api/patients/{id}",
		Summary: "Get a specific patient", Tag: "Patient", Secured: true,
		Params: []Param{{Name: "id", In: "path", Type: "integer", Required: true}},
		Responses: map[string]ResponseDef{
			"200": {Description: "Patient details", SchemaRef: "#/components/schemas/Patient"},
			"404": {Description: "Patient not found"},
		},
	})
	return g
}

func TestGenerateSpec_Structure(t *testing.T) {
	spec := newTestGenerator().GenerateSpec()

	assert.Equal(t, "3.0.3", spec["openapi"])

	info, ok := spec["info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Patient API", info["title"])
	assert.Equal(t, "1.0.0", info["version"])

	servers, ok := spec["servers"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, servers, 1)
	assert.Equal(t, "http://localhost:8080", servers[0]["url"])
}

func TestGenerateSpec_GroupsMethodsByPath(t *testing.T) {
	spec := newTestGenerator().GenerateSpec()

	paths, ok := spec["paths"].(map[string]interface{})
	require.True(t, ok)

	collection, ok := paths["/api/patients"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, collection, "get")
	assert.Contains(t, collection, "post")

	item, ok := paths["/api/patients/{id}"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, item, "get")
}

func TestGenerateSpec_SecuredOperationsReferenceBearerAuth(t *testing.T) {
	spec := newTestGenerator().GenerateSpec()

	components := spec["components"].(map[string]interface{})
	schemes := components["securitySchemes"].(map[string]interface{})
	bearer, ok := schemes["bearerAuth"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http", bearer["type"])
	assert.Equal(t, "bearer", bearer["scheme"])

	paths := spec["paths"].(map[string]interface{})
	op := paths["/api/patients"].(map[string]interface{})["get"].(map[string]interface{})
	security, ok := op["security"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, security, 1)
	assert.Contains(t, security[0], "bearerAuth")
}

func TestGenerateSpec_PathParams(t *testing.T) {
	spec := newTestGenerator().GenerateSpec()

	paths := spec["paths"].(map[string]interface{})
	op := paths["/api/patients/{id}"].(map[string]interface{})["get"].(map[string]interface{})

	params, ok := op["parameters"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0]["name"])
	assert.Equal(t, "path", params[0]["in"])
	assert.Equal(t, true, params[0]["required"])
}

func TestGenerateSpec_SerializesToJSON(t *testing.T) {
	spec := newTestGenerator().GenerateSpec()

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var roundTrip map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, "3.0.3", roundTrip["openapi"])
}

func TestOperationID(t *testing.T) {
	assert.Equal(t, "getApiPatients", operationID(Operation{Method: http.MethodGet, Path: "/api/patients"}))
	assert.Equal(t, "getApiPatientsId", operationID(Operation{Method: http.MethodGet, Path: "/api/patients/{id}"}))
	assert.Equal(t, "deleteApiPatientsId", operationID(Operation{Method: http.MethodDelete, Path: "/api/patients/{id}"}))
}
