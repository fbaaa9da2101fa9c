package openapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type widget struct {
	ID    string `json:"id" doc:"generated id"`
	Name  string `json:"name" binding:"required" example:"gear"`
	Notes string `json:"-"`
}

func sampleEndpoints() []Endpoint {
	return []Endpoint{
		{
			Method: http.MethodGet, Path: "/widgets", OperationID: "listWidgets", Tags: []string{"Widgets"},
			Responses: []Reply{{Status: http.StatusOK, Body: []widget{}}},
		},
		{
			Method: http.MethodPost, Path: "/widgets", OperationID: "createWidget",
			Body: widget{}, BodyRequired: true,
			Responses: []Reply{{Status: http.StatusOK, Body: "gear has been added"}},
		},
		{
			Method: http.MethodDelete, Path: "/widgets/:id", OperationID: "deleteWidget",
			Params:    []Param{{Name: "id", Description: "The widget id"}},
			Responses: []Reply{{Status: http.StatusNotFound, Body: "Widget not found"}, {Status: http.StatusOK}},
		},
	}
}

func TestBuild_PathsAndComponents(t *testing.T) {
	doc := Build(Info{Title: "Widgets", Version: "1.0.0"}, []Server{{URL: "http://localhost:5001"}}, nil, sampleEndpoints())

	assert.Equal(t, Version, doc.OpenAPI)
	require.Contains(t, doc.Paths, "/widgets")
	require.Contains(t, doc.Paths, "/widgets/{id}")

	list := doc.Paths["/widgets"]["get"]
	require.NotNil(t, list)
	items := list.Responses["200"].Content["application/json"].Schema
	assert.Equal(t, "array", items.Type)
	assert.Equal(t, "#/components/schemas/widget", items.Items.Ref)

	schema := doc.Components.Schemas["widget"]
	require.NotNil(t, schema)
	assert.Equal(t, []string{"name"}, schema.Required)
	assert.NotContains(t, schema.Properties, "Notes")
	assert.Equal(t, "generated id", schema.Properties["id"].Description)
	assert.Equal(t, "gear", schema.Properties["name"].Example)

	create := doc.Paths["/widgets"]["post"]
	require.NotNil(t, create.RequestBody)
	assert.True(t, create.RequestBody.Required)
	assert.Equal(t, "gear has been added", create.Responses["200"].Content["text/plain"].Example)

	del := doc.Paths["/widgets/{id}"]["delete"]
	require.Len(t, del.Parameters, 1)
	assert.Equal(t, "path", del.Parameters[0].In)
	assert.True(t, del.Parameters[0].Required)
	assert.Equal(t, "OK", del.Responses["200"].Description)
	assert.Nil(t, del.Responses["200"].Content)
}

func TestHandler_ServesJSONYAMLAndUI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	doc := Build(Info{Title: "Widgets", Version: "1.0.0"}, nil, nil, sampleEndpoints())
	h, err := NewHandler(doc, "/api-docs/openapi.json")
	require.NoError(t, err)

	router := gin.New()
	h.Register(router, "/api-docs/")

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/api-docs/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, Version, decoded["openapi"])

	rec = get("/api-docs/openapi.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &fromYAML))
	assert.Contains(t, fromYAML.Paths, "/widgets/{id}")

	rec = get("/api-docs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Build(Info{Title: "T", Version: "1"}, nil, nil, nil)))
	assert.Contains(t, buf.String(), "openapi: 3.0.3")
}
