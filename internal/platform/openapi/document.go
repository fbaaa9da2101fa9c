// Package openapi builds an OpenAPI 3.0 document from route descriptors so the
// published API description is derived from the same table that registers the
// handlers.
package openapi

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const Version = "3.0.3"

// Document is the top-level OpenAPI document.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Server struct {
	URL string `json:"url" yaml:"url"`
}

type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

type Operation struct {
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required" yaml:"required"`
	Schema      *Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema  *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any     `json:"example,omitempty" yaml:"example,omitempty"`
}

// Schema is the subset of JSON Schema used by this service.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Example     any                `json:"example,omitempty" yaml:"example,omitempty"`
}

// Endpoint describes one route for documentation purposes.
type Endpoint struct {
	Method      string
	Path        string // gin syntax, e.g. /users/:id
	OperationID string
	Summary     string
	Tags        []string
	Params      []Param
	// Body is a zero value of the JSON request type, nil when there is no body.
	Body         any
	BodyRequired bool
	Responses    []Reply
}

// Param documents a path parameter.
type Param struct {
	Name        string
	Description string
}

// Reply documents one response status. Body nil means no content; a string
// Body is documented as text/plain with the string as example.
type Reply struct {
	Status      int
	Description string
	Body        any
}

// Build assembles a document from endpoints. Struct types referenced by bodies
// are emitted once under components/schemas and referenced by name.
func Build(info Info, servers []Server, tags []Tag, endpoints []Endpoint) Document {
	b := &builder{schemas: map[string]*Schema{}}
	doc := Document{
		OpenAPI: Version,
		Info:    info,
		Servers: servers,
		Tags:    tags,
		Paths:   map[string]PathItem{},
	}
	for _, ep := range endpoints {
		path := toOpenAPIPath(ep.Path)
		if doc.Paths[path] == nil {
			doc.Paths[path] = PathItem{}
		}
		doc.Paths[path][strings.ToLower(ep.Method)] = b.operation(ep)
	}
	if len(b.schemas) > 0 {
		doc.Components.Schemas = b.schemas
	}
	return doc
}

type builder struct {
	schemas map[string]*Schema
}

func (b *builder) operation(ep Endpoint) *Operation {
	op := &Operation{
		OperationID: ep.OperationID,
		Summary:     ep.Summary,
		Tags:        ep.Tags,
		Responses:   map[string]Response{},
	}
	for _, p := range ep.Params {
		op.Parameters = append(op.Parameters, Parameter{
			Name:        p.Name,
			In:          "path",
			Description: p.Description,
			Required:    true,
			Schema:      &Schema{Type: "string"},
		})
	}
	if ep.Body != nil {
		op.RequestBody = &RequestBody{
			Required: ep.BodyRequired,
			Content: map[string]MediaType{
				"application/json": {Schema: b.schemaFor(reflect.TypeOf(ep.Body))},
			},
		}
	}
	replies := append([]Reply(nil), ep.Responses...)
	sort.SliceStable(replies, func(i, j int) bool { return replies[i].Status < replies[j].Status })
	for _, r := range replies {
		desc := r.Description
		if desc == "" {
			desc = http.StatusText(r.Status)
		}
		resp := Response{Description: desc}
		switch body := r.Body.(type) {
		case nil:
		case string:
			resp.Content = map[string]MediaType{
				"text/plain": {Schema: &Schema{Type: "string"}, Example: body},
			}
		default:
			resp.Content = map[string]MediaType{
				"application/json": {Schema: b.schemaFor(reflect.TypeOf(body))},
			}
		}
		op.Responses[strconv.Itoa(r.Status)] = resp
	}
	return op
}

func (b *builder) schemaFor(t reflect.Type) *Schema {
	if t.Kind() == reflect.Pointer {
		return b.schemaFor(t.Elem())
	}
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: b.schemaFor(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object"}
	case reflect.Struct:
		name := t.Name()
		if name == "" {
			return b.structSchema(t)
		}
		if _, ok := b.schemas[name]; !ok {
			// Placeholder first so self-referencing types terminate.
			b.schemas[name] = &Schema{}
			*b.schemas[name] = *b.structSchema(t)
		}
		return &Schema{Ref: "#/components/schemas/" + name}
	default:
		return &Schema{}
	}
}

func (b *builder) structSchema(t reflect.Type) *Schema {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := jsonName(f)
		if skip {
			continue
		}
		prop := b.schemaFor(f.Type)
		if desc := f.Tag.Get("doc"); desc != "" && prop.Ref == "" {
			prop.Description = desc
		}
		if ex := f.Tag.Get("example"); ex != "" && prop.Ref == "" {
			prop.Example = ex
		}
		s.Properties[name] = prop
		if isRequired(f) {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, false
}

func isRequired(f reflect.StructField) bool {
	for _, rule := range strings.Split(f.Tag.Get("binding"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

// toOpenAPIPath rewrites gin ":name" segments to "{name}".
func toOpenAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			segments[i] = fmt.Sprintf("{%s}", seg[1:])
		}
	}
	return strings.Join(segments, "/")
}
