package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// Handler serves a rendered document. Rendering happens once at construction.
type Handler struct {
	jsonDoc []byte
	yamlDoc []byte
	uiPage  []byte
}

// NewHandler renders doc as JSON, YAML and a Swagger UI page whose spec URL is specURL.
func NewHandler(doc Document, specURL string) (*Handler, error) {
	jsonDoc, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render openapi json: %w", err)
	}
	var yamlBuf bytes.Buffer
	if err := WriteYAML(&yamlBuf, doc); err != nil {
		return nil, err
	}
	var page bytes.Buffer
	if err := swaggerUITemplate.Execute(&page, struct{ Title, SpecURL string }{doc.Info.Title, specURL}); err != nil {
		return nil, fmt.Errorf("render swagger ui: %w", err)
	}
	return &Handler{jsonDoc: jsonDoc, yamlDoc: yamlBuf.Bytes(), uiPage: page.Bytes()}, nil
}

// MustHandler is like NewHandler but panics if the document cannot be rendered.
func MustHandler(doc Document, specURL string) *Handler {
	h, err := NewHandler(doc, specURL)
	if err != nil {
		panic(err)
	}
	return h
}

// WriteYAML encodes doc as YAML with two-space indentation.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render openapi yaml: %w", err)
	}
	return enc.Close()
}

// Register mounts the UI at base and the documents at base/openapi.json and base/openapi.yaml.
func (h *Handler) Register(routes gin.IRoutes, base string) {
	base = "/" + strings.Trim(base, "/")
	routes.GET(base, h.UI)
	routes.GET(base+"/openapi.json", h.JSON)
	routes.GET(base+"/openapi.yaml", h.YAML)
}

func (h *Handler) JSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.jsonDoc)
}

func (h *Handler) YAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", h.yamlDoc)
}

func (h *Handler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.uiPage)
}

var swaggerUITemplate = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))
