package userserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageHomepage is the greeting served at the root path.
const MessageHomepage = "HELLO FROM HOMEPAGE"

// DefaultAPI serves the untagged routes.
type DefaultAPI struct{}

// NewDefaultAPI returns the handlers for / and /healthz.
func NewDefaultAPI() DefaultAPI {
	return DefaultAPI{}
}

// Get /
func (api *DefaultAPI) Index(c *gin.Context) {
	c.String(http.StatusOK, MessageHomepage)
}

// Get /healthz
// Liveness probe.
func (api *DefaultAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: "ok"})
}
