package userserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-users-api/internal/platform/openapi"
	apierrors "github.com/Apurer/go-gin-users-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc

	Summary      string
	Tags         []string
	Params       []openapi.Param
	Body         any
	BodyRequired bool
	Responses    []openapi.Reply
}

// ApiHandleFunctions groups the handlers mounted by NewRouter.
type ApiHandleFunctions struct {
	// Routes for the users tag
	UserAPI UserAPI
	// Routes without a tag
	DefaultAPI DefaultAPI
}

const (
	// DocsPath is where the Swagger UI and raw documents are mounted.
	DocsPath = "/api-docs"

	DefaultDocsTitle   = "Basic Api - Persona Crud"
	DefaultDocsVersion = "1.0.0"
	DefaultServerURL   = "http://localhost:5001"
)

// DocsOptions describe the generated API document.
type DocsOptions struct {
	Title       string
	Version     string
	Description string
	ServerURLs  []string
}

// RouterOption customizes router construction.
type RouterOption func(*DocsOptions)

// WithDocsInfo overrides the title and version of the API document.
func WithDocsInfo(title, version string) RouterOption {
	return func(o *DocsOptions) {
		if title != "" {
			o.Title = title
		}
		if version != "" {
			o.Version = version
		}
	}
}

// WithServerURLs replaces the servers advertised in the API document.
func WithServerURLs(urls ...string) RouterOption {
	return func(o *DocsOptions) {
		if len(urls) > 0 {
			o.ServerURLs = urls
		}
	}
}

func defaultDocsOptions() DocsOptions {
	return DocsOptions{
		Title:       DefaultDocsTitle,
		Version:     DefaultDocsVersion,
		Description: "A simple CRUD API for user records",
		ServerURLs:  []string{DefaultServerURL},
	}
}

// NewRouter returns a new router with recovery that answers with problem details.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	router := gin.New()
	router.Use(Recovery())
	return NewRouterWithGinEngine(router, handleFunctions, opts...)
}

// Recovery turns a panic in a handler into a 500 problem response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		respondProblem(c, apierrors.ErrInternal.WithDetail(fmt.Sprint(recovered)))
	})
}

// NewRouterWithGinEngine adds the routes and the API docs to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	routes := getRoutes(handleFunctions)
	for _, route := range routes {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}

	docs := openapi.MustHandler(OpenAPIDocument(routes, opts...), DocsPath+"/openapi.json")
	docs.Register(router, DocsPath)
	return router
}

// DefaultHandleFunc is the default handler; it returns http.StatusNotImplemented.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// OpenAPIDocument renders the route table into an OpenAPI document.
func OpenAPIDocument(routes []Route, opts ...RouterOption) openapi.Document {
	cfg := defaultDocsOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	servers := make([]openapi.Server, 0, len(cfg.ServerURLs))
	for _, url := range cfg.ServerURLs {
		servers = append(servers, openapi.Server{URL: url})
	}
	endpoints := make([]openapi.Endpoint, 0, len(routes))
	for _, route := range routes {
		if len(route.Tags) == 0 {
			continue
		}
		endpoints = append(endpoints, openapi.Endpoint{
			Method:       route.Method,
			Path:         route.Pattern,
			OperationID:  route.Name,
			Summary:      route.Summary,
			Tags:         route.Tags,
			Params:       route.Params,
			Body:         route.Body,
			BodyRequired: route.BodyRequired,
			Responses:    route.Responses,
		})
	}
	return openapi.Build(
		openapi.Info{Title: cfg.Title, Version: cfg.Version, Description: cfg.Description},
		servers,
		[]openapi.Tag{{Name: tagUsers, Description: "The users managing API"}},
		endpoints,
	)
}

const tagUsers = "Users"

var userIDParam = openapi.Param{Name: "id", Description: "The user id"}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	userNotFound := openapi.Reply{Status: http.StatusNotFound, Description: "The user was not found", Body: MessageUserNotFound}
	return []Route{
		{
			Name:        "Index",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: handleFunctions.DefaultAPI.Index,
		},
		{
			Name:        "Healthz",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: handleFunctions.DefaultAPI.Healthz,
		},
		{
			Name:        "ListUsers",
			Method:      http.MethodGet,
			Pattern:     "/users",
			HandlerFunc: handleFunctions.UserAPI.ListUsers,
			Summary:     "Returns the list of all the users",
			Tags:        []string{tagUsers},
			Responses: []openapi.Reply{
				{Status: http.StatusOK, Description: "The list of the users", Body: []User{}},
			},
		},
		{
			Name:         "CreateUser",
			Method:       http.MethodPost,
			Pattern:      "/users",
			HandlerFunc:  handleFunctions.UserAPI.CreateUser,
			Summary:      "Create a new user",
			Tags:         []string{tagUsers},
			Body:         User{},
			BodyRequired: true,
			Responses: []openapi.Reply{
				{Status: http.StatusOK, Description: "The user was successfully created", Body: "John has been added to the Database"},
				{Status: http.StatusBadRequest, Description: "A required field is missing or the body is not JSON", Body: apierrors.ProblemDetail{}},
				{Status: http.StatusInternalServerError, Description: "Some server error", Body: apierrors.ProblemDetail{}},
			},
		},
		{
			Name:        "GetUserByID",
			Method:      http.MethodGet,
			Pattern:     "/users/:id",
			HandlerFunc: handleFunctions.UserAPI.GetUserByID,
			Summary:     "Get the user by id",
			Tags:        []string{tagUsers},
			Params:      []openapi.Param{userIDParam},
			Responses: []openapi.Reply{
				{Status: http.StatusOK, Description: "The user description by id", Body: User{}},
				userNotFound,
			},
		},
		{
			Name:         "UpdateUser",
			Method:       http.MethodPatch,
			Pattern:      "/users/:id",
			HandlerFunc:  handleFunctions.UserAPI.UpdateUser,
			Summary:      "Update the user by the id",
			Tags:         []string{tagUsers},
			Params:       []openapi.Param{userIDParam},
			Body:         UserPatch{},
			BodyRequired: false,
			Responses: []openapi.Reply{
				{Status: http.StatusOK, Description: "The user was updated", Body: "User with the d5fE_asz has been updated"},
				{Status: http.StatusBadRequest, Description: "The body is not JSON", Body: apierrors.ProblemDetail{}},
				userNotFound,
			},
		},
		{
			Name:        "DeleteUser",
			Method:      http.MethodDelete,
			Pattern:     "/users/:id",
			HandlerFunc: handleFunctions.UserAPI.DeleteUser,
			Summary:     "Remove the user by id",
			Tags:        []string{tagUsers},
			Params:      []openapi.Param{userIDParam},
			Responses: []openapi.Reply{
				{Status: http.StatusOK, Description: "The user was deleted", Body: "d5fE_asz deleted successfully from database"},
				userNotFound,
			},
		},
	}
}
