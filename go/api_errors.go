package userserver

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	userapp "github.com/Apurer/go-gin-users-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-users-api/internal/shared/errors"
)

// MessageUserNotFound is the plain-text body of every 404 on /users/{id}.
const MessageUserNotFound = "User not found"

var problems = apierrors.NewChainedResponder("", mapUserError)

func init() {
	// Report validation failures under their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	problems.Respond(c, problem)
}

func respondUserError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, userports.ErrNotFound) {
		c.String(http.StatusNotFound, MessageUserNotFound)
		return
	}
	_ = c.Error(err)
	problems.RespondError(c, err)
}

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(userapp.FieldErrors(err)).WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrDuplicateID):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

// respondBindError distinguishes failed field rules from undecodable bodies.
func respondBindError(c *gin.Context, err error) {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make(map[string]string, len(invalid))
		for _, fe := range invalid {
			if fe.Tag() == "required" {
				fields[fe.Field()] = "This field is required"
				continue
			}
			fields[fe.Field()] = "Failed the " + fe.Tag() + " rule"
		}
		respondProblem(c, apierrors.NewValidationProblem(fields).WithDetail("request body failed validation"))
		return
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail("malformed JSON body: "+err.Error()))
}
