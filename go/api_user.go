package userserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	userhttpmapper "github.com/Apurer/go-gin-users-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-users-api/internal/shared/errors"
)

// UserAPI implements the users section of the API.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

func toTransportUser(model User) userhttpmapper.User {
	return userhttpmapper.User{
		ID:        model.Id,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

func toTransportPatch(model UserPatch) userhttpmapper.UserPatch {
	return userhttpmapper.UserPatch{
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

func fromTransportUser(user userhttpmapper.User) User {
	return User{
		Id:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func fromTransportUsers(users []userhttpmapper.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, fromTransportUser(user))
	}
	return result
}

// Get /users
// Returns the list of all the users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportUsers(userhttpmapper.FromDomainUsers(users)))
}

// Get /users/:id
// Get the user by id
func (api *UserAPI) GetUserByID(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	user, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportUser(userhttpmapper.FromDomainUser(user)))
}

// Post /users
// Create a new user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := userhttpmapper.ToCreateInput(toTransportUser(payload))
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.String(http.StatusOK, "%s has been added to the Database", created.FirstName)
}

// Delete /users/:id
// Remove the user by id
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondUserError(c, err)
		return
	}
	c.String(http.StatusOK, "%s deleted successfully from database", id)
}

// Patch /users/:id
// Update the user by the id
func (api *UserAPI) UpdateUser(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	var payload UserPatch
	// An empty body is an empty patch.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}
	patch := userhttpmapper.ToDomainPatch(toTransportPatch(payload))
	if _, err := api.service.Update(c.Request.Context(), id, patch); err != nil {
		respondUserError(c, err)
		return
	}
	c.String(http.StatusOK, "User with the %s has been updated", id)
}

func bindUserID(c *gin.Context) (string, bool) {
	var id string
	// gin has already unescaped the path value; it must not be decoded again.
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationUndefined,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid format for parameter id: "+err.Error()))
		return "", false
	}
	return id, true
}
