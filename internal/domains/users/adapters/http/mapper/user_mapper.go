package mapper

import (
	userdomain "github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
)

// User represents the transport-level user payload.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// UserPatch is the transport form of a partial update; nil fields were absent.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// ToCreateInput drops the id and keeps the client-supplied profile fields.
func ToCreateInput(model User) userports.CreateUserInput {
	return userports.CreateUserInput{
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

// ToDomainPatch converts a transport patch to its domain counterpart.
func ToDomainPatch(model UserPatch) userdomain.Patch {
	return userdomain.Patch{
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
