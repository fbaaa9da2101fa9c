package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userdomain "github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

func TestToCreateInput_DropsID(t *testing.T) {
	input := ToCreateInput(User{ID: "client-id", FirstName: "John", LastName: "Doe", Email: "john@x.com"})

	assert.Equal(t, "John", input.FirstName)
	assert.Equal(t, "Doe", input.LastName)
	assert.Equal(t, "john@x.com", input.Email)
}

func TestFromDomainUsers_EmptyIsNotNil(t *testing.T) {
	out := FromDomainUsers(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFromDomainUser_Nil(t *testing.T) {
	assert.Equal(t, User{}, FromDomainUser(nil))
	assert.Equal(t, User{ID: "a", Email: "e"}, FromDomainUser(&userdomain.User{ID: "a", Email: "e"}))
}
