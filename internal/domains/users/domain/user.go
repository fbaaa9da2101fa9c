package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID        = errors.New("id is required")
	ErrEmptyFirstName = errors.New("first_name is required")
	ErrEmptyLastName  = errors.New("last_name is required")
	ErrEmptyEmail     = errors.New("email is required")
)

// User represents a stored user record.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// NewUser builds a user for the given id and validates the required profile fields.
func NewUser(id, firstName, lastName, email string) (*User, error) {
	user := &User{
		ID:        strings.TrimSpace(id),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the invariants a freshly created user must satisfy.
// All violations are joined so callers can report every missing field at once.
func (u *User) Validate() error {
	var errs []error
	if strings.TrimSpace(u.ID) == "" {
		errs = append(errs, ErrEmptyID)
	}
	if strings.TrimSpace(u.FirstName) == "" {
		errs = append(errs, ErrEmptyFirstName)
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs = append(errs, ErrEmptyLastName)
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, ErrEmptyEmail)
	}
	return errors.Join(errs...)
}

// UpdatePolicy decides how empty strings in a Patch are treated.
type UpdatePolicy int

const (
	// IgnoreEmpty skips fields whose new value is the empty string.
	IgnoreEmpty UpdatePolicy = iota
	// ApplyEmpty writes every supplied field, including empty strings.
	ApplyEmpty
)

func (p UpdatePolicy) String() string {
	if p == ApplyEmpty {
		return "apply-empty"
	}
	return "ignore-empty"
}

// Patch carries a partial update. A nil field was not supplied.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// Apply copies the supplied fields onto the user. The id is never touched.
func (u *User) Apply(patch Patch, policy UpdatePolicy) {
	set := func(dst *string, src *string) {
		if src == nil {
			return
		}
		if *src == "" && policy == IgnoreEmpty {
			return
		}
		*dst = *src
	}
	set(&u.FirstName, patch.FirstName)
	set(&u.LastName, patch.LastName)
	set(&u.Email, patch.Email)
}
