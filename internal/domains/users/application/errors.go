package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyFirstName) ||
		errors.Is(err, domain.ErrEmptyLastName) ||
		errors.Is(err, domain.ErrEmptyEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// FieldErrors flattens the field violations wrapped in err, keyed by JSON field name.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	for _, candidate := range []struct {
		field string
		err   error
	}{
		{"first_name", domain.ErrEmptyFirstName},
		{"last_name", domain.ErrEmptyLastName},
		{"email", domain.ErrEmptyEmail},
	} {
		if errors.Is(err, candidate.err) {
			fields[candidate.field] = "This field is required"
		}
	}
	return fields
}
