package app

import (
	"errors"
	"fmt"

	"github.com/seasonal/ladder/internal/adapters/repository"
)

// Sentinel kinds for service errors.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrDuplicateName = errors.New("name already exists")
	ErrInvalidGender = errors.New("invalid gender value")
	ErrInvalidRole   = errors.New("invalid role value")
	ErrSelfDemotion  = errors.New("cannot remove your own admin role")
	ErrEmptyRoster   = errors.New("players array must not be empty")
)

// DuplicateNameError reports a case-insensitive name collision.
type DuplicateNameError struct {
	Kind repository.Kind
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("A %s with the name %q already exists", e.Kind, e.Name)
}

// Is makes the error match ErrDuplicateName under errors.Is.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}
