package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = &notFoundError{"User not found"}
	ErrFeedNotFound       = &notFoundError{"Feed not found"}
	ErrCommentNotFound    = &notFoundError{"Comment not found"}
	ErrFileNotFound       = &notFoundError{"File not found"}
	ErrOccupationNotFound = &notFoundError{"Occupation not found"}

	ErrInvalidShowScope  = &validationError{"Show scope must be one of all, follower, me"}
	ErrSelfFollow        = &validationError{"You cannot follow yourself"}
	ErrCommentNotInFeed  = &validationError{"Comment does not belong to this feed"}
	ErrInterestsExceeded = &validationError{"At most 3 interests are allowed"}
	ErrUnknownFile       = &validationError{"File does not belong to this feed"}
	ErrDuplicateUID      = &validationError{"UID already taken"}
	ErrDuplicateEmail    = &validationError{"Email already taken"}
	ErrRequiredContent   = &validationError{"Content or at least one image is required"}

	// ErrUnauthorized is returned when the caller may not see or change a resource.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotVisible is an ErrUnauthorized for feeds outside the viewer's scopes.
	ErrNotVisible = fmt.Errorf("%w: feed is not visible to the viewer", ErrUnauthorized)
)

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func IsValidationError(err error) bool {
	var v *validationError
	return errors.As(err, &v)
}

// notFoundOr maps gorm.ErrRecordNotFound to the given sentinel.
func notFoundOr(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
