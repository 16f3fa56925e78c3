package services

import "errors"

// Sentinel errors forming the service error taxonomy. Handlers map these
// onto HTTP status codes; anything unrecognized becomes a 500.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")

	// Conflicts (mapped to 400, matching the original API)
	ErrDuplicateEmail    = errors.New("an account with this email already exists")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this course")
	ErrDuplicateCourse   = errors.New("course with this name or code already exists")
	ErrCourseHasFeedback = errors.New("cannot delete course with existing feedback")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
)
