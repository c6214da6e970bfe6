// Package apperrors defines the closed set of error kinds the service layer
// reports and the HTTP status each one maps to at the boundary.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies a service-layer failure.
type Kind string

const (
	KindValidation         Kind = "validation_failed"
	KindDuplicateUsername  Kind = "duplicate_username"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindDuplicateTag       Kind = "duplicate_tag"
	KindDuplicateLink      Kind = "duplicate_link"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidToken       Kind = "invalid_token"
	KindInvalidUser        Kind = "invalid_user"
	KindUnclassified       Kind = "unclassified"
)

// Error carries a kind, a safe user-facing message, and optionally the field
// that failed validation.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation reports a malformed field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func DuplicateUsername() *Error {
	return &Error{Kind: KindDuplicateUsername, Message: "Cannot create user, a user with that username already exists"}
}

func DuplicateEmail() *Error {
	return &Error{Kind: KindDuplicateEmail, Message: "Cannot create user, a user with that email address already exists"}
}

func DuplicateTag() *Error {
	return &Error{Kind: KindDuplicateTag, Message: "A tag with this text already exists"}
}

func DuplicateLink() *Error {
	return &Error{Kind: KindDuplicateLink, Message: "You already have a link saved with this url"}
}

// InvalidCredentials covers both unknown username and wrong password, so the
// caller cannot tell which check failed.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid Credentials"}
}

func InvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid Token"}
}

func InvalidUser() *Error {
	return &Error{Kind: KindInvalidUser, Message: "Invalid User"}
}

// KindOf returns the kind of err, or KindUnclassified for anything that is
// not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnclassified
}

// StatusOf maps an error to the HTTP status the boundary should respond with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicateUsername, KindDuplicateEmail, KindDuplicateTag, KindDuplicateLink:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindInvalidToken, KindInvalidUser:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
