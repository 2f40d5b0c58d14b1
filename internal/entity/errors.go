package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventDatePast = errors.New("event date cannot be in the past")
	ErrNotCreator    = errors.New("only the event creator may modify it")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyBooked   = errors.New("event already booked by this user")

	// Session errors
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session token expired")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized access")
)

// AuthError is a registration/login/profile failure reported by the
// identity provider.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "auth error: " + e.Code
	}
	return fmt.Sprintf("auth error: %s: %s", e.Code, e.Message)
}

// Identity provider error codes surfaced to users.
const (
	AuthCodeEmailExists        = "EMAIL_EXISTS"
	AuthCodeInvalidCredentials = "INVALID_CREDENTIALS"
	AuthCodeWeakPassword       = "WEAK_PASSWORD"
	AuthCodePopupClosed        = "POPUP_CLOSED"
	AuthCodeNetwork            = "NETWORK"
	AuthCodeNoSession          = "NO_SESSION"
)

// NetworkError is any failed HTTP call to a collaborator.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError is an unsuccessful detail lookup; the router's error
// boundary renders the not-found view for it.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError collects per-field form errors. It is produced before any
// network call is issued.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f + ": " + e.Fields[f])
	}
	return b.String()
}

// ErrOrNil lets validators build up errors and return nil when none occurred.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
