// Package repository contains the demo backend's data access layer.  The
// sentinel errors below let handlers map failure scenarios to HTTP statuses
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist.  Handlers translate
// it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when creating an account with an email that is
// already registered.  Handlers translate it to HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as filing a second deletion request for the same
// project.  Handlers translate it to HTTP 409.
var ErrConflict = errors.New("conflict")
