// Package repository contains the data access layer. This file defines
// sentinel errors shared across repositories so that handlers can map
// each failure to the right HTTP status without inspecting SQL errors.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique index on
// users.email. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when an operation targets a user row that
// no longer exists. Handlers translate this into HTTP 404 (or 401 when
// it surfaces during authentication).
var ErrUserNotFound = errors.New("user not found")

// ErrEventNotFound is returned when an event lookup matches no row.
// Handlers translate this into HTTP 404.
var ErrEventNotFound = errors.New("event not found")
