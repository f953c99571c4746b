// Package repository defines sentinel error values shared across the data
// access layer. Handlers use them to pick the client-facing status for a
// failure: reference errors become 400s, not-found errors 404s and conflict
// errors 409s. Raw storage errors (including unique-constraint races caught
// as MySQL error 1062) are always translated into one of these before they
// leave the package.
package repository

import "errors"

// ErrConflict is returned when a write collides with existing state: a
// reservation date range overlapping another stay, or a department delete
// blocked by reservations that still reference it.
var ErrConflict = errors.New("conflicts with existing records")

// ErrUnknownDepartment is returned when a reservation or inventory item
// references a department id that does not exist.
var ErrUnknownDepartment = errors.New("department does not exist")

// ErrUnknownPlatform is returned when origin_platform_id references a
// booking platform that does not exist.
var ErrUnknownPlatform = errors.New("booking platform does not exist")

// ErrDuplicateUser is returned when a username or email collides with an
// existing user, including constraint-violation races at commit time.
var ErrDuplicateUser = errors.New("username or email already registered")

// ErrPlatformExists is returned when a booking platform name collides with
// an existing one.
var ErrPlatformExists = errors.New("platform name already exists")
