// Package repository defines error types that are reused across
// repositories. These sentinel values allow handlers to distinguish
// between failure scenarios: ErrLocked maps to HTTP 403 and, crucially,
// suppresses the notification side effect, while ErrEmailExists maps
// to HTTP 409 on signup.
package repository

import "errors"

// ErrEmailExists is returned when an account insert collides with an
// existing email address.
var ErrEmailExists = errors.New("email already exists")

// ErrLocked is returned when a sign-off record has consumed both of its
// permitted overwrites. The record is immutable from then on and the
// submission must be rejected without side effects.
var ErrLocked = errors.New("sign-off record locked")
