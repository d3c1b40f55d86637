package domain

import "errors"

// ErrSessionNotFound is returned when a user ID has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoSpecs is returned when a quote is requested with an empty spec list.
var ErrNoSpecs = errors.New("no LED specs to quote")

// ErrInconsistentSpec is returned when a spec that should have been validated
// does not decompose into whole modules. It signals a validator bug, not bad
// user input.
var ErrInconsistentSpec = errors.New("LED spec is not a whole number of modules")
