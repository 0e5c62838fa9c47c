package domain

import "errors"

// ErrValidation is the root of all entity validation errors; check for it
// with errors.Is when the specific field does not matter.
var ErrValidation = errors.New("validation failed")
