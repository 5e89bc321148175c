package diary

import "errors"

// ErrInvalidInput is returned, wrapped with details, when a record fails
// validation. Nothing is stored in that case.
var ErrInvalidInput = errors.New("invalid input")
