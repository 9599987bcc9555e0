package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and services translate them into domain errors:
//   - ErrNotFound: no document matched the lookup
//   - ErrConflict: a unique index rejected the write
//   - ErrUnavailable: the backing store could not be reached
//   - ErrInvalidState: the caller passed arguments the store cannot honour
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
