package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports bad caller input: date order, date format,
	// frequency value, or an empty location. It is returned by NewFetcher
	// before any network call is made.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSchemaMismatch reports row/column inconsistency within an API
	// response: a daily record without a date, or an hourly-record count
	// that disagrees with the requested frequency.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// WriteError reports a failed CSV write. The in-memory result table is still
// valid when this error is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
