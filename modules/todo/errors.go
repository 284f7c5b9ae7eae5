package todo

import "errors"

// Sentinel errors for store operations. Both wrap the driver message.
var (
	// ErrConstraint is returned when the store rejects a record, e.g. empty content.
	ErrConstraint = errors.New("constraint violation")

	// ErrStorage is returned for every other database or transport failure.
	ErrStorage = errors.New("storage failure")
)

// ErrorKind names the store error variant carried by err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConstraint):
		return "constraint"
	default:
		return "storage"
	}
}
