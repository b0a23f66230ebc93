package route

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry and codec failures.
var (
	// ErrUnregisteredType indicates a (de)serialisation or view lookup for a
	// type identifier that has no registry entry.
	ErrUnregisteredType = errors.New("route type not registered")

	// ErrTypeMismatch indicates a stored payload does not have the type its
	// registry entry was registered for. Unreachable under correct
	// registration.
	ErrTypeMismatch = errors.New("route payload type mismatch")

	// ErrMalformedEnvelope indicates serialised route data missing its type
	// or payload field.
	ErrMalformedEnvelope = errors.New("malformed route envelope")
)

// RouteError carries the operation and type identifier a registry or codec
// failure occurred for.
type RouteError struct {
	Op     string // Operation that failed (e.g., "marshal", "unmarshal", "build")
	TypeID string // Type identifier involved, empty if unknown
	Err    error  // Underlying error
}

func (e *RouteError) Error() string {
	if e.TypeID != "" {
		return fmt.Sprintf("route: %s %s: %v", e.Op, e.TypeID, e.Err)
	}
	return fmt.Sprintf("route: %s: %v", e.Op, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// IsUnregistered checks if an error was caused by a missing registration.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredType)
}

// IsTypeMismatch checks if an error was caused by a payload type mismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
