package toolset

import (
	"errors"
	"fmt"
)

// ErrNotAllowed indicates a toolset id that is not on the configured
// allow-list. The loader is never consulted for such ids.
var ErrNotAllowed = errors.New("toolset not allowed")

// ErrNotFound indicates that no loader strategy could resolve a toolset id.
// A not-found result is never cached, so a later registration or
// configuration change is picked up on the next access.
var ErrNotFound = errors.New("toolset not found")

// LoadError indicates that a loader strategy matched a toolset id but
// failed during instantiation or schema introspection.
type LoadError struct {
	ID       string
	Strategy string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load toolset %s (strategy %s): %v", e.ID, e.Strategy, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrToolNotFound indicates that a toolset resolved but does not contain a
// tool with the requested name.
var ErrToolNotFound = errors.New("tool not found")

// ArgumentError indicates a missing required argument or a value that could
// not be coerced to the declared parameter kind.
type ArgumentError struct {
	Tool   string
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q for tool %s: %s", e.Param, e.Tool, e.Reason)
}

// InvocationError wraps a failure raised by the tool's own logic. It is
// reported in the call result envelope, never propagated as a process-level
// failure.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
