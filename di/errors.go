package di

import (
	"errors"
	"strconv"
)

var (
	// ErrNilItem is returned when a nil item is registered.
	ErrNilItem = errors.New("di: nil item")

	// ErrNilContainer is returned when a bootstrap runs without a container.
	ErrNilContainer = errors.New("di: nil container")
)

// MissingDependencyError is returned when a dependency key is absent from a
// dependency set.
type MissingDependencyError struct{ Key string }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	// Example: di: dependency "CONFIG" missing
	return "di: dependency " + strconv.Quote(e.Key) + " missing"
}

// WrongTypeDependencyError is returned when a dependency exists but neither the
// value nor its extracted form has the requested type.
type WrongTypeDependencyError struct {
	// Key is the dependency key requested.
	Key string

	// GotType is the dynamic type of the stored value.
	GotType string

	// WantType is the requested type.
	WantType string
}

// Error implements the error interface.
func (e WrongTypeDependencyError) Error() string {
	// Example: di: dependency "CONFIG" has wrong type (string), want greet.Decoration
	return "di: dependency " + strconv.Quote(e.Key) + " has wrong type (" + e.GotType + "), want " + e.WantType
}

// ArityError is returned by DynamicFunction.Invoke when the number of supplied
// arguments does not fit the wrapped function.
type ArityError struct {
	Name string
	Want int
	Got  int
}

// Error implements the error interface.
func (e ArityError) Error() string {
	return "di: " + strconv.Quote(e.Name) + " expects " + strconv.Itoa(e.Want) +
		" positional argument(s), got " + strconv.Itoa(e.Got)
}

// ArgumentTypeError is returned by DynamicFunction.Invoke when a supplied
// argument is not assignable to the wrapped function's parameter.
type ArgumentTypeError struct {
	Name  string
	Index int
	Want  string
	Got   string
}

// Error implements the error interface.
func (e ArgumentTypeError) Error() string {
	return "di: " + strconv.Quote(e.Name) + " argument " + strconv.Itoa(e.Index) +
		" has type " + e.Got + ", want " + e.Want
}

// OverridesTypeError is returned by DynamicFunction.Invoke when the trailing
// argument in override position is not an Overrides bag.
type OverridesTypeError struct {
	Name string
	Got  string
}

// Error implements the error interface.
func (e OverridesTypeError) Error() string {
	return "di: " + strconv.Quote(e.Name) + " trailing argument must be di.Overrides, got " + e.Got
}
