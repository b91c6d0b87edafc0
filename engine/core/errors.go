package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	/** @brief Returned by accessors kept only for backwards compatibility. */
	ErrDeprecated = errors.New("deprecated")
	/** @brief Returned when a name does not match any declared property. */
	ErrUnknown = errors.New("unknown")
)

/**
 * @brief Returned when an enum-valued property is assigned a value
 * outside its declared set. The property keeps its previous value.
 */
type InvalidEnumError struct {
	Property string
	Value    string
	Allowed  []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%s must be one of [%s], not %q",
		e.Property, strings.Join(e.Allowed, ", "), e.Value)
}

/**
 * @brief Returned when a resource-reference property receives a value
 * of the wrong type.
 */
type TypeMismatchError struct {
	Property string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s expects %s, got %s", e.Property, e.Expected, e.Got)
}

// NewDeprecatedError wraps ErrDeprecated with a hint pointing at the
// replacement API, so errors.Is(err, ErrDeprecated) still matches.
func NewDeprecatedError(old, replacement string) error {
	return fmt.Errorf("%s is %w, use %s", old, ErrDeprecated, replacement)
}
