package roi

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every ParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError reports a parameter outside its documented domain.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidParameter) match.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
