package sim

import "fmt"

// ValidationError reports a circuit or initial state that is rejected before
// any execution side effect: zero qubits, an index outside the declared
// ranges, or a non-normalized custom amplitude vector.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a malformed gate: wrong arity, a missing or
// out-of-range parameter, or a two-qubit gate whose operands collide.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

func configurationf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// NumericalError reports an undefined renormalization: a measurement landed
// on an outcome whose probability is below the representable threshold. The
// run is aborted and no partial state is returned.
type NumericalError struct {
	Reason string
}

func (e *NumericalError) Error() string {
	return "numerical: " + e.Reason
}

func numericalf(format string, args ...any) error {
	return &NumericalError{Reason: fmt.Sprintf(format, args...)}
}
