package reviewxml

import (
	"errors"
	"fmt"
)

// SchemaError reports a structural problem with agent output: a missing
// root element, a missing required child, or a score outside 0..20. The
// message is embedded verbatim in the retry re-prompt, so it names the
// exact element at fault.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return e.Reason
}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// IsSchemaError reports whether err is (or wraps) a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
