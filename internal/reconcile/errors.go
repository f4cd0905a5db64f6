package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError is a caller-input failure: a missing required field
// combination, a malformed identifier, or a referenced name that does
// not resolve on the gateway.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// AmbiguityError is a data-integrity failure: more than one resource
// matched a logical key that the gateway should hold at most one of.
// The message names the full identifying tuple to aid manual cleanup;
// the reconciler never picks one of the matches arbitrarily.
type AmbiguityError struct {
	Kind   string
	Fields map[string]string
}

func (e *AmbiguityError) Error() string {
	pairs := make([]string, 0, len(e.Fields))
	for _, key := range sortedKeys(e.Fields) {
		pairs = append(pairs, fmt.Sprintf("%s: %q", key, e.Fields[key]))
	}
	return fmt.Sprintf("multiple %s records found for %s, clean up manually first", e.Kind, strings.Join(pairs, ", "))
}

func IsAmbiguityError(err error) bool {
	var ambiguityErr *AmbiguityError
	return errors.As(err, &ambiguityErr)
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
