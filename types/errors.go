package types

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that an identifier resolved to no individual,
// family or source. Absence is a normal outcome for relationship
// queries, so callers are expected to check for it with IsNotFound and
// surface the message rather than treat it as a failure.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("person not found: %q. Use a valid GEDCOM ID (e.g. \"@I1@\") or the person's full name", e.Identifier)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Warning prefixes. A warning carrying the error prefix blocks the
// write that produced it; plain warnings are informational.
const (
	errorPrefix   = "ERROR:"
	warningPrefix = "WARNING:"
)

// Errorf formats a blocking warning.
func Errorf(format string, args ...interface{}) string {
	return errorPrefix + " " + fmt.Sprintf(format, args...)
}

// Warningf formats a non-blocking warning.
func Warningf(format string, args ...interface{}) string {
	return warningPrefix + " " + fmt.Sprintf(format, args...)
}

// HasBlockingError reports whether any warning in the list is
// ERROR-level.
func HasBlockingError(warnings []string) bool {
	for _, w := range warnings {
		if strings.Contains(w, errorPrefix) {
			return true
		}
	}
	return false
}
