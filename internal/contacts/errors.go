package contacts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when no contact exists for the requested id.
var ErrNotFound = errors.New("contact not found")

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
