package appointments

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSlotTaken is returned when the requested (date, time) pair is
	// already claimed by a non-cancelled appointment.
	ErrSlotTaken = errors.New("time slot is already booked")

	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
)

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}
