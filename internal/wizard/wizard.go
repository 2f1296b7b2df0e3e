// Package wizard drives the multi-step booking flow as an explicit
// state machine. Each instance tracks one visitor's progress from date
// selection through submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nexusdigital/agency-api/internal/appointments"
	"github.com/nexusdigital/agency-api/internal/schedule"
)

// State is a wizard step.
type State string

const (
	StateSelectingDate   State = "selecting_date"
	StateSelectingTime   State = "selecting_time"
	StateEnteringDetails State = "entering_details"
	StateSubmitting      State = "submitting"
	StateSuccess         State = "success"
	StateError           State = "error"
)

var (
	// ErrInvalidTransition is returned when an operation does not apply
	// to the current state.
	ErrInvalidTransition = errors.New("wizard: operation not valid in current state")
	// ErrDateNotBookable is returned for weekend or past dates.
	ErrDateNotBookable = errors.New("wizard: date is not bookable")
	// ErrSlotNotAvailable is returned when the chosen time is not among
	// the loaded available slots.
	ErrSlotNotAvailable = errors.New("wizard: time slot not available")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("wizard: submission already in flight")
)

// BookingService is the slice of the appointments service the wizard
// needs.
type BookingService interface {
	Availability(ctx context.Context, date string) (*appointments.AvailabilityView, error)
	Book(ctx context.Context, req *appointments.BookingRequest) (*appointments.Appointment, error)
}

// Details is the final-step form: everything but the date and time.
type Details struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	ServiceType string
	Message     string
}

// Wizard is one visitor's booking session. Methods are safe for
// concurrent use; at most one submission runs at a time.
type Wizard struct {
	svc BookingService
	now func() time.Time

	mu             sync.Mutex
	state          State
	date           string
	availableSlots []string
	slot           string
	details        Details
	result         *appointments.Appointment
	lastErr        error
}

// New starts a wizard at the date-selection step. now may be nil, in
// which case the wall clock is used.
func New(svc BookingService, now func() time.Time) *Wizard {
	if svc == nil {
		panic("wizard: booking service required")
	}
	if now == nil {
		now = time.Now
	}
	return &Wizard{svc: svc, now: now, state: StateSelectingDate}
}

// State returns the current step.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectDate validates the chosen date, loads its availability and
// advances to time selection. Weekends and past dates are rejected and
// the wizard stays where it is. A fresh selection may also start from
// the success screen, beginning the next booking.
func (w *Wizard) SelectDate(ctx context.Context, date string) error {
	w.mu.Lock()
	if w.state != StateSelectingDate && w.state != StateSuccess {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	w.mu.Unlock()

	d, err := schedule.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDateNotBookable, date)
	}
	if !schedule.IsBookable(d, w.now()) {
		return fmt.Errorf("%w: %s", ErrDateNotBookable, date)
	}

	view, err := w.svc.Availability(ctx, date)
	if err != nil {
		return fmt.Errorf("wizard: load availability: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingDate && w.state != StateSuccess {
		return ErrInvalidTransition
	}
	w.result = nil
	w.date = date
	w.availableSlots = view.AvailableSlots
	w.state = StateSelectingTime
	return nil
}

// AvailableSlots returns the slots loaded for the selected date. A
// fully booked date returns an empty list; Back remains the way out.
func (w *Wizard) AvailableSlots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.availableSlots))
	copy(out, w.availableSlots)
	return out
}

// SelectTime picks one of the available slots and advances to the
// details step.
func (w *Wizard) SelectTime(slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingTime {
		return ErrInvalidTransition
	}
	for _, s := range w.availableSlots {
		if s == slot {
			w.slot = slot
			w.state = StateEnteringDetails
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSlotNotAvailable, slot)
}

// Back steps to the previous screen, discarding the forward selection.
// From the error state it returns to the details step with the form
// intact.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateSelectingTime:
		w.date = ""
		w.availableSlots = nil
		w.state = StateSelectingDate
	case StateEnteringDetails:
		w.slot = ""
		w.state = StateSelectingTime
	case StateError:
		w.lastErr = nil
		w.state = StateEnteringDetails
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Submit sends the booking. Only one submission may run at a time; a
// second call while in flight gets ErrSubmitInFlight. Failure moves to
// the error state with the entered details preserved for retry.
func (w *Wizard) Submit(ctx context.Context, details Details) error {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return ErrSubmitInFlight
	case StateEnteringDetails:
	default:
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	w.details = details
	w.state = StateSubmitting
	req := &appointments.BookingRequest{
		FirstName:       details.FirstName,
		LastName:        details.LastName,
		Email:           details.Email,
		Phone:           details.Phone,
		ServiceType:     details.ServiceType,
		AppointmentDate: w.date,
		AppointmentTime: w.slot,
		Message:         details.Message,
	}
	w.mu.Unlock()

	appt, err := w.svc.Book(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.lastErr = err
		w.state = StateError
		return err
	}
	// Success clears the form right away. Only the booked appointment
	// survives, and the date defaults back to today for the next visit.
	w.result = appt
	w.details = Details{}
	w.slot = ""
	w.availableSlots = nil
	w.date = w.now().Format(schedule.DateLayout)
	w.state = StateSuccess
	return nil
}

// Date returns the currently selected date, or the default suggestion
// (today) after a success or reset.
func (w *Wizard) Date() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.date
}

// Result returns the booked appointment after a successful submit.
func (w *Wizard) Result() *appointments.Appointment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Err returns the failure that moved the wizard to the error state.
func (w *Wizard) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Details returns the entered form data. Preserved across a failed
// submission so the visitor does not retype it.
func (w *Wizard) Details() Details {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.details
}

// Reset returns to date selection with a clean form and the date
// defaulted to today. Valid from the success and error states, and
// anywhere a visitor abandons the flow.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return
	}
	w.date = w.now().Format(schedule.DateLayout)
	w.availableSlots = nil
	w.slot = ""
	w.details = Details{}
	w.result = nil
	w.lastErr = nil
	w.state = StateSelectingDate
}
