package appointments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository defines the interface for appointment storage. Implementations
// must enforce the slot-uniqueness invariant atomically: Insert fails with
// ErrSlotTaken when a non-cancelled appointment already holds the same
// (date, time) pair.
type Repository interface {
	Insert(ctx context.Context, req *BookingRequest) (*Appointment, error)
	FindByDateTime(ctx context.Context, date, slot string) (*Appointment, error)
	ListBookedTimes(ctx context.Context, date string) ([]string, error)
	SetStatus(ctx context.Context, id int64, status Status, confirmed bool) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
}

// InMemoryRepository keeps appointments in memory. It backs local runs
// without a database and the handler/service tests. The mutex serializes
// the check-and-insert so concurrent bookings cannot both claim a slot.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Appointment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[int64]*Appointment)}
}

// Insert creates a pending appointment, enforcing slot uniqueness.
func (r *InMemoryRepository) Insert(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.rows {
		if a.AppointmentDate == req.AppointmentDate &&
			a.AppointmentTime == req.AppointmentTime &&
			a.Status != StatusCancelled {
			return nil, ErrSlotTaken
		}
	}

	r.nextID++
	now := time.Now().UTC()
	appt := &Appointment{
		ID:              r.nextID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceType:     req.ServiceType,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Message:         req.Message,
		Status:          StatusPending,
		IsConfirmed:     false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.rows[appt.ID] = appt

	cp := *appt
	return &cp, nil
}

// FindByDateTime returns the non-cancelled appointment holding the slot,
// or ErrNotFound.
func (r *InMemoryRepository) FindByDateTime(ctx context.Context, date, slot string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.rows {
		if a.AppointmentDate == date && a.AppointmentTime == slot && a.Status != StatusCancelled {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// ListBookedTimes returns the non-cancelled slot times for a date in
// ascending order.
func (r *InMemoryRepository) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	times := []string{}
	for _, a := range r.rows {
		if a.AppointmentDate == date && a.Status != StatusCancelled {
			times = append(times, a.AppointmentTime)
		}
	}
	sort.Strings(times)
	return times, nil
}

// SetStatus updates status and the confirmation flag. Re-applying the
// current status is not an error.
func (r *InMemoryRepository) SetStatus(ctx context.Context, id int64, status Status, confirmed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.IsConfirmed = confirmed
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// GetByID returns the appointment with the given identifier.
func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// List returns every appointment, newest date first, later times first
// within a date.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Appointment, 0, len(r.rows))
	for _, a := range r.rows {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out, nil
}
