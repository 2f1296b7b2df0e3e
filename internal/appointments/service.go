package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nexusdigital/agency-api/internal/observability/metrics"
	"github.com/nexusdigital/agency-api/internal/schedule"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

var tracer = otel.Tracer("nexus.internal.appointments")

// AvailabilityView is the bookable/booked split for one date. It is
// derived on every call, never cached: staleness is bounded by request
// latency and the slot domain is 14 entries.
type AvailabilityView struct {
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}

// Service implements availability resolution and booking intake on top
// of a Repository.
type Service struct {
	repo    Repository
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// NewService constructs an appointments service.
func NewService(repo Repository, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger, metrics: m}
}

// Availability returns the catalog slots still bookable on date, in
// catalog order, alongside the booked set.
func (s *Service) Availability(ctx context.Context, date string) (*AvailabilityView, error) {
	ctx, span := tracer.Start(ctx, "appointments.availability")
	defer span.End()
	span.SetAttributes(attribute.String("nexus.appointment_date", date))

	if _, err := schedule.ParseDate(date); err != nil {
		s.metrics.ObserveAvailability("invalid")
		return nil, &ValidationError{Fields: map[string]string{"date": "Date must be YYYY-MM-DD"}}
	}

	bookedTimes, err := s.repo.ListBookedTimes(ctx, date)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAvailability("error")
		return nil, fmt.Errorf("appointments: resolve availability: %w", err)
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	// Filter rather than re-sort so catalog order is preserved.
	available := []string{}
	for _, slot := range schedule.AllSlots() {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}

	s.metrics.ObserveAvailability("ok")
	return &AvailabilityView{AvailableSlots: available, BookedSlots: bookedTimes}, nil
}

// Book validates the request, re-checks the slot against the store and
// inserts a pending appointment. The pre-insert lookup gives the
// friendly conflict answer; the store's uniqueness constraint is the
// authority when two submissions race.
func (s *Service) Book(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("nexus.appointment_date", req.AppointmentDate),
		attribute.String("nexus.appointment_time", req.AppointmentTime),
	)
	start := time.Now()
	defer func() {
		s.metrics.ObserveBookingLatency(time.Since(start).Seconds())
	}()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveBooking("invalid")
		return nil, err
	}

	_, err := s.repo.FindByDateTime(ctx, req.AppointmentDate, req.AppointmentTime)
	switch {
	case err == nil:
		s.metrics.ObserveBooking("conflict")
		return nil, ErrSlotTaken
	case !errors.Is(err, ErrNotFound):
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("appointments: slot check: %w", err)
	}

	appt, err := s.repo.Insert(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.ObserveBooking("conflict")
			return nil, err
		}
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("appointments: insert booking: %w", err)
	}

	s.metrics.ObserveBooking("created")
	s.logger.Info("appointment booked",
		"id", appt.ID,
		"date", appt.AppointmentDate,
		"time", appt.AppointmentTime,
		"service", appt.ServiceType,
	)
	return appt, nil
}

// Confirm marks an appointment confirmed. Idempotent.
func (s *Service) Confirm(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "appointments.confirm")
	defer span.End()
	span.SetAttributes(attribute.Int64("nexus.appointment_id", id))

	if err := s.repo.SetStatus(ctx, id, StatusConfirmed, true); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		span.RecordError(err)
		return fmt.Errorf("appointments: confirm: %w", err)
	}
	s.logger.Info("appointment confirmed", "id", id)
	return nil
}

// Cancel marks an appointment cancelled, freeing its slot for
// re-booking. The row is kept for audit history.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "appointments.cancel")
	defer span.End()
	span.SetAttributes(attribute.Int64("nexus.appointment_id", id))

	if err := s.repo.SetStatus(ctx, id, StatusCancelled, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		span.RecordError(err)
		return fmt.Errorf("appointments: cancel: %w", err)
	}
	s.logger.Info("appointment cancelled", "id", id)
	return nil
}

// List returns every appointment, newest first.
func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	return out, nil
}
