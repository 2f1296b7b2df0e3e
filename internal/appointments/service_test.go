package appointments

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nexusdigital/agency-api/internal/schedule"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), logging.Default(), nil)
}

func validBooking(date, slot string) *BookingRequest {
	return &BookingRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "+1 (555) 123-4567",
		ServiceType:     "Website Design & Development",
		AppointmentDate: date,
		AppointmentTime: slot,
		Message:         "Looking forward to the consultation",
	}
}

func TestAvailabilityEmptyDateReturnsFullCatalog(t *testing.T) {
	svc := newTestService()

	view, err := svc.Availability(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(view.AvailableSlots, schedule.AllSlots()) {
		t.Fatalf("expected full catalog, got %v", view.AvailableSlots)
	}
	if len(view.BookedSlots) != 0 {
		t.Fatalf("expected no booked slots, got %v", view.BookedSlots)
	}
}

func TestAvailabilityPartitionsCatalog(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, slot := range []string{"09:30", "13:00", "16:30"} {
		if _, err := svc.Book(ctx, validBooking("2025-03-11", slot)); err != nil {
			t.Fatalf("booking %s: %v", slot, err)
		}
	}

	view, err := svc.Availability(ctx, "2025-03-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]int{}
	for _, s := range view.AvailableSlots {
		seen[s]++
	}
	for _, s := range view.BookedSlots {
		seen[s]++
	}
	for _, s := range schedule.AllSlots() {
		if seen[s] != 1 {
			t.Fatalf("slot %s appears %d times across available+booked", s, seen[s])
		}
	}
	if len(view.AvailableSlots)+len(view.BookedSlots) != 14 {
		t.Fatalf("available+booked must cover the catalog, got %d+%d",
			len(view.AvailableSlots), len(view.BookedSlots))
	}

	// Catalog order must be preserved, not re-sorted.
	idx := 0
	for _, s := range schedule.AllSlots() {
		if idx < len(view.AvailableSlots) && view.AvailableSlots[idx] == s {
			idx++
		}
	}
	if idx != len(view.AvailableSlots) {
		t.Fatalf("available slots out of catalog order: %v", view.AvailableSlots)
	}
}

func TestAvailabilityIdempotentWithoutWrites(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Book(ctx, validBooking("2025-03-12", "10:00")); err != nil {
		t.Fatalf("booking: %v", err)
	}

	first, err := svc.Availability(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Availability(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("availability not idempotent: %v vs %v", first, second)
	}
}

func TestAvailabilityMalformedDate(t *testing.T) {
	svc := newTestService()

	for _, date := range []string{"", "2025-3-10", "10/03/2025", "soon"} {
		_, err := svc.Availability(context.Background(), date)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("expected validation error for %q, got %v", date, err)
		}
	}
}

func TestBookConflictLaw(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	appt, err := svc.Book(ctx, validBooking("2025-03-10", "10:00"))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if appt.ID == 0 {
		t.Fatal("expected a generated id")
	}
	if appt.Status != StatusPending || appt.IsConfirmed {
		t.Fatalf("expected pending unconfirmed appointment, got %s/%v", appt.Status, appt.IsConfirmed)
	}

	if _, err := svc.Book(ctx, validBooking("2025-03-10", "10:00")); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	view, err := svc.Availability(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range view.AvailableSlots {
		if s == "10:00" {
			t.Fatal("booked slot still listed as available")
		}
	}
	found := false
	for _, s := range view.BookedSlots {
		if s == "10:00" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 10:00 in booked slots, got %v", view.BookedSlots)
	}
}

func TestCancellationFreesSlot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	appt, err := svc.Book(ctx, validBooking("2025-03-14", "14:00"))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := svc.Cancel(ctx, appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	view, err := svc.Availability(ctx, "2025-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, s := range view.AvailableSlots {
		if s == "14:00" {
			found = true
		}
	}
	if !found {
		t.Fatal("cancelled slot did not reappear in availability")
	}

	// The freed slot can be booked again.
	if _, err := svc.Book(ctx, validBooking("2025-03-14", "14:00")); err != nil {
		t.Fatalf("re-booking freed slot: %v", err)
	}
}

func TestFullyBookedDateHasNoAvailability(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, slot := range schedule.AllSlots() {
		if _, err := svc.Book(ctx, validBooking("2025-03-17", slot)); err != nil {
			t.Fatalf("booking %s: %v", slot, err)
		}
	}

	view, err := svc.Availability(ctx, "2025-03-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.AvailableSlots) != 0 {
		t.Fatalf("expected no availability, got %v", view.AvailableSlots)
	}
	if len(view.BookedSlots) != 14 {
		t.Fatalf("expected 14 booked slots, got %d", len(view.BookedSlots))
	}
}

type countingRepo struct {
	*InMemoryRepository
	finds   int
	inserts int
}

func (c *countingRepo) FindByDateTime(ctx context.Context, date, slot string) (*Appointment, error) {
	c.finds++
	return c.InMemoryRepository.FindByDateTime(ctx, date, slot)
}

func (c *countingRepo) Insert(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	c.inserts++
	return c.InMemoryRepository.Insert(ctx, req)
}

func TestBookValidatesBeforeTouchingStore(t *testing.T) {
	repo := &countingRepo{InMemoryRepository: NewInMemoryRepository()}
	svc := NewService(repo, logging.Default(), nil)

	req := validBooking("", "10:00")
	_, err := svc.Book(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["appointmentDate"]; !ok {
		t.Fatalf("expected appointmentDate field error, got %v", verr.Fields)
	}
	if repo.finds != 0 || repo.inserts != 0 {
		t.Fatalf("store touched before validation: finds=%d inserts=%d", repo.finds, repo.inserts)
	}
}

func TestBookValidationMessages(t *testing.T) {
	svc := newTestService()

	req := &BookingRequest{
		Email:           "not-an-email",
		ServiceType:     "Underwater Basket Weaving",
		AppointmentDate: "2025-03-10",
		AppointmentTime: "12:00",
	}
	_, err := svc.Book(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"firstName", "lastName", "email", "serviceType", "appointmentTime"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected field error for %s, got %v", field, verr.Fields)
		}
	}
}

func TestConfirmUnknownAppointment(t *testing.T) {
	svc := newTestService()
	if err := svc.Confirm(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
