package appointments

import (
	"net/mail"
	"strings"
	"time"

	"github.com/nexusdigital/agency-api/internal/schedule"
)

// Status is the lifecycle state of an appointment. Appointments are
// never deleted; cancellation is a status transition.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// OfferedServices are the consultation topics a visitor can book.
var OfferedServices = []string{
	"Website Design & Development",
	"Social Media Content Creation",
	"AI Agents & Automation",
	"Chatbot Development",
	"Brand Identity Design",
	"Digital Marketing Strategy",
}

// Appointment is one scheduling commitment.
type Appointment struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	ServiceType     string    `json:"serviceType"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Message         string    `json:"message,omitempty"`
	Status          Status    `json:"status"`
	IsConfirmed     bool      `json:"isConfirmed"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingRequest is the body of a booking submission.
type BookingRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ServiceType     string `json:"serviceType"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Message         string `json:"message"`
}

// Validate checks every required field and collects problems per field
// so the client can surface them next to the inputs. Phone and message
// are optional.
func (r *BookingRequest) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "First name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(r.ServiceType) == "" {
		fields["serviceType"] = "Please select a service"
	} else if !isOfferedService(r.ServiceType) {
		fields["serviceType"] = "Unknown service type"
	}
	if strings.TrimSpace(r.AppointmentDate) == "" {
		fields["appointmentDate"] = "Please select a date"
	} else if _, err := schedule.ParseDate(r.AppointmentDate); err != nil {
		fields["appointmentDate"] = "Date must be YYYY-MM-DD"
	}
	if strings.TrimSpace(r.AppointmentTime) == "" {
		fields["appointmentTime"] = "Please select a time"
	} else if !schedule.IsSlot(r.AppointmentTime) {
		fields["appointmentTime"] = "Time is not a bookable slot"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isOfferedService(s string) bool {
	for _, svc := range OfferedServices {
		if svc == s {
			return true
		}
	}
	return false
}
