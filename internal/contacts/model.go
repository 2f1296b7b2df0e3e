package contacts

import (
	"net/mail"
	"strings"
	"time"
)

// Contact is a stored contact form submission.
type Contact struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Services       []string  `json:"services,omitempty"`
	ProjectDetails string    `json:"projectDetails,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ContactRequest is the payload accepted by the contact form endpoint.
// Phone, services and project details are optional.
type ContactRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Services       []string `json:"services"`
	ProjectDetails string   `json:"projectDetails"`
}

// Validate checks required fields and returns a *ValidationError
// describing every failing field, or nil when the request is acceptable.
func (r *ContactRequest) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "First name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = "Please enter a valid email address"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = "Please enter a valid email address"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
