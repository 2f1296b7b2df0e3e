package contacts

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nexusdigital/agency-api/pkg/logging"
)

var tracer = otel.Tracer("nexus.internal.contacts")

// Service handles contact form intake and the admin-facing inbox.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs a contacts service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("contacts: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Submit validates and stores a contact form submission.
func (s *Service) Submit(ctx context.Context, req *ContactRequest) (*Contact, error) {
	ctx, span := tracer.Start(ctx, "contacts.submit")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Insert(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("contacts: insert submission: %w", err)
	}

	s.logger.Info("contact submitted", "id", c.ID, "services", len(c.Services))
	return c, nil
}

// List returns every submission, newest first.
func (s *Service) List(ctx context.Context) ([]*Contact, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("contacts: list: %w", err)
	}
	return out, nil
}

// Get returns one submission by id.
func (s *Service) Get(ctx context.Context, id int64) (*Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("contacts: get: %w", err)
	}
	return c, nil
}

// MarkRead flags a submission as handled. Idempotent.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "contacts.mark_read")
	defer span.End()
	span.SetAttributes(attribute.Int64("nexus.contact_id", id))

	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		span.RecordError(err)
		return fmt.Errorf("contacts: mark read: %w", err)
	}
	s.logger.Info("contact marked read", "id", id)
	return nil
}
