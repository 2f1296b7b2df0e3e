package contacts

import (
	"context"
	"errors"
	"testing"

	"github.com/nexusdigital/agency-api/pkg/logging"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), logging.Default())
}

func validContact() *ContactRequest {
	return &ContactRequest{
		FirstName:      "Alex",
		LastName:       "Rivera",
		Email:          "alex@example.com",
		Phone:          "+1 (555) 987-6543",
		Services:       []string{"Website Design & Development", "AI Automation Solutions"},
		ProjectDetails: "We need a new marketing site with a chat widget.",
	}
}

func TestSubmitStoresContact(t *testing.T) {
	svc := newTestService()

	c, err := svc.Submit(context.Background(), validContact())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected a generated id")
	}
	if c.IsRead {
		t.Fatal("new submissions must start unread")
	}
	if len(c.Services) != 2 {
		t.Fatalf("expected services preserved, got %v", c.Services)
	}
}

func TestSubmitOptionalFieldsMayBeEmpty(t *testing.T) {
	svc := newTestService()

	req := &ContactRequest{
		FirstName: "Sam",
		LastName:  "Lee",
		Email:     "sam@example.com",
	}
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("optional fields must not be required: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService()

	req := &ContactRequest{Email: "not-an-email"}
	_, err := svc.Submit(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"firstName", "lastName", "email"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected field error for %s, got %v", field, verr.Fields)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := svc.Submit(ctx, validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(out))
	}
	if out[0].ID != second.ID || out[1].ID != first.ID {
		t.Fatalf("expected newest first, got ids %d then %d", out[0].ID, out[1].ID)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Submit(ctx, validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.MarkRead(ctx, c.ID); err != nil {
		t.Fatalf("first mark read: %v", err)
	}
	if err := svc.MarkRead(ctx, c.ID); err != nil {
		t.Fatalf("repeated mark read must not fail: %v", err)
	}

	got, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsRead {
		t.Fatal("expected contact to be marked read")
	}
}

func TestGetUnknownContact(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), 77); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkReadUnknownContact(t *testing.T) {
	svc := newTestService()
	if err := svc.MarkRead(context.Background(), 77); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
