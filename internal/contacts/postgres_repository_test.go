package contacts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func TestEncodeServicesKeepsAmpersands(t *testing.T) {
	got, err := encodeServices([]string{"Website Design & Development", "Brand Identity Design"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `["Website Design & Development","Brand Identity Design"]`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got, err = encodeServices(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestPostgresInsertEncodesServices(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now().UTC()
	req := validContact()

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(req.FirstName, req.LastName, req.Email, req.Phone,
			`["Website Design & Development","AI Automation Solutions"]`,
			req.ProjectDetails).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(3), now, now))

	c, err := repo.Insert(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 3 {
		t.Fatalf("expected id 3, got %d", c.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresInsertEmptyServices(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now().UTC()
	req := &ContactRequest{FirstName: "Sam", LastName: "Lee", Email: "sam@example.com"}

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(req.FirstName, req.LastName, req.Email, "", "[]", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	if _, err := repo.Insert(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostgresGetByIDNoRows(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM contacts`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresMarkRead(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE contacts`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.MarkRead(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostgresMarkReadNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE contacts`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.MarkRead(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
