package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses; pgxmock
// implements it for tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores contact submissions in the relational database.
// The services selection is persisted as a JSON array in a text column.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("contacts: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const contactColumns = `id, first_name, last_name, email, phone, services,
		project_details, is_read, created_at, updated_at`

// Insert creates a contact row and returns the stored record.
func (r *PostgresRepository) Insert(ctx context.Context, req *ContactRequest) (*Contact, error) {
	query := `
		INSERT INTO contacts
			(first_name, last_name, email, phone, services, project_details, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id, created_at, updated_at
	`
	services, err := encodeServices(req.Services)
	if err != nil {
		return nil, fmt.Errorf("contacts: encode services failed: %w", err)
	}
	c := &Contact{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Services:       append([]string(nil), req.Services...),
		ProjectDetails: req.ProjectDetails,
	}
	err = r.db.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		services,
		req.ProjectDetails,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("contacts: insert failed: %w", err)
	}
	return c, nil
}

// List returns every contact, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		ORDER BY created_at DESC, id DESC
	`, contactColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contacts: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("contacts: scan row failed: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contacts: iterate rows failed: %w", err)
	}
	return out, nil
}

// GetByID returns the contact with the given identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id = $1`, contactColumns)
	c, err := scanContact(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("contacts: select by id failed: %w", err)
	}
	return c, nil
}

// MarkRead flags the contact as handled. Repeating the call is harmless.
func (r *PostgresRepository) MarkRead(ctx context.Context, id int64) error {
	query := `
		UPDATE contacts
		SET is_read = TRUE, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("contacts: mark read failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// encodeServices renders the selection as a JSON array. HTML escaping
// is off so service names keep a literal "&", matching the stored form
// the frontend reads back.
func encodeServices(services []string) (string, error) {
	if len(services) == 0 {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(services); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func scanContact(row pgx.Row) (*Contact, error) {
	var (
		c        Contact
		services string
	)
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&services,
		&c.ProjectDetails,
		&c.IsRead,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if services != "" {
		if err := json.Unmarshal([]byte(services), &c.Services); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
	}
	return &c, nil
}
