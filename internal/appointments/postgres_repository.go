package appointments

import (
	"context"
	"errors"
	"fmt"

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

// PostgresRepository stores appointments in the relational database.
// Slot uniqueness is enforced by a partial unique index over
// (appointment_date, appointment_time) restricted to non-cancelled rows,
// so two concurrent inserts for the same slot cannot both commit.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const appointmentColumns = `id, first_name, last_name, email, phone, service_type,
		appointment_date, appointment_time, message, status, is_confirmed, created_at, updated_at`

// Insert creates a pending appointment row. A unique-index violation is
// reported as ErrSlotTaken.
func (r *PostgresRepository) Insert(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	query := `
		INSERT INTO appointments
			(first_name, last_name, email, phone, service_type, appointment_date, appointment_time, message, status, is_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', FALSE)
		RETURNING id, created_at, updated_at
	`
	appt := &Appointment{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceType:     req.ServiceType,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Message:         req.Message,
		Status:          StatusPending,
	}
	err := r.db.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.ServiceType,
		req.AppointmentDate,
		req.AppointmentTime,
		req.Message,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}
	return appt, nil
}

// FindByDateTime returns the non-cancelled appointment holding the slot.
func (r *PostgresRepository) FindByDateTime(ctx context.Context, date, slot string) (*Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments
		WHERE appointment_date = $1 AND appointment_time = $2 AND status <> 'cancelled'
	`, appointmentColumns)
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, date, slot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select by slot failed: %w", err)
	}
	return appt, nil
}

// ListBookedTimes returns non-cancelled slot times for a date, ascending.
func (r *PostgresRepository) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE appointment_date = $1 AND status <> 'cancelled'
		ORDER BY appointment_time
	`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("appointments: list booked times failed: %w", err)
	}
	defer rows.Close()

	times := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("appointments: scan booked time failed: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate booked times failed: %w", err)
	}
	return times, nil
}

// SetStatus updates status, the confirmation flag and updated_at.
func (r *PostgresRepository) SetStatus(ctx context.Context, id int64, status Status, confirmed bool) error {
	query := `
		UPDATE appointments
		SET status = $2, is_confirmed = $3, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, status, confirmed)
	if err != nil {
		return fmt.Errorf("appointments: update status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the appointment with the given identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, appointmentColumns)
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select by id failed: %w", err)
	}
	return appt, nil
}

// List returns every appointment, newest date first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments
		ORDER BY appointment_date DESC, appointment_time DESC
	`, appointmentColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan row failed: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate rows failed: %w", err)
	}
	return out, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.ServiceType,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Message,
		&a.Status,
		&a.IsConfirmed,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
