package contacts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository persists contact form submissions.
type Repository interface {
	Insert(ctx context.Context, req *ContactRequest) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	GetByID(ctx context.Context, id int64) (*Contact, error)
	MarkRead(ctx context.Context, id int64) error
}

// InMemoryRepository keeps contacts in process memory. It backs local
// development without a database and the package tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Contact
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[int64]*Contact)}
}

func (r *InMemoryRepository) Insert(_ context.Context, req *ContactRequest) (*Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	c := &Contact{
		ID:             r.nextID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Services:       append([]string(nil), req.Services...),
		ProjectDetails: req.ProjectDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.rows[c.ID] = c

	out := *c
	return &out, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Contact, 0, len(r.rows))
	for _, c := range r.rows {
		cp := *c
		out = append(out, &cp)
	}
	// Newest submissions first.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *InMemoryRepository) MarkRead(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	c.IsRead = true
	c.UpdatedAt = time.Now().UTC()
	return nil
}
