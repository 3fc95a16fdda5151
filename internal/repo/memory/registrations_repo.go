package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/inscricoes/internal/domain/registration"
)

// RegistrationsRepo keeps registrations in process memory. Ids start at 1 and
// grow by one per insert, like an auto-increment column.
type RegistrationsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  []storedRegistration
}

type storedRegistration struct {
	id  int64
	row registration.Row
}

func NewRegistrationsRepo() *RegistrationsRepo {
	return &RegistrationsRepo{
		nextID: 1,
		items:  make([]storedRegistration, 0),
	}
}

func (r *RegistrationsRepo) Insert(ctx context.Context, name, email, course string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, registration.NewStorageError("registrations.insert", err)
	}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.items = append(r.items, storedRegistration{
		id:  id,
		row: registration.Row{Name: name, Email: email, Course: course},
	})
	r.mu.Unlock()

	return id, nil
}

func (r *RegistrationsRepo) SelectAll(ctx context.Context) ([]registration.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, registration.NewStorageError("registrations.select_all", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// items are kept in id order
	out := make([]registration.Row, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, r.items[i].row)
	}

	return out, nil
}

func (r *RegistrationsRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
