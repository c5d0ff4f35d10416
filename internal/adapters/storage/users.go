package storage

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	store *Store
}

var _ ports.UserRepository = (*UserRepository)(nil)

// Create stores a new user. A taken email is a domain.ConflictError.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		return r.store.users.create(txn, u.ID, u)
	})

	return conflict(err, "user", "email already registered")
}

// Get returns the user with id.
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var u *domain.User

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var err error
		u, err = r.store.users.get(txn, id)

		return err
	})

	return u, err
}

// GetByEmail looks a user up by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u *domain.User

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var err error
		u, err = r.store.users.lookup(txn, "email", normalizeEmail(email))

		return err
	})

	return u, err
}

// Update replaces a stored user.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		_, err := r.store.users.update(txn, u.ID, u)
		return err
	})

	return conflict(err, "user", "email already registered")
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n := 0

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		n = r.store.users.count(txn)
		return nil
	})

	return n, err
}
