// Package store - store/users.go
package store

import (
	"errors"
	"sync"

	"go-bet-tips/models"
)

// ErrUserNotFound is returned when no account matches the given email.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a registration reuses an existing email.
var ErrDuplicateEmail = errors.New("an account with this email already exists")

// UserRepo owns the user directory, keyed by email.
type UserRepo struct {
	mu        sync.Mutex
	persister Persister
	users     []models.User
}

// NewUserRepo loads the persisted directory, or starts empty.
func NewUserRepo(p Persister) *UserRepo {
	r := &UserRepo{persister: p}
	p.Load(SlotUsers, &r.users)
	return r
}

// List returns a copy of the directory in insertion order.
func (r *UserRepo) List() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// FindByEmail returns the user with the given email, if any.
func (r *UserRepo) FindByEmail(email string) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Add appends a new user. Email must be unique across the directory.
func (r *UserRepo) Add(u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	r.users = append(r.users, u)
	r.persister.Save(SlotUsers, r.users)
	return nil
}

// Update merges a patch into the user with the given email and returns the
// updated record.
func (r *UserRepo) Update(email string, patch models.UserPatch) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			patch.Apply(&r.users[i])
			r.persister.Save(SlotUsers, r.users)
			return r.users[i], nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// Remove deletes the user with the given email.
func (r *UserRepo) Remove(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.persister.Save(SlotUsers, r.users)
			return nil
		}
	}
	return ErrUserNotFound
}

// Count returns the directory size.
func (r *UserRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
