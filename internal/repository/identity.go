package repository

import (
	"context"
	"time"
)

// Account is the server-side user record.  Unlike the client's Identity it
// carries the password hash; it never leaves the repository layer in full.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Status       string
	Verified     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	LastLogin    time.Time
}

// IdentityRepo is the demo backend's account store.  Two implementations
// exist: a MySQL one for a durable demo and a seeded in-memory one that
// works with no external services at all.
type IdentityRepo interface {
	// Authenticate verifies email+password and returns the account.  A
	// banned account authenticates like an unknown one: ErrNotFound.
	Authenticate(ctx context.Context, email, password string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	// List returns all active accounts, the roster the team page shows.
	List(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, a Account, password string) (Account, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	TouchLogin(ctx context.Context, id string) error
}
