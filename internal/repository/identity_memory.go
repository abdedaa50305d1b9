package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/utils"
)

// MemoryIdentityRepo is the zero-dependency account store.  It ships with
// the two demo accounts the portal has always seeded, so the server is
// usable the moment it starts.
type MemoryIdentityRepo struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*Account
	hashes map[string]string // account id -> bcrypt hash
	cost   int
}

// NewMemoryIdentityRepo seeds the demo accounts with the given bcrypt cost.
func NewMemoryIdentityRepo(cost int) *MemoryIdentityRepo {
	r := &MemoryIdentityRepo{
		byID:   make(map[string]*Account),
		hashes: make(map[string]string),
		cost:   cost,
	}
	r.seed("admin@research.com", "Administrateur", "admin123", model.RoleAdmin, true)
	r.seed("member@research.com", "Membre Test", "member123", model.RoleMember, false)
	return r
}

func (r *MemoryIdentityRepo) seed(email, name, password, role string, staff bool) {
	hash, err := utils.HashPassword(password, r.cost)
	if err != nil {
		return
	}
	r.seq++
	id := strconv.Itoa(r.seq)
	r.byID[id] = &Account{
		ID:         id,
		Email:      email,
		Name:       name,
		Role:       role,
		Status:     model.StatusActive,
		Verified:   true,
		IsStaff:    staff,
		DateJoined: time.Now().UTC(),
	}
	r.hashes[id] = hash
}

func (r *MemoryIdentityRepo) Authenticate(ctx context.Context, email, password string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.byID {
		if strings.ToLower(a.Email) != email {
			continue
		}
		if a.Status == model.StatusBanned {
			return Account{}, ErrNotFound
		}
		if !utils.VerifyPassword(r.hashes[id], password) {
			return Account{}, ErrNotFound
		}
		return *a, nil
	}
	return Account{}, ErrNotFound
}

func (r *MemoryIdentityRepo) GetByID(ctx context.Context, id string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *a, nil
}

func (r *MemoryIdentityRepo) List(ctx context.Context) ([]Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Account, 0, len(r.byID))
	for _, a := range r.byID {
		if a.Status == model.StatusActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *MemoryIdentityRepo) Create(ctx context.Context, a Account, password string) (Account, error) {
	hash, err := utils.HashPassword(password, r.cost)
	if err != nil {
		return Account{}, err
	}
	email := strings.ToLower(strings.TrimSpace(a.Email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.ToLower(existing.Email) == email {
			return Account{}, ErrEmailExists
		}
	}
	r.seq++
	a.ID = strconv.Itoa(r.seq)
	a.Email = email
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	if a.DateJoined.IsZero() {
		a.DateJoined = time.Now().UTC()
	}
	copied := a
	r.byID[a.ID] = &copied
	r.hashes[a.ID] = hash
	return a, nil
}

func (r *MemoryIdentityRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Role = role
	return nil
}

func (r *MemoryIdentityRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *MemoryIdentityRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.hashes, id)
	return nil
}

func (r *MemoryIdentityRepo) TouchLogin(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		a.LastLogin = time.Now().UTC()
	}
	return nil
}
