// Package session holds the client's view of who is authenticated and the
// roster of known users.  The store is constructed once at application start
// and injected wherever identity or authorization is needed; there are no
// package-level singletons, so tests build isolated instances.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rami151/laboissimlocal-sub000/internal/api"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// ErrNotAdmin is returned by admin operations when the current identity is
// not effectively admin.
var ErrNotAdmin = errors.New("session: current user is not an admin")

// Store is the session/identity container.  A non-empty token always means
// resolution is pending or resolved; when resolution fails the token and the
// identity are cleared together, never one without the other.
type Store struct {
	client *api.Client
	mirror store.Mirror

	mu      sync.Mutex
	current *model.Identity
	roster  []model.Identity
	loading bool
}

// New builds a session store over the given API client and mirror.
func New(client *api.Client, mirror store.Mirror) *Store {
	return &Store{client: client, mirror: mirror}
}

// Startup restores session state the way the portal always has: a persisted
// token triggers remote resolution; without one, a mirrored identity is
// loaded for offline/demo use.  The roster is loaded from the mirror either
// way so pages render before the first roster refresh lands.
func (s *Store) Startup(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	var roster []model.Identity
	if store.LoadJSON(s.mirror, store.KeyUsers, &roster) {
		s.roster = roster
	}
	token, hasToken := s.mirror.Get(store.KeyToken)
	s.mu.Unlock()

	if hasToken && token != "" {
		s.ResolveFromToken(ctx, token)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var id model.Identity
	if store.LoadJSON(s.mirror, store.KeyUser, &id) {
		s.current = &id
	}
	s.loading = false
}

// ResolveFromToken resolves the identity behind token via the who-am-I
// endpoint.  On success the session and mirror are populated; on ANY failure
// (rejected token or unreachable server alike) the token and identity are
// cleared atomically.  The two failure modes are deliberately not
// distinguished and nothing is retried.
func (s *Store) ResolveFromToken(ctx context.Context, token string) bool {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.client.SetToken(token)
	id, err := s.client.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.clearLocked()
		return false
	}
	id.LastLogin = time.Now().UTC()
	s.current = &id
	s.mirror.Set(store.KeyToken, token)
	store.SaveJSON(s.mirror, store.KeyUser, id)
	return true
}

// Login exchanges credentials for a bearer token and resolves the identity
// behind it.  It reports success as a boolean so callers render inline error
// UI instead of handling errors; bad credentials and network failures look
// the same.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	access, err := s.client.LoginToken(ctx, email, password)
	if err != nil || access == "" {
		return false
	}
	return s.ResolveFromToken(ctx, access)
}

// Logout clears the in-memory identity and the persisted token/identity
// mirror synchronously.  Calling it twice is harmless.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.current = nil
	s.client.SetToken("")
	s.mirror.Delete(store.KeyToken)
	s.mirror.Delete(store.KeyUser)
}

// Current returns a copy of the authenticated identity, or false when no one
// is logged in.
func (s *Store) Current() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

// Loading reports whether a resolution is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsAdmin reports whether the current identity is effectively admin (role,
// staff flag, or superuser flag).  Route guards depend on this exact rule.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsEffectiveAdmin()
}

// Roster returns a copy of the known users.
func (s *Store) Roster() []model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Identity, len(s.roster))
	copy(out, s.roster)
	return out
}

// RefreshRoster fetches the team-members list and mirrors it.  On fetch
// failure the current (mirrored) roster is kept; the roster, unlike the
// session, prefers stale data over none.
func (s *Store) RefreshRoster(ctx context.Context) error {
	members, err := s.client.TeamMembers(ctx)
	if err != nil {
		log.Printf("session: roster refresh failed, keeping mirror: %v", err)
		return err
	}
	roster := make([]model.Identity, 0, len(members))
	for _, m := range members {
		name := m.FullName
		if name == "" {
			name = m.Username
		}
		role := m.Role
		if role == "" {
			// Older serializers have no role field; everyone not flagged
			// staff or superuser is a plain member.
			role = model.RoleMember
		}
		roster = append(roster, model.Identity{
			ID:          m.ID,
			Email:       m.Email,
			Name:        name,
			Role:        role,
			Status:      model.StatusActive,
			Verified:    true,
			IsStaff:     m.IsStaff,
			IsSuperuser: m.IsSuperuser,
			DateJoined:  m.DateJoined,
		})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = roster
	store.SaveJSON(s.mirror, store.KeyUsers, roster)
	return nil
}

// UpdateRole changes a roster member's role through the admin endpoint.  The
// change is applied optimistically and rolled back if the call fails, so the
// UI reflects the intent immediately without silently trusting the network.
func (s *Store) UpdateRole(ctx context.Context, userID, role string) error {
	if !model.ValidRole(role) {
		return errors.New("session: unknown role " + role)
	}
	if !s.IsAdmin() {
		return ErrNotAdmin
	}

	s.mu.Lock()
	prev, found := s.applyRoleLocked(userID, role)
	s.mu.Unlock()
	if !found {
		return errors.New("session: unknown user " + userID)
	}

	if err := s.client.UpdateUserRole(ctx, userID, role); err != nil {
		s.mu.Lock()
		s.applyRoleLocked(userID, prev)
		s.mu.Unlock()
		return err
	}
	return nil
}

// applyRoleLocked swaps one member's role and returns the previous value.
func (s *Store) applyRoleLocked(userID, role string) (prev string, found bool) {
	for i := range s.roster {
		if s.roster[i].ID == userID {
			prev = s.roster[i].Role
			s.roster[i].Role = role
			found = true
			break
		}
	}
	if !found {
		return "", false
	}
	if s.current != nil && s.current.ID == userID {
		s.current.Role = role
		store.SaveJSON(s.mirror, store.KeyUser, *s.current)
	}
	store.SaveJSON(s.mirror, store.KeyUsers, s.roster)
	return prev, true
}

// SetStatus bans or reactivates a roster member.  The roster is patched only
// after the backend confirms; banning the current user also ends the
// session, since a banned identity keeps its role but loses session
// validity.
func (s *Store) SetStatus(ctx context.Context, userID, status string) error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	if err := s.client.UpdateUserStatus(ctx, userID, status); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.roster {
		if s.roster[i].ID == userID {
			s.roster[i].Status = status
			break
		}
	}
	store.SaveJSON(s.mirror, store.KeyUsers, s.roster)
	logoutSelf := status == model.StatusBanned && s.current != nil && s.current.ID == userID
	if logoutSelf {
		s.clearLocked()
	}
	s.mu.Unlock()
	return nil
}

// RemoveUser requests account deletion and drops the member from the roster
// once the backend confirms.  Deleting the current user ends the session.
func (s *Store) RemoveUser(ctx context.Context, userID string) error {
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	if err := s.client.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.roster[:0]
	for _, u := range s.roster {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	s.roster = kept
	store.SaveJSON(s.mirror, store.KeyUsers, s.roster)
	logoutSelf := s.current != nil && s.current.ID == userID
	if logoutSelf {
		s.clearLocked()
	}
	s.mu.Unlock()
	return nil
}

// AddLocalIdentity appends a synthesized identity to the roster and mirrors
// it.  This is the no-backend fallback path used when an account request is
// approved; the server-side path creates the account remotely instead.
func (s *Store) AddLocalIdentity(name, email string) model.Identity {
	id := model.Identity{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		Role:       model.RoleMember,
		Status:     model.StatusActive,
		Verified:   true,
		DateJoined: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = append(s.roster, id)
	store.SaveJSON(s.mirror, store.KeyUsers, s.roster)
	return id
}
