package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

const testBcryptCost = 4 // bcrypt.MinCost, keeps the tests fast

func TestSeededAccountsAuthenticate(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryIdentityRepo(testBcryptCost)

	admin, err := r.Authenticate(ctx, "admin@research.com", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !admin.IsStaff || admin.Role != model.RoleAdmin {
		t.Fatalf("admin account = %+v", admin)
	}
	if admin.PasswordHash != "" {
		t.Fatal("password hash leaked out of Authenticate")
	}

	member, err := r.Authenticate(ctx, "  Member@Research.com ", "member123")
	if err != nil {
		t.Fatalf("member login with unnormalized email: %v", err)
	}
	if member.IsStaff || member.Role != model.RoleMember {
		t.Fatalf("member account = %+v", member)
	}
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryIdentityRepo(testBcryptCost)

	if _, err := r.Authenticate(ctx, "admin@research.com", "wrong"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bad password: %v", err)
	}
	if _, err := r.Authenticate(ctx, "ghost@research.com", "admin123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: %v", err)
	}

	// A banned account fails exactly like an unknown one.
	admin, _ := r.Authenticate(ctx, "admin@research.com", "admin123")
	if err := r.UpdateStatus(ctx, admin.ID, model.StatusBanned); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Authenticate(ctx, "admin@research.com", "admin123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("banned account: %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryIdentityRepo(testBcryptCost)

	created, err := r.Create(ctx, Account{Email: "new@research.com", Name: "New", Role: model.RoleMember, Status: model.StatusActive}, "pw")
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}
	if _, err := r.Create(ctx, Account{Email: "New@Research.com", Name: "Dup"}, "pw"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email: %v", err)
	}
	if _, err := r.Authenticate(ctx, "new@research.com", "pw"); err != nil {
		t.Fatalf("created account cannot sign in: %v", err)
	}
}

func TestListExcludesBanned(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryIdentityRepo(testBcryptCost)

	member, _ := r.Authenticate(ctx, "member@research.com", "member123")
	if err := r.UpdateStatus(ctx, member.ID, model.StatusBanned); err != nil {
		t.Fatal(err)
	}
	accounts, err := r.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range accounts {
		if a.ID == member.ID {
			t.Fatal("banned account still listed")
		}
	}
}

func TestDeleteRemovesAccount(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryIdentityRepo(testBcryptCost)

	member, _ := r.Authenticate(ctx, "member@research.com", "member123")
	if err := r.Delete(ctx, member.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetByID(ctx, member.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted account still resolvable: %v", err)
	}
	if err := r.Delete(ctx, member.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}
