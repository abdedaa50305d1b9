package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/utils"
)

// MySQLIdentityRepo persists accounts in the `identities` table.  It is used
// when the demo backend is configured with a database, giving the demo a
// durable roster across restarts.
type MySQLIdentityRepo struct {
	DB   *sql.DB
	Cost int // bcrypt cost for Create
}

func NewMySQLIdentityRepo(db *sql.DB, cost int) *MySQLIdentityRepo {
	return &MySQLIdentityRepo{DB: db, Cost: cost}
}

const identityCols = "id, email, name, password_hash, role, status, verified, is_staff, is_superuser, date_joined, last_login"

func scanIdentity(row interface{ Scan(...any) error }) (Account, error) {
	var (
		a         Account
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.Status,
		&a.Verified, &a.IsStaff, &a.IsSuperuser, &a.DateJoined, &lastLogin)
	if err != nil {
		return Account{}, err
	}
	if lastLogin.Valid {
		a.LastLogin = lastLogin.Time
	}
	return a, nil
}

func (r *MySQLIdentityRepo) Authenticate(ctx context.Context, email, password string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+identityCols+" FROM identities WHERE email=? LIMIT 1", email)
	a, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	if a.Status == model.StatusBanned || !utils.VerifyPassword(a.PasswordHash, password) {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *MySQLIdentityRepo) GetByID(ctx context.Context, id string) (Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+identityCols+" FROM identities WHERE id=? LIMIT 1", id)
	a, err := scanIdentity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

func (r *MySQLIdentityRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+identityCols+" FROM identities WHERE status=? ORDER BY date_joined", model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		a, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *MySQLIdentityRepo) Create(ctx context.Context, a Account, password string) (Account, error) {
	hash, err := utils.HashPassword(password, r.Cost)
	if err != nil {
		return Account{}, err
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	if a.DateJoined.IsZero() {
		a.DateJoined = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO identities (email, name, password_hash, role, status, verified, is_staff, is_superuser, date_joined) VALUES (?,?,?,?,?,?,?,?,?)",
		a.Email, a.Name, hash, a.Role, a.Status, a.Verified, a.IsStaff, a.IsSuperuser, a.DateJoined)
	if err != nil {
		// 1062 is MySQL's duplicate key error.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return Account{}, ErrEmailExists
		}
		return Account{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Account{}, err
	}
	a.ID = strconv.FormatInt(id, 10)
	a.PasswordHash = hash
	return a, nil
}

func (r *MySQLIdentityRepo) UpdateRole(ctx context.Context, id, role string) error {
	return r.exec(ctx, "UPDATE identities SET role=? WHERE id=?", role, id)
}

func (r *MySQLIdentityRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.exec(ctx, "UPDATE identities SET status=? WHERE id=?", status, id)
}

func (r *MySQLIdentityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM identities WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQLIdentityRepo) TouchLogin(ctx context.Context, id string) error {
	return r.exec(ctx, "UPDATE identities SET last_login=NOW() WHERE id=?", id)
}

// exec runs a mutation where "no rows changed" is not an error; MySQL
// reports zero affected rows for a same-value update, so an existence check
// here would misfire.
func (r *MySQLIdentityRepo) exec(ctx context.Context, q string, args ...any) error {
	_, err := r.DB.ExecContext(ctx, q, args...)
	return err
}
