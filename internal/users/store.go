package users

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/kcetprep/kcetprep/internal/validation"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrLastAdmin          = errors.New("cannot demote the last admin")
)

type Store struct {
	db       *sql.DB
	validate *validator.Validate

	// HashCost is the bcrypt cost for new hashes.
	HashCost int
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, validate: validation.New(), HashCost: 12}
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a student account.
func (s *Store) Register(ctx context.Context, in Registration) (User, error) {
	in.Email = normEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validation.Struct(s.validate, in); err != nil {
		return User{}, err
	}
	return s.create(ctx, in.Email, in.FullName, in.Password, RoleStudent)
}

func (s *Store) create(ctx context.Context, email, fullName, password, role string) (User, error) {
	if _, err := s.ByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		return User{}, errors.Wrap(err, "insert user")
	}
	return u, nil
}

func (s *Store) scanOne(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, errors.Wrap(err, "scan user")
	}
	return u, nil
}

func (s *Store) ByEmail(ctx context.Context, email string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id,email,full_name,password_hash,role,created_at FROM users WHERE email=$1`, normEmail(email)))
}

func (s *Store) ByID(ctx context.Context, id string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id,email,full_name,password_hash,role,created_at FROM users WHERE id=$1`, id))
}

// Authenticate returns the user when email and password match.
func (s *Store) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.ByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) ChangePassword(ctx context.Context, userID string, in PasswordChange) error {
	if err := validation.Struct(s.validate, in); err != nil {
		return err
	}
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.OldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.HashCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, string(hash), userID)
	return errors.Wrap(err, "update password")
}

func (s *Store) List(ctx context.Context, role string) ([]User, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if role == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id,email,full_name,role,created_at FROM users ORDER BY email`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id,email,full_name,role,created_at FROM users WHERE role=$1 ORDER BY email`, role)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()
	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// EnsureAdmin creates the admin account, or promotes an existing account
// with that email to admin. The password of an existing account is kept.
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) (User, error) {
	email = normEmail(email)
	u, err := s.ByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.create(ctx, email, "Admin User", password, RoleAdmin)
	case err != nil:
		return User{}, err
	case u.Role == RoleAdmin:
		return u, nil
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET role=$1 WHERE id=$2`, RoleAdmin, u.ID); err != nil {
		return User{}, errors.Wrap(err, "promote admin")
	}
	u.Role = RoleAdmin
	return u, nil
}

// SetRole changes a user's role. The last admin cannot be demoted.
func (s *Store) SetRole(ctx context.Context, userID, role string) (User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != RoleAdmin && role != RoleStudent {
		return User{}, ErrInvalidRole
	}
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if u.Role == role {
		return u, nil
	}
	if u.Role == RoleAdmin {
		var admins int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE role=$1`, RoleAdmin).Scan(&admins); err != nil {
			return User{}, errors.Wrap(err, "count admins")
		}
		if admins <= 1 {
			return User{}, ErrLastAdmin
		}
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET role=$1 WHERE id=$2`, role, u.ID); err != nil {
		return User{}, errors.Wrap(err, "update role")
	}
	u.Role = role
	return u, nil
}
