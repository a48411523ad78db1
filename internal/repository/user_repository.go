package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords, so callers cannot enumerate accounts.
var ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "Invalid username or password.")

// dummyHash keeps the bcrypt cost identical when the username is unknown.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, name, created_at, updated_at
		FROM users
		WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return entity.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash, name string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, name, created_at, updated_at`,
		username, passwordHash, name).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies the credentials and returns the session projection.
// Unknown user and wrong password are indistinguishable to the caller.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (entity.SessionUser, error) {
	user, err := r.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return entity.SessionUser{}, ErrInvalidCredentials
		}
		return entity.SessionUser{}, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entity.SessionUser{}, ErrInvalidCredentials
	}

	return entity.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
