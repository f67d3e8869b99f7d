package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttrav/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
// Username and email lookups are case-insensitive.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrConflict if the username or
	// email is already taken.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile overwrites email, first name and last name.
	UpdateProfile(ctx context.Context, u domain.User) (domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, is_admin, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, is_admin)
		VALUES (@username, @email, @password_hash, @first_name, @last_name, @is_admin)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"is_admin":      u.IsAdmin,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.getBy(ctx, "repo.UserRepo.GetByID", `id = @v`, id)
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getBy(ctx, "repo.UserRepo.GetByUsername", `lower(username) = lower(@v)`, username)
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, "repo.UserRepo.GetByEmail", `lower(email) = lower(@v)`, email)
}

func (r *pgUserRepo) getBy(ctx context.Context, op, where string, v any) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"v": v}))
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return result, nil
}

func (r *pgUserRepo) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET email      = @email,
		    first_name = @first_name,
		    last_name  = @last_name,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", mapError(err))
	}
	return result, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
