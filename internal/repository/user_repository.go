package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"storefront-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(email, passwordHash, role string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id int64) (*entities.User, error)
	UpdateProfile(id int64, email string, passwordHash *string) error
	SetResetToken(email, token string, expiry int64) (bool, error)
	ConsumeResetToken(token, passwordHash string, now int64) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, password_hash, role, reset_token, reset_token_expiry, created_at"

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ResetToken,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. Email uniqueness is enforced by the store;
// a violation surfaces as ErrDuplicateEmail.
func (r *userRepository) Create(email, passwordHash, role string) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(query, email, passwordHash, role))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

// FindByID finds a user by id
func (r *userRepository) FindByID(id int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

// UpdateProfile updates the email and, when passwordHash is non-nil, the
// stored password hash.
func (r *userRepository) UpdateProfile(id int64, email string, passwordHash *string) error {
	query := `
		UPDATE users
		SET email = $2,
		    password_hash = COALESCE($3, password_hash)
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, email, passwordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// SetResetToken stores a reset token and its expiry (epoch milliseconds) on
// the user owning the email. Returns false when no account matches.
func (r *userRepository) SetResetToken(email, token string, expiry int64) (bool, error) {
	query := `
		UPDATE users
		SET reset_token = $2, reset_token_expiry = $3
		WHERE email = $1
	`

	result, err := r.db.Exec(query, email, token, expiry)
	if err != nil {
		return false, fmt.Errorf("failed to set reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// ConsumeResetToken replaces the password hash and clears the token fields
// in one atomic update, guarded by the token still being unexpired at now
// (epoch milliseconds). Returns false when no unexpired token matched, so a
// second consumption of the same token always fails.
func (r *userRepository) ConsumeResetToken(token, passwordHash string, now int64) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token = $1 AND reset_token_expiry > $3
	`

	result, err := r.db.Exec(query, token, passwordHash, now)
	if err != nil {
		return false, fmt.Errorf("failed to consume reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}
