package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"folio/internal/models"
)

// UserStore handles all admin-user database operations. Emails are
// normalized to lower case on the way in so lookups are case-insensitive.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, display_name, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(row *sql.Row) (*models.AdminUser, error) {
	u := &models.AdminUser{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by normalized email. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.AdminUser, error) {
	row := s.db.QueryRow(
		`SELECT `+userColumns+` FROM admin_users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.AdminUser, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM admin_users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new admin user with an already-hashed password.
// Returns ErrConflict if the normalized email is taken.
func (s *UserStore) Create(email, passwordHash, displayName string) (*models.AdminUser, error) {
	row := s.db.QueryRow(`
		INSERT INTO admin_users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		strings.ToLower(strings.TrimSpace(email)), passwordHash, displayName,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", mapError(err))
	}
	return u, nil
}

// UpdatePasswordHash replaces the stored password hash for a user.
func (s *UserStore) UpdatePasswordHash(id uuid.UUID, newHash string) error {
	res, err := s.db.Exec(
		`UPDATE admin_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		newHash, id,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTOTPSecret saves the TOTP secret for a user during 2FA setup.
// The secret is stored before verification; totp_enabled stays false until
// the user proves possession with a valid code.
func (s *UserStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	res, err := s.db.Exec(
		`UPDATE admin_users SET totp_secret = $1, updated_at = NOW() WHERE id = $2`,
		secret, id,
	)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// EnableTOTP marks 2FA as active after a successful code verification.
func (s *UserStore) EnableTOTP(id uuid.UUID) error {
	res, err := s.db.Exec(
		`UPDATE admin_users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DisableTOTP clears the TOTP secret and turns 2FA off.
func (s *UserStore) DisableTOTP(id uuid.UUID) error {
	res, err := s.db.Exec(
		`UPDATE admin_users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("disable totp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
