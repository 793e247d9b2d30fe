package repository

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new credential store.
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserRepository{db: db, logger: logger}
}

// FindByTenantAndEmail looks up a user by the exact (tenantID, email) pair.
// A missing row is a normal outcome and returns (nil, nil).
func (r *PostgresUserRepository) FindByTenantAndEmail(tenantID int64, email string) (*domain.User, error) {
	defer metrics.TimeDBOperation("query")()

	query := `
		SELECT id, tenant_id, role, status, email, password_hash, last_login_at
		FROM users
		WHERE tenant_id = $1 AND email = $2
		LIMIT 1
	`

	var (
		u         domain.User
		role      string
		status    string
		hash      sql.NullString
		lastLogin sql.NullTime
	)
	err := r.db.QueryRow(query, tenantID, email).Scan(
		&u.ID, &u.TenantID, &role, &status, &u.Email, &hash, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Wrap(domain.ErrStore, "failed to query user", err)
	}

	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to decode user row", err)
	}
	if u.Status, err = domain.ParseUserStatus(status); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to decode user row", err)
	}
	u.PasswordHash = strPtr(hash)
	u.LastLoginAt = timePtr(lastLogin)

	return &u, nil
}

// RecordLogin stamps last_login_at to the current time.
func (r *PostgresUserRepository) RecordLogin(userID int64) error {
	defer metrics.TimeDBOperation("update")()

	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		r.logger.Error("failed to record login",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return domain.Wrap(domain.ErrStore, "failed to record login", err)
	}
	return nil
}
