package repository

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// PostgresRegistrationRepository creates a tenant and its first
// administrator in one transaction.
type PostgresRegistrationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRegistrationRepository creates a new registration repository.
func NewPostgresRegistrationRepository(db *sql.DB, logger *slog.Logger) *PostgresRegistrationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRegistrationRepository{db: db, logger: logger}
}

// CreateTenantWithAdmin inserts the tenant, checks the new tenant has no
// user with the given email, and inserts the SERVICE_ADMIN user. Any
// failure rolls back the whole transaction; no tenant-without-admin state
// is ever observable.
func (r *PostgresRegistrationRepository) CreateTenantWithAdmin(companyName, email, passwordHash string) (int64, error) {
	defer metrics.TimeDBOperation("transaction")()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, domain.Wrap(domain.ErrStore, "failed to begin registration transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("failed to roll back registration", slog.String("error", rbErr.Error()))
			}
		}
	}()

	var tenantID int64
	if err := tx.QueryRow(
		`INSERT INTO tenants (name) VALUES ($1) RETURNING id`,
		companyName,
	).Scan(&tenantID); err != nil {
		return 0, domain.Wrap(domain.ErrStore, "failed to insert tenant", err)
	}

	// Always false for a freshly generated tenant id; guards against
	// generated-id reuse.
	var one int
	err = tx.QueryRow(
		`SELECT 1 FROM users WHERE tenant_id = $1 AND email = $2 LIMIT 1`,
		tenantID, email,
	).Scan(&one)
	switch {
	case err == nil:
		return 0, domain.E(domain.ErrConflict, "Bu e-posta zaten kayıtlı.")
	case !errors.Is(err, sql.ErrNoRows):
		return 0, domain.Wrap(domain.ErrStore, "failed to check existing email", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO users (tenant_id, role, status, email, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		tenantID, string(domain.RoleServiceAdmin), string(domain.UserActive), email, passwordHash,
	); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.E(domain.ErrConflict, "Bu e-posta zaten kayıtlı.")
		}
		return 0, domain.Wrap(domain.ErrStore, "failed to insert admin user", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.Wrap(domain.ErrStore, "failed to commit registration", err)
	}
	committed = true

	r.logger.Info("tenant registered",
		slog.Int64("tenant_id", tenantID),
		slog.String("company", companyName),
	)
	return tenantID, nil
}
