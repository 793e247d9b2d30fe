package repository

import (
	"database/sql"
	"log/slog"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// PostgresCustomerRepository implements domain.CustomerRepository using
// PostgreSQL.
type PostgresCustomerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCustomerRepository creates a new customer repository.
func NewPostgresCustomerRepository(db *sql.DB, logger *slog.Logger) *PostgresCustomerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCustomerRepository{db: db, logger: logger}
}

// ListAll returns all customers of the tenant, newest first.
func (r *PostgresCustomerRepository) ListAll(tenantID int64) ([]*domain.Customer, error) {
	defer metrics.TimeDBOperation("query")()

	query := `
		SELECT id, tenant_id, first_name, last_name, phone, email, user_id, created_at
		FROM customers
		WHERE tenant_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		r.logger.Error("failed to list customers",
			slog.Int64("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return nil, domain.Wrap(domain.ErrStore, "failed to list customers", err)
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		c := &domain.Customer{}
		var phone, email sql.NullString
		var userID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &phone, &email, &userID, &c.CreatedAt); err != nil {
			return nil, domain.Wrap(domain.ErrStore, "failed to scan customer", err)
		}
		c.Phone = strPtr(phone)
		c.Email = strPtr(email)
		c.UserID = int64Ptr(userID)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to read customers", err)
	}
	return out, nil
}

// Insert creates a customer under the tenant. The entity's tenant field is
// overwritten with tenantID regardless of the caller-supplied value.
func (r *PostgresCustomerRepository) Insert(tenantID int64, c *domain.Customer) (int64, error) {
	defer metrics.TimeDBOperation("insert")()

	c.TenantID = tenantID

	query := `
		INSERT INTO customers (tenant_id, first_name, last_name, phone, email, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query,
		c.TenantID, c.FirstName, c.LastName,
		nullString(c.Phone), nullString(c.Email), nullInt64(c.UserID),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		r.logger.Error("failed to insert customer",
			slog.Int64("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return 0, domain.Wrap(domain.ErrStore, "failed to insert customer", err)
	}
	return c.ID, nil
}

// Update modifies the customer matched by (tenantID, c.ID). Zero rows
// affected is an explicit failure, never a silent no-op.
func (r *PostgresCustomerRepository) Update(tenantID int64, c *domain.Customer) error {
	defer metrics.TimeDBOperation("update")()

	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, phone = $3, email = $4, user_id = $5
		WHERE tenant_id = $6 AND id = $7
	`

	res, err := r.db.Exec(query,
		c.FirstName, c.LastName, nullString(c.Phone), nullString(c.Email), nullInt64(c.UserID),
		tenantID, c.ID,
	)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to update customer", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to check rows affected", err)
	}
	if rows == 0 {
		return domain.E(domain.ErrNotFound, "Güncelleme yapılamadı (kayıt bulunamadı veya tenant uyuşmuyor).")
	}
	return nil
}

// Delete removes the customer matched by (tenantID, id).
func (r *PostgresCustomerRepository) Delete(tenantID int64, id int64) error {
	defer metrics.TimeDBOperation("delete")()

	res, err := r.db.Exec(`DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to delete customer", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to check rows affected", err)
	}
	if rows == 0 {
		return domain.E(domain.ErrNotFound, "Silme yapılamadı (kayıt bulunamadı veya tenant uyuşmuyor).")
	}
	return nil
}
