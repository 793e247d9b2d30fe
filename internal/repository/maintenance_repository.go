package repository

import (
	"database/sql"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// PostgresMaintenanceRepository implements domain.MaintenanceRepository
// using PostgreSQL.
type PostgresMaintenanceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresMaintenanceRepository creates a new maintenance repository.
func NewPostgresMaintenanceRepository(db *sql.DB, logger *slog.Logger) *PostgresMaintenanceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMaintenanceRepository{db: db, logger: logger}
}

const maintenanceColumns = `id, tenant_id, vehicle_id, maint_date, maint_type, odometer_km, description, cost`

// ListAll returns all maintenance records of the tenant, newest first.
func (r *PostgresMaintenanceRepository) ListAll(tenantID int64) ([]*domain.Maintenance, error) {
	defer metrics.TimeDBOperation("query")()

	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance
		WHERE tenant_id = $1
		ORDER BY id DESC
	`
	return r.queryMaintenance(query, tenantID)
}

// ListByVehicle returns the service history of one vehicle, most recent
// service date first.
func (r *PostgresMaintenanceRepository) ListByVehicle(tenantID, vehicleID int64) ([]*domain.Maintenance, error) {
	defer metrics.TimeDBOperation("query")()

	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance
		WHERE tenant_id = $1 AND vehicle_id = $2
		ORDER BY maint_date DESC, id DESC
	`
	return r.queryMaintenance(query, tenantID, vehicleID)
}

func (r *PostgresMaintenanceRepository) queryMaintenance(query string, args ...interface{}) ([]*domain.Maintenance, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list maintenance records", slog.String("error", err.Error()))
		return nil, domain.Wrap(domain.ErrStore, "failed to list maintenance records", err)
	}
	defer rows.Close()

	var out []*domain.Maintenance
	for rows.Next() {
		m := &domain.Maintenance{}
		var desc sql.NullString
		var cost decimal.NullDecimal
		if err := rows.Scan(&m.ID, &m.TenantID, &m.VehicleID, &m.Date, &m.Type, &m.OdometerKM, &desc, &cost); err != nil {
			return nil, domain.Wrap(domain.ErrStore, "failed to scan maintenance record", err)
		}
		m.Description = strPtr(desc)
		if cost.Valid {
			m.Cost = cost.Decimal
		} else {
			m.Cost = decimal.Zero
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to read maintenance records", err)
	}
	return out, nil
}

// Insert creates a maintenance record under the tenant. The entity's tenant
// field is overwritten with tenantID.
func (r *PostgresMaintenanceRepository) Insert(tenantID int64, m *domain.Maintenance) (int64, error) {
	defer metrics.TimeDBOperation("insert")()

	m.TenantID = tenantID

	query := `
		INSERT INTO maintenance (tenant_id, vehicle_id, maint_date, maint_type, odometer_km, description, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		m.TenantID, m.VehicleID, m.Date, m.Type, m.OdometerKM, nullString(m.Description), m.Cost,
	).Scan(&m.ID)
	if err != nil {
		r.logger.Error("failed to insert maintenance record",
			slog.Int64("tenant_id", tenantID),
			slog.Int64("vehicle_id", m.VehicleID),
			slog.String("error", err.Error()),
		)
		return 0, domain.Wrap(domain.ErrStore, "failed to insert maintenance record", err)
	}
	return m.ID, nil
}

// Update modifies the record matched by (tenantID, m.ID). Zero rows affected
// is an explicit failure.
func (r *PostgresMaintenanceRepository) Update(tenantID int64, m *domain.Maintenance) error {
	defer metrics.TimeDBOperation("update")()

	query := `
		UPDATE maintenance
		SET maint_date = $1, maint_type = $2, odometer_km = $3, description = $4, cost = $5
		WHERE tenant_id = $6 AND id = $7
	`

	res, err := r.db.Exec(query,
		m.Date, m.Type, m.OdometerKM, nullString(m.Description), m.Cost,
		tenantID, m.ID,
	)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to update maintenance record", err)
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

// Delete removes the record matched by (tenantID, id).
func (r *PostgresMaintenanceRepository) Delete(tenantID int64, id int64) error {
	defer metrics.TimeDBOperation("delete")()

	res, err := r.db.Exec(`DELETE FROM maintenance WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to delete maintenance record", err)
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
