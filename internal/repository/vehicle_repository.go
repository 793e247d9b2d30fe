package repository

import (
	"database/sql"
	"log/slog"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// PostgresVehicleRepository implements domain.VehicleRepository using
// PostgreSQL.
type PostgresVehicleRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVehicleRepository creates a new vehicle repository.
func NewPostgresVehicleRepository(db *sql.DB, logger *slog.Logger) *PostgresVehicleRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVehicleRepository{db: db, logger: logger}
}

// ListAll returns all vehicles of the tenant, newest first.
func (r *PostgresVehicleRepository) ListAll(tenantID int64) ([]*domain.Vehicle, error) {
	defer metrics.TimeDBOperation("query")()

	query := `
		SELECT id, tenant_id, customer_id, public_id,
		       plate_no, vin_no, make, model, model_year, colour,
		       current_km, status, notes, service_entry_date, created_at
		FROM vehicle
		WHERE tenant_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		r.logger.Error("failed to list vehicles",
			slog.Int64("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return nil, domain.Wrap(domain.ErrStore, "failed to list vehicles", err)
	}
	defer rows.Close()

	var out []*domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to read vehicles", err)
	}
	return out, nil
}

func scanVehicle(rows *sql.Rows) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var (
		customerID   sql.NullInt64
		vin, colour  sql.NullString
		notes        sql.NullString
		serviceEntry sql.NullTime
		status       string
	)
	err := rows.Scan(
		&v.ID, &v.TenantID, &customerID, &v.PublicID,
		&v.PlateNo, &vin, &v.Make, &v.Model, &v.ModelYear, &colour,
		&v.CurrentKM, &status, &notes, &serviceEntry, &v.CreatedAt,
	)
	if err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to scan vehicle", err)
	}
	if v.Status, err = domain.ParseVehicleStatus(status); err != nil {
		return nil, domain.Wrap(domain.ErrStore, "failed to decode vehicle row", err)
	}
	v.CustomerID = int64Ptr(customerID)
	v.VinNo = strPtr(vin)
	v.Colour = strPtr(colour)
	v.Notes = strPtr(notes)
	v.ServiceEntryDate = timePtr(serviceEntry)
	return v, nil
}

// Insert creates a vehicle under the tenant, generating the public id when
// absent. The entity's tenant field is overwritten with tenantID.
func (r *PostgresVehicleRepository) Insert(tenantID int64, v *domain.Vehicle) (int64, error) {
	defer metrics.TimeDBOperation("insert")()

	v.TenantID = tenantID
	if v.PublicID == "" {
		v.PublicID = domain.NewPublicID()
	}

	query := `
		INSERT INTO vehicle
		  (tenant_id, customer_id, public_id, plate_no, vin_no, make, model, model_year, colour,
		   current_km, status, notes, service_entry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query,
		v.TenantID, nullInt64(v.CustomerID), v.PublicID, v.PlateNo, nullString(v.VinNo),
		v.Make, v.Model, v.ModelYear, nullString(v.Colour),
		v.CurrentKM, string(v.Status), nullString(v.Notes), nullTime(v.ServiceEntryDate),
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.E(domain.ErrConflict, "Bu araç zaten kayıtlı.")
		}
		r.logger.Error("failed to insert vehicle",
			slog.Int64("tenant_id", tenantID),
			slog.String("plate_no", v.PlateNo),
			slog.String("error", err.Error()),
		)
		return 0, domain.Wrap(domain.ErrStore, "failed to insert vehicle", err)
	}
	return v.ID, nil
}

// Update modifies the vehicle matched by (tenantID, v.ID). The public id is
// never reassigned. Zero rows affected is an explicit failure.
func (r *PostgresVehicleRepository) Update(tenantID int64, v *domain.Vehicle) error {
	defer metrics.TimeDBOperation("update")()

	query := `
		UPDATE vehicle
		SET customer_id = $1, plate_no = $2, vin_no = $3, make = $4, model = $5, model_year = $6,
		    colour = $7, current_km = $8, status = $9, notes = $10, service_entry_date = $11
		WHERE tenant_id = $12 AND id = $13
	`

	res, err := r.db.Exec(query,
		nullInt64(v.CustomerID), v.PlateNo, nullString(v.VinNo), v.Make, v.Model, v.ModelYear,
		nullString(v.Colour), v.CurrentKM, string(v.Status), nullString(v.Notes), nullTime(v.ServiceEntryDate),
		tenantID, v.ID,
	)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to update vehicle", err)
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

// Delete removes the vehicle matched by (tenantID, id).
func (r *PostgresVehicleRepository) Delete(tenantID int64, id int64) error {
	defer metrics.TimeDBOperation("delete")()

	res, err := r.db.Exec(`DELETE FROM vehicle WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return domain.Wrap(domain.ErrStore, "failed to delete vehicle", err)
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
