package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance is a service record for exactly one vehicle. Cost is a
// non-negative decimal and defaults to zero when unspecified.
type Maintenance struct {
	ID          int64
	TenantID    int64
	VehicleID   int64
	Date        time.Time
	Type        string
	OdometerKM  int
	Description *string
	Cost        decimal.Decimal
}

// MaintenanceRepository defines tenant-scoped data access for maintenance
// records.
type MaintenanceRepository interface {
	ListAll(tenantID int64) ([]*Maintenance, error)
	ListByVehicle(tenantID, vehicleID int64) ([]*Maintenance, error)
	Insert(tenantID int64, m *Maintenance) (int64, error)
	Update(tenantID int64, m *Maintenance) error
	Delete(tenantID int64, id int64) error
}
