package service

import (
	"log/slog"
	"strings"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// MaintenanceService validates and executes tenant-scoped maintenance
// record operations.
type MaintenanceService struct {
	repo   domain.MaintenanceRepository
	logger *slog.Logger
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(repo domain.MaintenanceRepository, logger *slog.Logger) *MaintenanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MaintenanceService{repo: repo, logger: logger}
}

// List returns all maintenance records of the tenant, newest first.
func (s *MaintenanceService) List(tenantID int64) ([]*domain.Maintenance, error) {
	out, err := s.repo.ListAll(tenantID)
	if err != nil {
		metrics.ObserveCRUD("maintenance", "list", "error")
		return nil, err
	}
	metrics.ObserveCRUD("maintenance", "list", "success")
	return out, nil
}

// History returns the service history of one vehicle, most recent first.
func (s *MaintenanceService) History(tenantID, vehicleID int64) ([]*domain.Maintenance, error) {
	if vehicleID == 0 {
		return nil, domain.E(domain.ErrValidation, "Önce bir araç seçin.")
	}
	out, err := s.repo.ListByVehicle(tenantID, vehicleID)
	if err != nil {
		metrics.ObserveCRUD("maintenance", "list", "error")
		return nil, err
	}
	metrics.ObserveCRUD("maintenance", "list", "success")
	return out, nil
}

// Create validates the record and inserts it under the tenant.
func (s *MaintenanceService) Create(tenantID int64, m *domain.Maintenance) (int64, error) {
	if err := validateMaintenance(m); err != nil {
		return 0, err
	}
	id, err := s.repo.Insert(tenantID, m)
	if err != nil {
		metrics.ObserveCRUD("maintenance", "insert", "error")
		return 0, err
	}
	metrics.ObserveCRUD("maintenance", "insert", "success")
	return id, nil
}

// Update validates the record and updates the row matched by
// (tenantID, m.ID).
func (s *MaintenanceService) Update(tenantID int64, m *domain.Maintenance) error {
	if m.ID == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if err := validateMaintenance(m); err != nil {
		return err
	}
	if err := s.repo.Update(tenantID, m); err != nil {
		metrics.ObserveCRUD("maintenance", "update", "error")
		return err
	}
	metrics.ObserveCRUD("maintenance", "update", "success")
	return nil
}

// Delete removes the record matched by (tenantID, id).
func (s *MaintenanceService) Delete(tenantID int64, id int64) error {
	if id == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if err := s.repo.Delete(tenantID, id); err != nil {
		metrics.ObserveCRUD("maintenance", "delete", "error")
		return err
	}
	metrics.ObserveCRUD("maintenance", "delete", "success")
	return nil
}

func validateMaintenance(m *domain.Maintenance) error {
	if m.VehicleID == 0 {
		return domain.E(domain.ErrValidation, "Önce bir araç seçin.")
	}
	if m.Date.IsZero() {
		return domain.E(domain.ErrValidation, "Bakım tarihi boş olamaz.")
	}
	if strings.TrimSpace(m.Type) == "" {
		return domain.E(domain.ErrValidation, "Bakım türü boş olamaz.")
	}
	if m.OdometerKM < 0 {
		return domain.E(domain.ErrValidation, "Kilometre negatif olamaz.")
	}
	if m.Cost.IsNegative() {
		return domain.E(domain.ErrValidation, "Maliyet negatif olamaz.")
	}
	return nil
}
