package service

import (
	"log/slog"
	"strings"
	"time"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// VehicleService validates and executes tenant-scoped vehicle operations.
type VehicleService struct {
	repo   domain.VehicleRepository
	logger *slog.Logger
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(repo domain.VehicleRepository, logger *slog.Logger) *VehicleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleService{repo: repo, logger: logger}
}

// List returns all vehicles of the tenant, newest first.
func (s *VehicleService) List(tenantID int64) ([]*domain.Vehicle, error) {
	out, err := s.repo.ListAll(tenantID)
	if err != nil {
		metrics.ObserveCRUD("vehicle", "list", "error")
		return nil, err
	}
	metrics.ObserveCRUD("vehicle", "list", "success")
	return out, nil
}

// Create validates the vehicle and inserts it under the tenant. A blank
// status defaults to ACTIVE before validation, matching the form default.
func (s *VehicleService) Create(tenantID int64, v *domain.Vehicle) (int64, error) {
	if v.Status == "" {
		v.Status = domain.VehicleActive
	}
	if err := validateVehicle(v); err != nil {
		return 0, err
	}
	id, err := s.repo.Insert(tenantID, v)
	if err != nil {
		metrics.ObserveCRUD("vehicle", "insert", "error")
		return 0, err
	}
	metrics.ObserveCRUD("vehicle", "insert", "success")
	return id, nil
}

// Update validates the vehicle and updates the row matched by
// (tenantID, v.ID).
func (s *VehicleService) Update(tenantID int64, v *domain.Vehicle) error {
	if v.ID == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if v.Status == "" {
		v.Status = domain.VehicleActive
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	if err := s.repo.Update(tenantID, v); err != nil {
		metrics.ObserveCRUD("vehicle", "update", "error")
		return err
	}
	metrics.ObserveCRUD("vehicle", "update", "success")
	return nil
}

// Delete removes the vehicle matched by (tenantID, id).
func (s *VehicleService) Delete(tenantID int64, id int64) error {
	if id == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if err := s.repo.Delete(tenantID, id); err != nil {
		metrics.ObserveCRUD("vehicle", "delete", "error")
		return err
	}
	metrics.ObserveCRUD("vehicle", "delete", "success")
	return nil
}

// Filter narrows an in-memory list by a trimmed, case-insensitive substring
// over plate number, make, and model.
func (s *VehicleService) Filter(list []*domain.Vehicle, query string) []*domain.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	var out []*domain.Vehicle
	for _, v := range list {
		if strings.Contains(strings.ToLower(v.PlateNo), q) ||
			strings.Contains(strings.ToLower(v.Make), q) ||
			strings.Contains(strings.ToLower(v.Model), q) {
			out = append(out, v)
		}
	}
	return out
}

func validateVehicle(v *domain.Vehicle) error {
	if strings.TrimSpace(v.PlateNo) == "" {
		return domain.E(domain.ErrValidation, "Plaka boş olamaz.")
	}
	if strings.TrimSpace(v.Make) == "" {
		return domain.E(domain.ErrValidation, "Marka boş olamaz.")
	}
	if strings.TrimSpace(v.Model) == "" {
		return domain.E(domain.ErrValidation, "Model boş olamaz.")
	}
	// Model year 0 means unknown; anything else must be a plausible year.
	if v.ModelYear != 0 && (v.ModelYear < 1900 || v.ModelYear > time.Now().Year()+1) {
		return domain.E(domain.ErrValidation, "Model yılı geçersiz.")
	}
	if v.CurrentKM < 0 {
		return domain.E(domain.ErrValidation, "Kilometre negatif olamaz.")
	}
	if _, err := domain.ParseVehicleStatus(string(v.Status)); err != nil {
		return domain.E(domain.ErrValidation, "Araç durumu geçersiz.")
	}
	return nil
}
