package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourorg/garagetrack/internal/domain"
)

type stubMaintenanceRepo struct {
	list       []*domain.Maintenance
	err        error
	lastID     int64
	gotVehicle int64
	calls      int
}

func (s *stubMaintenanceRepo) ListAll(tenantID int64) ([]*domain.Maintenance, error) {
	s.calls++
	return s.list, s.err
}

func (s *stubMaintenanceRepo) ListByVehicle(tenantID, vehicleID int64) ([]*domain.Maintenance, error) {
	s.calls++
	s.gotVehicle = vehicleID
	return s.list, s.err
}

func (s *stubMaintenanceRepo) Insert(tenantID int64, m *domain.Maintenance) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	s.lastID++
	return s.lastID, nil
}

func (s *stubMaintenanceRepo) Update(tenantID int64, m *domain.Maintenance) error {
	s.calls++
	return s.err
}

func (s *stubMaintenanceRepo) Delete(tenantID int64, id int64) error {
	s.calls++
	return s.err
}

func validMaintenance() *domain.Maintenance {
	return &domain.Maintenance{
		VehicleID:  3,
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Type:       "Yağ değişimi",
		OdometerKM: 46000,
		Cost:       decimal.NewFromInt(1500),
	}
}

func TestMaintenanceHistoryRequiresVehicle(t *testing.T) {
	repo := &stubMaintenanceRepo{}
	s := NewMaintenanceService(repo, nil)

	_, err := s.History(1, 0)
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "Önce bir araç seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("missing selection must not reach the store")
	}

	if _, err := s.History(1, 3); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if repo.gotVehicle != 3 {
		t.Fatalf("vehicle id not threaded through, got %d", repo.gotVehicle)
	}
}

func TestMaintenanceValidation(t *testing.T) {
	repo := &stubMaintenanceRepo{}
	s := NewMaintenanceService(repo, nil)

	cases := []struct {
		mutate func(*domain.Maintenance)
		want   string
	}{
		{func(m *domain.Maintenance) { m.VehicleID = 0 }, "Önce bir araç seçin."},
		{func(m *domain.Maintenance) { m.Date = time.Time{} }, "Bakım tarihi boş olamaz."},
		{func(m *domain.Maintenance) { m.Type = "  " }, "Bakım türü boş olamaz."},
		{func(m *domain.Maintenance) { m.OdometerKM = -5 }, "Kilometre negatif olamaz."},
		{func(m *domain.Maintenance) { m.Cost = decimal.NewFromInt(-1) }, "Maliyet negatif olamaz."},
	}
	for _, c := range cases {
		m := validMaintenance()
		c.mutate(m)
		_, err := s.Create(1, m)
		if !errors.Is(err, domain.ErrValidation) || err.Error() != c.want {
			t.Errorf("want %q, got %v", c.want, err)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("validation failures must not reach the store")
	}

	// Zero cost is a valid record.
	m := validMaintenance()
	m.Cost = decimal.Zero
	if _, err := s.Create(1, m); err != nil {
		t.Fatalf("zero cost must be accepted: %v", err)
	}
}

func TestMaintenanceUpdateRequiresSelection(t *testing.T) {
	s := NewMaintenanceService(&stubMaintenanceRepo{}, nil)

	if err := s.Update(1, validMaintenance()); err == nil || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(1, 0); err == nil || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
}
