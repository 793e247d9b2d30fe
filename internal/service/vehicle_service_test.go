package service

import (
	"errors"
	"testing"
	"time"

	"github.com/yourorg/garagetrack/internal/domain"
)

type stubVehicleRepo struct {
	list   []*domain.Vehicle
	err    error
	lastID int64
	got    *domain.Vehicle
	calls  int
}

func (s *stubVehicleRepo) ListAll(tenantID int64) ([]*domain.Vehicle, error) {
	s.calls++
	return s.list, s.err
}

func (s *stubVehicleRepo) Insert(tenantID int64, v *domain.Vehicle) (int64, error) {
	s.calls++
	s.got = v
	if s.err != nil {
		return 0, s.err
	}
	s.lastID++
	return s.lastID, nil
}

func (s *stubVehicleRepo) Update(tenantID int64, v *domain.Vehicle) error {
	s.calls++
	s.got = v
	return s.err
}

func (s *stubVehicleRepo) Delete(tenantID int64, id int64) error {
	s.calls++
	return s.err
}

func validVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		PlateNo:   "34ABC123",
		Make:      "Renault",
		Model:     "Clio",
		ModelYear: 2020,
		CurrentKM: 45000,
		Status:    domain.VehicleActive,
	}
}

func TestVehicleCreateDefaultsStatus(t *testing.T) {
	repo := &stubVehicleRepo{}
	s := NewVehicleService(repo, nil)

	v := validVehicle()
	v.Status = ""
	if _, err := s.Create(1, v); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if repo.got.Status != domain.VehicleActive {
		t.Fatalf("blank status must default to ACTIVE, got %q", repo.got.Status)
	}
}

func TestVehicleValidation(t *testing.T) {
	repo := &stubVehicleRepo{}
	s := NewVehicleService(repo, nil)

	cases := []struct {
		mutate func(*domain.Vehicle)
		want   string
	}{
		{func(v *domain.Vehicle) { v.PlateNo = " " }, "Plaka boş olamaz."},
		{func(v *domain.Vehicle) { v.Make = "" }, "Marka boş olamaz."},
		{func(v *domain.Vehicle) { v.Model = "" }, "Model boş olamaz."},
		{func(v *domain.Vehicle) { v.ModelYear = 1850 }, "Model yılı geçersiz."},
		{func(v *domain.Vehicle) { v.ModelYear = time.Now().Year() + 5 }, "Model yılı geçersiz."},
		{func(v *domain.Vehicle) { v.CurrentKM = -1 }, "Kilometre negatif olamaz."},
		{func(v *domain.Vehicle) { v.Status = "RETIRED" }, "Araç durumu geçersiz."},
	}
	for _, c := range cases {
		v := validVehicle()
		c.mutate(v)
		_, err := s.Create(1, v)
		if !errors.Is(err, domain.ErrValidation) || err.Error() != c.want {
			t.Errorf("want %q, got %v", c.want, err)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("validation failures must not reach the store")
	}

	// Year zero means unknown and passes.
	v := validVehicle()
	v.ModelYear = 0
	if _, err := s.Create(1, v); err != nil {
		t.Fatalf("unknown model year must be accepted: %v", err)
	}
}

func TestVehicleUpdateRequiresSelection(t *testing.T) {
	s := NewVehicleService(&stubVehicleRepo{}, nil)

	if err := s.Update(1, validVehicle()); err == nil || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(1, 0); err == nil || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVehicleConflictPassthrough(t *testing.T) {
	conflict := domain.E(domain.ErrConflict, "Bu araç zaten kayıtlı.")
	s := NewVehicleService(&stubVehicleRepo{err: conflict}, nil)

	if _, err := s.Create(1, validVehicle()); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict to pass through, got %v", err)
	}
}

func TestVehicleFilter(t *testing.T) {
	s := NewVehicleService(&stubVehicleRepo{}, nil)

	list := []*domain.Vehicle{
		{ID: 1, PlateNo: "34ABC123", Make: "Renault", Model: "Clio"},
		{ID: 2, PlateNo: "06XYZ789", Make: "Ford", Model: "Focus"},
		{ID: 3, PlateNo: "35KLM456", Make: "Renault", Model: "Megane"},
	}

	if got := s.Filter(list, ""); len(got) != 3 {
		t.Fatalf("blank query must return the full list, got %d", len(got))
	}
	if got := s.Filter(list, "renault"); len(got) != 2 {
		t.Fatalf("expected two make matches, got %d", len(got))
	}
	if got := s.Filter(list, "06xyz"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected plate match, got %+v", got)
	}
	if got := s.Filter(list, "focus"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected model match, got %+v", got)
	}
}
