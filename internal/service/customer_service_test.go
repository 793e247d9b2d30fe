package service

import (
	"errors"
	"testing"

	"github.com/yourorg/garagetrack/internal/domain"
)

type stubCustomerRepo struct {
	list      []*domain.Customer
	err       error
	lastID    int64
	gotTenant int64
	calls     int
}

func (s *stubCustomerRepo) ListAll(tenantID int64) ([]*domain.Customer, error) {
	s.calls++
	s.gotTenant = tenantID
	return s.list, s.err
}

func (s *stubCustomerRepo) Insert(tenantID int64, c *domain.Customer) (int64, error) {
	s.calls++
	s.gotTenant = tenantID
	if s.err != nil {
		return 0, s.err
	}
	s.lastID++
	return s.lastID, nil
}

func (s *stubCustomerRepo) Update(tenantID int64, c *domain.Customer) error {
	s.calls++
	s.gotTenant = tenantID
	return s.err
}

func (s *stubCustomerRepo) Delete(tenantID int64, id int64) error {
	s.calls++
	s.gotTenant = tenantID
	return s.err
}

func strp(s string) *string { return &s }

func TestCustomerCreateValidation(t *testing.T) {
	repo := &stubCustomerRepo{}
	s := NewCustomerService(repo, nil)

	if _, err := s.Create(1, &domain.Customer{LastName: "Doe"}); !errors.Is(err, domain.ErrValidation) || err.Error() != "Ad boş olamaz." {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Create(1, &domain.Customer{FirstName: "Jane", LastName: "  "}); err == nil || err.Error() != "Soyad boş olamaz." {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("validation failures must not reach the store")
	}

	id, err := s.Create(1, &domain.Customer{FirstName: "Jane", LastName: "Doe"})
	if err != nil || id != 1 {
		t.Fatalf("create failed: id=%d err=%v", id, err)
	}
	if repo.gotTenant != 1 {
		t.Fatalf("tenant id not threaded through, got %d", repo.gotTenant)
	}
}

func TestCustomerUpdateRequiresSelection(t *testing.T) {
	s := NewCustomerService(&stubCustomerRepo{}, nil)

	err := s.Update(1, &domain.Customer{FirstName: "Jane", LastName: "Doe"})
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(1, 0); err == nil || err.Error() != "Önce bir satır seçin." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCustomerNotFoundPassthrough(t *testing.T) {
	notFound := domain.E(domain.ErrNotFound, "Güncelleme yapılamadı (kayıt bulunamadı veya tenant uyuşmuyor).")
	s := NewCustomerService(&stubCustomerRepo{err: notFound}, nil)

	err := s.Update(1, &domain.Customer{ID: 5, FirstName: "Jane", LastName: "Doe"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found to pass through, got %v", err)
	}
}

func TestCustomerFilter(t *testing.T) {
	s := NewCustomerService(&stubCustomerRepo{}, nil)

	list := []*domain.Customer{
		{ID: 1, FirstName: "Ayşe", LastName: "Yılmaz", Phone: strp("0532 111 22 33")},
		{ID: 2, FirstName: "Mehmet", LastName: "Demir", Email: strp("mehmet@ornek.com")},
		{ID: 3, FirstName: "John", LastName: "Smith"},
	}

	if got := s.Filter(list, ""); len(got) != 3 {
		t.Fatalf("blank query must return the full list, got %d", len(got))
	}
	if got := s.Filter(list, "  demir "); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected trimmed case-insensitive last-name match, got %+v", got)
	}
	if got := s.Filter(list, "0532"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected phone match, got %+v", got)
	}
	if got := s.Filter(list, "ornek.com"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected email match, got %+v", got)
	}
	if got := s.Filter(list, "nobody"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
