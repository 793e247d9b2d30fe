package service

import (
	"log/slog"
	"strings"

	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
)

// CustomerService validates and executes tenant-scoped customer operations.
type CustomerService struct {
	repo   domain.CustomerRepository
	logger *slog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo domain.CustomerRepository, logger *slog.Logger) *CustomerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerService{repo: repo, logger: logger}
}

// List returns all customers of the tenant, newest first. Re-querying
// yields a fresh snapshot; no cursor state is kept.
func (s *CustomerService) List(tenantID int64) ([]*domain.Customer, error) {
	out, err := s.repo.ListAll(tenantID)
	if err != nil {
		metrics.ObserveCRUD("customer", "list", "error")
		return nil, err
	}
	metrics.ObserveCRUD("customer", "list", "success")
	return out, nil
}

// Create validates the customer and inserts it under the tenant.
func (s *CustomerService) Create(tenantID int64, c *domain.Customer) (int64, error) {
	if err := validateCustomer(c); err != nil {
		return 0, err
	}
	id, err := s.repo.Insert(tenantID, c)
	if err != nil {
		metrics.ObserveCRUD("customer", "insert", "error")
		return 0, err
	}
	metrics.ObserveCRUD("customer", "insert", "success")
	return id, nil
}

// Update validates the customer and updates the row matched by
// (tenantID, c.ID).
func (s *CustomerService) Update(tenantID int64, c *domain.Customer) error {
	if c.ID == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if err := validateCustomer(c); err != nil {
		return err
	}
	if err := s.repo.Update(tenantID, c); err != nil {
		metrics.ObserveCRUD("customer", "update", "error")
		return err
	}
	metrics.ObserveCRUD("customer", "update", "success")
	return nil
}

// Delete removes the customer matched by (tenantID, id).
func (s *CustomerService) Delete(tenantID int64, id int64) error {
	if id == 0 {
		return domain.E(domain.ErrValidation, "Önce bir satır seçin.")
	}
	if err := s.repo.Delete(tenantID, id); err != nil {
		metrics.ObserveCRUD("customer", "delete", "error")
		return err
	}
	metrics.ObserveCRUD("customer", "delete", "success")
	return nil
}

// Filter narrows an in-memory list by a trimmed, case-insensitive substring
// over first name, last name, phone, and email.
func (s *CustomerService) Filter(list []*domain.Customer, query string) []*domain.Customer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	var out []*domain.Customer
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			containsFold(c.Phone, q) ||
			containsFold(c.Email, q) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(s *string, q string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), q)
}

func validateCustomer(c *domain.Customer) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return domain.E(domain.ErrValidation, "Ad boş olamaz.")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return domain.E(domain.ErrValidation, "Soyad boş olamaz.")
	}
	return nil
}
