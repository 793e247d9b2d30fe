package domain

import "time"

// Customer belongs to a tenant. UserID optionally links the customer to a
// login account for self-service; nil means no link.
type Customer struct {
	ID        int64
	TenantID  int64
	FirstName string
	LastName  string
	Phone     *string
	Email     *string
	UserID    *int64
	CreatedAt time.Time
}

// CustomerRepository defines tenant-scoped data access for customers.
type CustomerRepository interface {
	ListAll(tenantID int64) ([]*Customer, error)
	Insert(tenantID int64, c *Customer) (int64, error)
	Update(tenantID int64, c *Customer) error
	Delete(tenantID int64, id int64) error
}
