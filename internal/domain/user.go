package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles within a tenant.
type Role string

const (
	RoleServiceAdmin Role = "SERVICE_ADMIN"
	RoleServiceStaff Role = "SERVICE_STAFF"
	RoleCustomer     Role = "CUSTOMER"
)

// ParseRole validates a role read from the store. Unknown values fail
// explicitly instead of defaulting.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleServiceAdmin, RoleServiceStaff, RoleCustomer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UserStatus is the closed set of account states.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserDisabled UserStatus = "DISABLED"
)

// ParseUserStatus validates a status read from the store.
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserActive, UserDisabled:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// Tenant is a repair-shop organization. Immutable after creation; owns
// users, customers, and vehicles.
type Tenant struct {
	ID   int64
	Name string
}

// User belongs to exactly one tenant. Email is unique within the tenant,
// not globally. PasswordHash is nil for accounts with login disabled.
type User struct {
	ID           int64
	TenantID     int64
	Role         Role
	Status       UserStatus
	Email        string
	PasswordHash *string
	LastLoginAt  *time.Time
}

// UserRepository is the credential store.
type UserRepository interface {
	// FindByTenantAndEmail looks up a user by the exact (tenantID, email)
	// pair. A missing row is a normal outcome and returns (nil, nil).
	FindByTenantAndEmail(tenantID int64, email string) (*User, error)

	// RecordLogin stamps last_login_at to the current time.
	RecordLogin(userID int64) error
}

// RegistrationRepository creates a tenant together with its first
// administrator in a single transaction. No partial tenant-without-admin
// state may ever be observable.
type RegistrationRepository interface {
	CreateTenantWithAdmin(companyName, email, passwordHash string) (tenantID int64, err error)
}
