package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VehicleStatus is the closed set of vehicle states.
type VehicleStatus string

const (
	VehicleActive    VehicleStatus = "ACTIVE"
	VehicleInService VehicleStatus = "IN_SERVICE"
	VehicleAssigned  VehicleStatus = "ASSIGNED"
	VehicleInactive  VehicleStatus = "INACTIVE"
)

// ParseVehicleStatus validates a status read from the store. A blank or
// unknown stored value is a decode error, never a silent default.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch VehicleStatus(s) {
	case VehicleActive, VehicleInService, VehicleAssigned, VehicleInactive:
		return VehicleStatus(s), nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

// Vehicle belongs to a tenant and optionally to a customer. PublicID is a
// tenant-stable opaque token generated once at insert and never reassigned.
type Vehicle struct {
	ID               int64
	TenantID         int64
	CustomerID       *int64
	PublicID         string
	PlateNo          string
	VinNo            *string
	Make             string
	Model            string
	ModelYear        int
	Colour           *string
	CurrentKM        int64
	Status           VehicleStatus
	Notes            *string
	ServiceEntryDate *time.Time
	CreatedAt        time.Time
}

// Equal compares two vehicles, preferring the public id when both carry one.
func (v *Vehicle) Equal(o *Vehicle) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.PublicID != "" && o.PublicID != "" {
		return v.PublicID == o.PublicID
	}
	return v.ID == o.ID
}

// NewPublicID generates a fresh public vehicle identifier.
func NewPublicID() string {
	return uuid.NewString()
}

// VehicleRepository defines tenant-scoped data access for vehicles.
type VehicleRepository interface {
	ListAll(tenantID int64) ([]*Vehicle, error)
	Insert(tenantID int64, v *Vehicle) (int64, error)
	Update(tenantID int64, v *Vehicle) error
	Delete(tenantID int64, id int64) error
}
