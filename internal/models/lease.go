package models

import (
	"time"

	"github.com/google/uuid"
)

type Lease struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"propertyId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TotalRent   float64   `json:"totalRent"`
	Description string    `json:"description"`
	InviteCode  string    `json:"inviteCode,omitempty"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Read-side denormalizations.
	PropertyName    string `json:"propertyName,omitempty"`
	PropertyAddress string `json:"propertyAddress,omitempty"`
	TenantCount     int    `json:"tenantCount"`
	PaymentCount    int    `json:"paymentCount"`
}

type LeaseTenant struct {
	ID        uuid.UUID `json:"id"`
	LeaseID   uuid.UUID `json:"leaseId"`
	TenantID  uuid.UUID `json:"tenantId"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	Tenant *UserProjection `json:"tenant,omitempty"`
}
