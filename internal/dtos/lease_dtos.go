package dtos

// ----------------------
// Requests
// ----------------------

type CreateLeaseRequest struct {
	PropertyID  string  `json:"propertyId" validate:"required,uuid4"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	TotalRent   float64 `json:"totalRent" validate:"currency"`
	Description string  `json:"description" validate:"max=1000"`
}

type UpdateLeaseRequest struct {
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	TotalRent   float64 `json:"totalRent" validate:"currency"`
	Description string  `json:"description" validate:"max=1000"`
}

type UpdateLeaseDescriptionRequest struct {
	Description string `json:"description" validate:"max=1000"`
}

type JoinLeaseRequest struct {
	Code string `json:"code" validate:"required"`
}

type InviteTenantRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RemoveTenantRequest struct {
	TenantID string `json:"tenantId" validate:"required,uuid4"`
}
