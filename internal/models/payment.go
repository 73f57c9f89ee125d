package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeRent      PaymentType = "RENT"
	PaymentTypeDeposit   PaymentType = "DEPOSIT"
	PaymentTypeUtilities PaymentType = "UTILITIES"
	PaymentTypeOther     PaymentType = "OTHER"
)

type RecurringInterval string

const (
	IntervalDaily   RecurringInterval = "DAILY"
	IntervalWeekly  RecurringInterval = "WEEKLY"
	IntervalMonthly RecurringInterval = "MONTHLY"
	IntervalYearly  RecurringInterval = "YEARLY"
	IntervalNone    RecurringInterval = "NONE"
)

type Payment struct {
	ID                uuid.UUID         `json:"id"`
	LeaseID           uuid.UUID         `json:"leaseId"`
	Name              string            `json:"name"`
	Description       *string           `json:"description,omitempty"`
	Amount            float64           `json:"amount"`
	Type              PaymentType       `json:"type"`
	PaymentDate       time.Time         `json:"paymentDate"`
	RecurringInterval RecurringInterval `json:"recurringInterval"`
	IsDeleted         bool              `json:"-"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`

	Reminders []*Reminder `json:"reminders,omitempty"`
}

// Reminder schedules a digest email DaysBefore days ahead of the
// payment date. (PaymentID, DaysBefore) is unique.
type Reminder struct {
	ID         uuid.UUID `json:"id"`
	PaymentID  uuid.UUID `json:"paymentId"`
	DaysBefore int       `json:"daysBefore"`
	CreatedAt  time.Time `json:"createdAt"`
}
