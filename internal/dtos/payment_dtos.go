package dtos

// ----------------------
// Requests
// ----------------------

type PaymentRequest struct {
	Name              string    `json:"name" validate:"required,min=1,max=25"`
	Description       *string   `json:"description,omitempty" validate:"omitempty,max=255"`
	Amount            float64   `json:"amount" validate:"currency"`
	Type              string    `json:"type" validate:"required,oneof=RENT DEPOSIT UTILITIES OTHER"`
	PaymentDate       string    `json:"paymentDate" validate:"required"`
	RecurringInterval string    `json:"recurringInterval" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY NONE"`
	Reminders         []FlexInt `json:"reminders,omitempty" validate:"omitempty,max=8,dive,min=0,max=7"`
}

type ReminderRequest struct {
	DaysBefore FlexInt `json:"daysBefore" validate:"min=0,max=7"`
}
