package routes

const (
	Health = "/health"

	SignUp = "/api/v1/users/signup"
	Login  = "/api/v1/users/login"
	Logout = "/api/v1/users/logout"
	Me     = "/api/v1/users/me"

	UserMessages    = "/api/v1/users/{userId}/messages"
	MessageChannels = "/api/v1/messages/channels"
	Message         = "/api/v1/messages/{messageId}"

	Properties = "/api/v1/properties"
	Property   = "/api/v1/properties/{propertyId}"

	Leases           = "/api/v1/leases"
	Lease            = "/api/v1/leases/{leaseId}"
	LeaseDescription = "/api/v1/leases/{leaseId}/description"
	LeaseJoin        = "/api/v1/leases/join"

	LeaseTenants       = "/api/v1/leases/{leaseId}/tenants"
	LeaseTenantInvites = "/api/v1/leases/{leaseId}/tenants/invites"
	LeaseTenantLeave   = "/api/v1/leases/{leaseId}/tenants/leave"
	LeaseTenantRemove  = "/api/v1/leases/{leaseId}/tenants/remove"

	LeaseAnnouncements = "/api/v1/leases/{leaseId}/announcements"
	Announcement       = "/api/v1/announcements/{announcementId}"

	LeasePayments = "/api/v1/leases/{leaseId}/payments"
	Payment       = "/api/v1/payments/{paymentId}"

	PaymentReminders = "/api/v1/payments/{paymentId}/reminders"
	Reminder         = "/api/v1/reminders/{reminderId}"

	LeaseDocuments = "/api/v1/leases/{leaseId}/documents"
	Document       = "/api/v1/documents/{documentId}"
)
