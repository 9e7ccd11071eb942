package enum

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusVerified PaymentStatus = "VERIFIED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentType distinguishes a payment for one application from a campaign
// payment that covers several applications through line items.
type PaymentType string

const (
	PaymentTypeDirect PaymentType = "DIRECT"
	PaymentTypeBulk   PaymentType = "BULK"
)
