package dto

// Wompi transaction statuses as delivered on webhook events.
const (
	WompiStatusPending  = "PENDING"
	WompiStatusApproved = "APPROVED"
	WompiStatusDeclined = "DECLINED"
	WompiStatusVoided   = "VOIDED"
	WompiStatusError    = "ERROR"
)

// Wompi webhook event types this service reacts to.
const (
	WompiEventTransactionUpdated = "transaction.updated"
	WompiEventPaymentLinkUpdated = "payment_link.updated"
	WompiEventNequiTokenUpdated  = "nequi_token.updated"
)

// WompiTransaction is the transaction object inside a webhook event. The
// reference carries the booking id the payment link was created for.
type WompiTransaction struct {
	ID                string `json:"id"`
	AmountInCents     int64  `json:"amount_in_cents"`
	Reference         string `json:"reference"`
	CustomerEmail     string `json:"customer_email"`
	Currency          string `json:"currency"`
	PaymentMethodType string `json:"payment_method_type"`
	Status            string `json:"status"`
	StatusMessage     string `json:"status_message"`
	CreatedAt         string `json:"created_at"`
	FinalizedAt       string `json:"finalized_at"`
}

// WompiSignature holds the checksum material of an event.
type WompiSignature struct {
	Checksum   string   `json:"checksum"`
	Properties []string `json:"properties"`
}

// WompiEvent is the webhook envelope sent by the payment provider.
type WompiEvent struct {
	Event string `json:"event"`
	Data  struct {
		Transaction WompiTransaction `json:"transaction"`
	} `json:"data"`
	SentAt      string         `json:"sent_at"`
	Timestamp   int64          `json:"timestamp"`
	Signature   WompiSignature `json:"signature"`
	Environment string         `json:"environment"`
}

// WebhookAck is the body returned to the provider. The HTTP status is always
// 200 regardless of outcome; Success only reflects internal processing.
type WebhookAck struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
