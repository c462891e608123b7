package dto

// CreatePaymentRequest asks for a hosted payment link. Amount is in the
// smallest currency unit (pesos for COP, cents for USD).
type CreatePaymentRequest struct {
	Amount        int    `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"omitempty,oneof=COP USD"`
	Reference     string `json:"reference" validate:"omitempty,max=64"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=100"`
	Description   string `json:"description" validate:"omitempty,max=255"`
	BookingID     string `json:"bookingId" validate:"omitempty,max=64"`
}

// PaymentLinkResponse returns the provider checkout URL for a reference.
type PaymentLinkResponse struct {
	Success    bool   `json:"success"`
	Reference  string `json:"reference"`
	PaymentURL string `json:"paymentUrl"`
	ExpiresAt  string `json:"expiresAt"`
}
