package dto

// CreateBookingRequest is the public booking payload. The whatsapp number
// must carry a leading + and country code.
type CreateBookingRequest struct {
	ClassID         string `json:"classId" validate:"required"`
	CustomerName    string `json:"customerName" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	WhatsApp        string `json:"whatsapp" validate:"required,e164"`
	ExperienceLevel string `json:"experienceLevel" validate:"required,oneof=beginner intermediate advanced"`
}

// BookingDetails echoes the created booking together with the class context
// the customer just reserved.
type BookingDetails struct {
	ID              string `json:"id"`
	ClassID         string `json:"classId"`
	ClassName       string `json:"className"`
	ClassDate       string `json:"classDate"`
	ClassTime       string `json:"classTime"`
	CustomerName    string `json:"customerName"`
	Email           string `json:"email"`
	WhatsApp        string `json:"whatsapp"`
	ExperienceLevel string `json:"experienceLevel"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// BookingResponse is the 201 payload for a successful booking.
type BookingResponse struct {
	Success    bool           `json:"success"`
	Booking    BookingDetails `json:"booking"`
	PaymentURL string         `json:"paymentUrl"`
	Message    string         `json:"message"`
}

// ClassDetails summarises the slot on availability replies.
type ClassDetails struct {
	Name       string `json:"name"`
	Time       string `json:"time"`
	Date       string `json:"date"`
	Instructor string `json:"instructor"`
	Style      string `json:"style"`
	Level      string `json:"level"`
}

// AvailabilityResponse reports spots and bookability for one slot.
type AvailabilityResponse struct {
	Available      bool         `json:"available"`
	SpotsRemaining int          `json:"spotsRemaining"`
	CanBook        bool         `json:"canBook"`
	Reason         string       `json:"reason,omitempty"`
	ClassDetails   ClassDetails `json:"classDetails"`
}
