package models

import "time"

// ExperienceLevel is the self-reported level of the customer.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// PaymentStatus tracks the state of the payment attached to a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// BookingStatus is the lifecycle state of a booking. A booking becomes
// confirmed only when its payment completes, and cancelled only through
// explicit cancellation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking holds a customer's reservation against a slot. The ClassID is a
// weak reference by id only; the slot itself is regenerated on demand.
type Booking struct {
	ID              string          `db:"id" json:"id"`
	ClassID         string          `db:"class_id" json:"classId"`
	CustomerName    string          `db:"customer_name" json:"customerName"`
	Email           string          `db:"email" json:"email"`
	WhatsApp        string          `db:"whatsapp" json:"whatsapp"`
	ExperienceLevel ExperienceLevel `db:"experience_level" json:"experienceLevel"`
	PaymentStatus   PaymentStatus   `db:"payment_status" json:"paymentStatus"`
	Status          BookingStatus   `db:"status" json:"status"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}
