package models

import "time"

// ContactForm is the payload of the contact page
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=10"`
	Subject string `json:"subject" validate:"required,min=5"`
	Message string `json:"message" validate:"required,min=10"`
}

// DonationForm is the payload of the giving page
type DonationForm struct {
	Amount        string `json:"amount" validate:"required,amount"`
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit-card bank-transfer"`
	IsRecurring   bool   `json:"isRecurring"`
}

// PrayerRequestForm is the payload of the prayer request page
type PrayerRequestForm struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Request       string `json:"request" validate:"required,min=10"`
	SharePublicly bool   `json:"sharePublicly"`
	ContactMe     bool   `json:"contactMe"`
}

// FormKind names a submission surface
type FormKind string

const (
	FormContact       FormKind = "contact"
	FormDonation      FormKind = "donation"
	FormPrayerRequest FormKind = "prayer_request"
)

// Receipt acknowledges a form submission
type Receipt struct {
	Reference  string    `json:"reference"`
	Kind       FormKind  `json:"kind"`
	ReceivedAt time.Time `json:"receivedAt"`
	Message    string    `json:"message"`
}
