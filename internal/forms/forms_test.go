package forms

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afc-website/internal/logger"
	"github.com/afc-website/internal/models"
)

func byField(errs []ValidationError) map[string]string {
	out := map[string]string{}
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

func TestValidate_ContactForm(t *testing.T) {
	v := NewValidator()

	valid := models.ContactForm{
		Name:    "Jane Njeri",
		Email:   "jane@example.org",
		Subject: "Visiting on Sunday",
		Message: "What time does the service start?",
	}
	assert.Nil(t, v.Validate(valid))

	errs := byField(v.Validate(models.ContactForm{
		Name:    "J",
		Email:   "not-an-email",
		Phone:   "0712",
		Subject: "Hi",
		Message: "short",
	}))
	assert.Equal(t, map[string]string{
		"name":    "Name must be at least 2 characters.",
		"email":   "Please enter a valid email address.",
		"phone":   "Please enter a valid phone number.",
		"subject": "Subject must be at least 5 characters.",
		"message": "Message must be at least 10 characters.",
	}, errs)
}

func TestMustRegister(t *testing.T) {
	assert.NotPanics(t, func() { NewValidator() })

	v := validator.New()
	assert.Panics(t, func() { mustRegister(v, "", validateAmount) })
}

func TestValidate_DonationForm(t *testing.T) {
	v := NewValidator()

	valid := models.DonationForm{
		Amount:        "2500.50",
		FirstName:     "Grace",
		LastName:      "Wanjiku",
		Email:         "grace@example.org",
		PaymentMethod: "bank-transfer",
	}
	assert.Nil(t, v.Validate(valid))

	errs := byField(v.Validate(models.DonationForm{PaymentMethod: "cash"}))
	assert.Equal(t, "Amount is required", errs["amount"])
	assert.Equal(t, "First name is required", errs["firstName"])
	assert.Equal(t, "Last name is required", errs["lastName"])
	assert.Equal(t, "Please enter a valid email", errs["email"])
	assert.Contains(t, errs, "paymentMethod")
}

func TestValidate_Amount(t *testing.T) {
	v := NewValidator()
	form := models.DonationForm{FirstName: "A", LastName: "B", Email: "a@b.co", PaymentMethod: "credit-card"}

	for _, amount := range []string{"1", "100", "99.9", "1000.00"} {
		form.Amount = amount
		assert.Nil(t, v.Validate(form), amount)
	}
	for _, amount := range []string{"0", "0.00", "-5", "abc", "10.999", "1e3"} {
		form.Amount = amount
		errs := byField(v.Validate(form))
		assert.Equal(t, "Please enter a valid amount", errs["amount"], amount)
	}
}

func TestValidate_PrayerRequestForm(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Validate(models.PrayerRequestForm{
		Name:    "Anonymous",
		Request: "Please pray for my family's health.",
	}))

	errs := byField(v.Validate(models.PrayerRequestForm{Name: "Al", Email: "bad", Request: "help"}))
	assert.Equal(t, map[string]string{
		"email":   "Please enter a valid email address.",
		"request": "Please share your prayer request (at least 10 characters).",
	}, errs)
}

func TestSubmitter_Submit(t *testing.T) {
	s := NewSubmitter(10*time.Millisecond, logger.Discard())

	receipt, err := s.Submit(context.Background(), models.FormPrayerRequest)
	require.NoError(t, err)

	_, err = uuid.Parse(receipt.Reference)
	assert.NoError(t, err)
	assert.Equal(t, models.FormPrayerRequest, receipt.Kind)
	assert.Contains(t, receipt.Message, "Prayer request received")
	assert.False(t, receipt.ReceivedAt.IsZero())
}

func TestSubmitter_HonorsCancellation(t *testing.T) {
	s := NewSubmitter(time.Hour, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Submit(ctx, models.FormContact)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmitter_NoDelay(t *testing.T) {
	s := NewSubmitter(0, logger.Discard())
	receipt, err := s.Submit(context.Background(), models.FormDonation)
	require.NoError(t, err)
	assert.Equal(t, "Donation received! Thank you for your generous gift.", receipt.Message)
}
