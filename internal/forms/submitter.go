package forms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/afc-website/internal/models"
)

var receiptMessages = map[models.FormKind]string{
	models.FormContact:       "Message sent successfully! We will get back to you as soon as possible.",
	models.FormDonation:      "Donation received! Thank you for your generous gift.",
	models.FormPrayerRequest: "Prayer request received! Our prayer team is lifting your request to the Lord.",
}

// Submitter acknowledges validated forms after a simulated processing
// delay. Nothing is stored or sent.
type Submitter struct {
	delay time.Duration
	now   func() time.Time
	log   logrus.FieldLogger
}

// NewSubmitter creates a Submitter. A non-positive delay returns at once.
func NewSubmitter(delay time.Duration, log logrus.FieldLogger) *Submitter {
	return &Submitter{delay: delay, now: time.Now, log: log}
}

// Submit waits for the delay, or until ctx is done, and returns a receipt.
func (s *Submitter) Submit(ctx context.Context, kind models.FormKind) (models.Receipt, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.Receipt{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		Reference:  uuid.NewString(),
		Kind:       kind,
		ReceivedAt: s.now().UTC(),
		Message:    receiptMessages[kind],
	}
	s.log.WithFields(logrus.Fields{
		"kind":      kind,
		"reference": receipt.Reference,
	}).Info("Form submission received")
	return receipt, nil
}
