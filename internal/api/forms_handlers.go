package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/afc-website/internal/models"
)

func (s *Server) submitContact(c *gin.Context) {
	var form models.ContactForm
	s.handleForm(c, models.FormContact, &form)
}

func (s *Server) submitDonation(c *gin.Context) {
	var form models.DonationForm
	s.handleForm(c, models.FormDonation, &form)
}

func (s *Server) submitPrayerRequest(c *gin.Context) {
	var form models.PrayerRequestForm
	s.handleForm(c, models.FormPrayerRequest, &form)
}

// handleForm binds, validates and acknowledges a form. form must be a
// pointer.
func (s *Server) handleForm(c *gin.Context, kind models.FormKind, form any) {
	if err := c.ShouldBindJSON(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := s.validator.Validate(form); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"errors": errs,
		})
		return
	}

	receipt, err := s.submitter.Submit(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Submission was interrupted, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, receipt)
}
