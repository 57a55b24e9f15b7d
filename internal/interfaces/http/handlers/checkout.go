// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
	"github.com/your-org/seed-marketplace/internal/domain/checkout"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
)

// CheckoutService computes totals and settles carts
type CheckoutService interface {
	Summarize(sess *session.Session) (*checkout.Overview, error)
	Pay(ctx context.Context, sess *session.Session) (*checkout.PaymentResult, error)
	ReceiptPDF(sess *session.Session) (*cart.Receipt, *bytes.Buffer, error)
}

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService CheckoutService
	seedService     SeedService
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService CheckoutService, seedService SeedService, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		seedService:     seedService,
		logger:          logger,
	}
}

// GetCheckout returns per-line subtotals and the grand total
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	overview, err := h.checkoutService.Summarize(middleware.GetSession(c))
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{
			"error": notice(err),
		})
		return
	}

	data := gin.H{
		"summary":  overview.Summary,
		"currency": overview.Currency,
	}
	if len(overview.Summary.Lines) == 0 {
		data["message"] = CartEmptyNotice
	} else {
		data["image_urls"] = signLineImages(c.Request.Context(), h.seedService, overview.Summary.Lines, h.logger)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}

// Pay runs the mock payment for the session's cart
func (h *CheckoutHandler) Pay(c *gin.Context) {
	result, err := h.checkoutService.Pay(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{
			"error": notice(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    result.Receipt,
	})
}

// DownloadReceipt streams the last receipt as a PDF
func (h *CheckoutHandler) DownloadReceipt(c *gin.Context) {
	receipt, doc, err := h.checkoutService.ReceiptPDF(middleware.GetSession(c))
	if err != nil {
		if status := checkoutStatus(err); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{
				"error": notice(err),
			})
			return
		}
		h.logger.WithError(err).Error("failed to generate receipt PDF")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", receipt.Reference))
	c.Data(http.StatusOK, "application/pdf", doc.Bytes())
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, checkout.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrNoReceipt):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
