// internal/domain/checkout/service.go
package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
	"github.com/your-org/seed-marketplace/internal/domain/session"
)

const PaymentSuccessMessage = "Payment successful! Thank you for your purchase."

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNoReceipt   = errors.New("no completed purchase in this session")
)

// ReceiptRenderer turns a receipt into a printable document
type ReceiptRenderer interface {
	GenerateReceipt(receipt *cart.Receipt) (*bytes.Buffer, error)
}

// PaymentRecorder observes completed checkouts
type PaymentRecorder interface {
	CheckoutCompleted(total int64, lines int)
}

// Service handles checkout business logic
type Service struct {
	renderer ReceiptRenderer
	recorder PaymentRecorder
	config   *config.Config
	logger   *logrus.Logger
	now      func() time.Time
}

// NewService creates a new checkout service
func NewService(renderer ReceiptRenderer, recorder PaymentRecorder, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		renderer: renderer,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Overview is the checkout page
type Overview struct {
	Summary  cart.Summary `json:"summary"`
	Currency string       `json:"currency"`
}

// PaymentResult is returned after a successful (mock) payment
type PaymentResult struct {
	Message string        `json:"message"`
	Receipt *cart.Receipt `json:"receipt"`
}

// Summarize computes the checkout totals of the session's cart. Only a
// signed-in session may view its cart.
func (s *Service) Summarize(sess *session.Session) (*Overview, error) {
	var (
		overview *Overview
		err      error
	)
	sess.With(func(st *session.State) {
		if !st.Identity.SignedIn() {
			err = ErrNotSignedIn
			return
		}
		overview = &Overview{
			Summary:  st.Cart.Summary(),
			Currency: s.config.App.Currency,
		}
	})
	return overview, err
}

// Pay settles the session's cart. Payment is simulated and always
// succeeds; the cart is cleared and a receipt kept on the session.
func (s *Service) Pay(ctx context.Context, sess *session.Session) (*PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		receipt *cart.Receipt
		err     error
	)
	sess.With(func(st *session.State) {
		identity, ok := st.Identity.Current()
		if !ok {
			err = ErrNotSignedIn
			return
		}
		if st.Cart.IsEmpty() {
			err = ErrEmptyCart
			return
		}

		receipt = &cart.Receipt{
			Reference: newReference(),
			Buyer:     identity.DisplayName(),
			Email:     identity.Email,
			Currency:  s.config.App.Currency,
			Summary:   st.Cart.Summary(),
			PaidAt:    s.now(),
		}
		st.LastReceipt = receipt
		st.Cart.Clear()
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"reference":  receipt.Reference,
		"total":      receipt.Summary.Total,
		"lines":      receipt.Summary.ItemCount,
	}).Info("checkout completed")

	if s.recorder != nil {
		s.recorder.CheckoutCompleted(receipt.Summary.Total, receipt.Summary.ItemCount)
	}

	return &PaymentResult{
		Message: PaymentSuccessMessage,
		Receipt: receipt,
	}, nil
}

// LastReceipt returns the receipt of the session's latest purchase
func (s *Service) LastReceipt(sess *session.Session) (*cart.Receipt, error) {
	var (
		receipt *cart.Receipt
		err     error
	)
	sess.With(func(st *session.State) {
		if !st.Identity.SignedIn() {
			err = ErrNotSignedIn
			return
		}
		if st.LastReceipt == nil {
			err = ErrNoReceipt
			return
		}
		r := *st.LastReceipt
		receipt = &r
	})
	return receipt, err
}

// ReceiptPDF renders the session's latest receipt
func (s *Service) ReceiptPDF(sess *session.Session) (*cart.Receipt, *bytes.Buffer, error) {
	receipt, err := s.LastReceipt(sess)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.renderer.GenerateReceipt(receipt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return receipt, doc, nil
}

func newReference() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RCPT-" + strings.ToUpper(id[:12])
}
