package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0.00"},
		{5, "₹0.05"},
		{12000, "₹120.00"},
		{123456789, "₹1,234,567.89"},
		{-250, "-₹2.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.amount))
	}
}

func TestReceiptHTML(t *testing.T) {
	svc := NewService(&config.Config{App: config.AppConfig{Name: "Seed Marketplace"}})

	ledger := cart.NewLedger()
	ledger.Add(cart.Item{ID: 1, Name: "Tomato <Hybrid>", Quality: "High Quality", Price: 12000, Farmer: "Asha"}, 2)

	receipt := &cart.Receipt{
		Reference: "RCPT-1",
		Buyer:     "Ravi",
		Email:     "ravi@example.com",
		Currency:  "INR",
		Summary:   ledger.Summary(),
		PaidAt:    time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	html, err := svc.ReceiptHTML(receipt)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Seed Marketplace")
	assert.Contains(t, out, "RCPT-1")
	assert.Contains(t, out, "March 1, 2024 10:30 UTC")
	assert.Contains(t, out, "Tomato &lt;Hybrid&gt;")
	assert.Contains(t, out, "₹240.00")
}
