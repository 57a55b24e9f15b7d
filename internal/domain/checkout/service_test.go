package checkout

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/pkg/logger"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) GenerateReceipt(receipt *cart.Receipt) (*bytes.Buffer, error) {
	args := m.Called(receipt)
	buf, _ := args.Get(0).(*bytes.Buffer)
	return buf, args.Error(1)
}

type countingRecorder struct {
	totals []int64
}

func (r *countingRecorder) CheckoutCompleted(total int64, _ int) {
	r.totals = append(r.totals, total)
}

var paidAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockRenderer, *countingRecorder) {
	renderer := &mockRenderer{}
	recorder := &countingRecorder{}
	svc := NewService(renderer, recorder, &config.Config{App: config.AppConfig{Currency: "INR"}}, logger.Discard())
	svc.now = func() time.Time { return paidAt }
	return svc, renderer, recorder
}

func newSession(t *testing.T, signedIn bool) *session.Session {
	t.Helper()
	store := session.NewStore(10, time.Hour, logger.Discard())
	sess, _ := store.GetOrCreate("")
	if signedIn {
		sess.SetIdentity(&session.Identity{UserID: 1, Email: "ravi@example.com", FullName: "Ravi"})
	}
	return sess
}

func fillCart(sess *session.Session) {
	sess.With(func(st *session.State) {
		st.Cart.Add(cart.Item{ID: 1, Name: "Tomato", Price: 12000}, 2)
		st.Cart.Add(cart.Item{ID: 2, Name: "Okra", Price: 5000}, 1)
	})
}

func TestSummarize(t *testing.T) {
	svc, _, _ := newTestService()
	sess := newSession(t, true)
	fillCart(sess)

	overview, err := svc.Summarize(sess)
	require.NoError(t, err)
	assert.Equal(t, "INR", overview.Currency)
	assert.Equal(t, int64(29000), overview.Summary.Total)
	require.Len(t, overview.Summary.Lines, 2)
	assert.Equal(t, int64(24000), overview.Summary.Lines[0].Subtotal)
}

func TestSummarize_RequiresSignIn(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Summarize(newSession(t, false))
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestPay_ClearsCartAndKeepsReceipt(t *testing.T) {
	svc, _, recorder := newTestService()
	sess := newSession(t, true)
	fillCart(sess)

	result, err := svc.Pay(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "Payment successful! Thank you for your purchase.", result.Message)
	assert.Equal(t, int64(29000), result.Receipt.Summary.Total)
	assert.Equal(t, "Ravi", result.Receipt.Buyer)
	assert.Equal(t, paidAt, result.Receipt.PaidAt)
	assert.Regexp(t, `^RCPT-[0-9A-F]{12}$`, result.Receipt.Reference)
	assert.Equal(t, []int64{29000}, recorder.totals)

	sess.With(func(st *session.State) {
		assert.True(t, st.Cart.IsEmpty())
		assert.Equal(t, int64(0), st.Cart.Total())
		require.NotNil(t, st.LastReceipt)
		assert.Equal(t, result.Receipt.Reference, st.LastReceipt.Reference)
	})
}

func TestPay_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		signedIn bool
		fill     bool
		want     error
	}{
		{name: "signed out", signedIn: false, fill: true, want: ErrNotSignedIn},
		{name: "empty cart", signedIn: true, fill: false, want: ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, recorder := newTestService()
			sess := newSession(t, tt.signedIn)
			if tt.fill {
				fillCart(sess)
			}

			_, err := svc.Pay(context.Background(), sess)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, recorder.totals)

			sess.With(func(st *session.State) {
				assert.Nil(t, st.LastReceipt)
				if tt.fill {
					assert.Equal(t, 2, st.Cart.Len())
				}
			})
		})
	}
}

func TestPay_CancelledContext(t *testing.T) {
	svc, _, _ := newTestService()
	sess := newSession(t, true)
	fillCart(sess)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Pay(ctx, sess)
	assert.ErrorIs(t, err, context.Canceled)
	sess.With(func(st *session.State) { assert.Equal(t, 2, st.Cart.Len()) })
}

func TestReceiptPDF(t *testing.T) {
	svc, renderer, _ := newTestService()
	sess := newSession(t, true)

	_, _, err := svc.ReceiptPDF(sess)
	assert.ErrorIs(t, err, ErrNoReceipt)

	fillCart(sess)
	result, err := svc.Pay(context.Background(), sess)
	require.NoError(t, err)

	renderer.On("GenerateReceipt", mock.MatchedBy(func(r *cart.Receipt) bool {
		return r.Reference == result.Receipt.Reference
	})).Return(bytes.NewBufferString("%PDF-1.4"), nil).Once()

	receipt, doc, err := svc.ReceiptPDF(sess)
	require.NoError(t, err)
	assert.Equal(t, result.Receipt.Reference, receipt.Reference)
	assert.Equal(t, "%PDF-1.4", doc.String())
}

func TestReceiptPDF_RenderFailure(t *testing.T) {
	svc, renderer, _ := newTestService()
	sess := newSession(t, true)
	fillCart(sess)
	_, err := svc.Pay(context.Background(), sess)
	require.NoError(t, err)

	renderer.On("GenerateReceipt", mock.Anything).Return(nil, errors.New("wkhtmltopdf not found"))

	_, _, err = svc.ReceiptPDF(sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wkhtmltopdf not found")
}
