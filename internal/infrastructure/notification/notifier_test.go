package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goldfin/backend/internal/application/lending"
)

func TestWhatsAppSender_Send(t *testing.T) {
	t.Run("posts the message with auth header", func(t *testing.T) {
		var got whatsAppMessage
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sender := NewWhatsAppSender(server.URL, "test-token")
		err := sender.Send(context.Background(), "+919876543210", "Your loan EGF/24_25_000001 was issued")
		require.NoError(t, err)

		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, "+919876543210", got.Phone)
		assert.Contains(t, got.Message, "EGF/24_25_000001")
	})

	t.Run("gateway errors are returned with the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid phone", http.StatusBadRequest)
		}))
		defer server.Close()

		sender := NewWhatsAppSender(server.URL, "")
		err := sender.Send(context.Background(), "not-a-phone", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "invalid phone")
	})
}

func TestCustomerNotifier_Delivery(t *testing.T) {
	notice := lending.LoanNotice{
		CustomerName:  "Ramesh Kumar",
		CustomerPhone: "+919876543210",
		LoanNumber:    "EGF/24_25_000042",
		Amount:        decimal.NewFromInt(100000),
		Date:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	t.Run("sends whatsapp when configured", func(t *testing.T) {
		var got whatsAppMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		n := &CustomerNotifier{
			whatsapp: NewWhatsAppSender(server.URL, ""),
			logger:   zap.NewNop(),
		}
		n.LoanIssued(context.Background(), notice)

		assert.Contains(t, got.Message, "Ramesh Kumar")
		assert.Contains(t, got.Message, "EGF/24_25_000042")
		assert.Contains(t, got.Message, "100000.00")
		assert.Contains(t, got.Message, "15 Jun 2025")
	})

	t.Run("delivery failure never panics or propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		n := &CustomerNotifier{
			whatsapp: NewWhatsAppSender(server.URL, ""),
			logger:   zap.NewNop(),
		}
		assert.NotPanics(t, func() {
			n.LoanClosed(context.Background(), notice)
		})
	})

	t.Run("channels without contact details are skipped", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		n := &CustomerNotifier{
			whatsapp: NewWhatsAppSender(server.URL, ""),
			logger:   zap.NewNop(),
		}
		noPhone := notice
		noPhone.CustomerPhone = ""
		n.LoanIssued(context.Background(), noPhone)

		assert.False(t, called)
	})
}
