package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentConfig(t *testing.T, gatewayURL string) {
	t.Helper()
	config.AppConfig = &config.Config{
		FrontendURL:     "http://localhost:5173",
		StripeApiURL:    gatewayURL,
		StripeSecretKey: "sk_test_dummy",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/sessions", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "sk_test_dummy", user)

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_42",
			"url": "https://checkout.stripe.test/pay/cs_test_42",
		})
	}))
	t.Cleanup(server.Close)
	setupPaymentConfig(t, server.URL)

	session, err := CreateCheckoutSession(7, "Pro Course", 499.5, "signed-token")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", session.ID)
	assert.Equal(t, "https://checkout.stripe.test/pay/cs_test_42", session.URL)

	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "card", gotForm["payment_method_types[0]"])
	assert.Equal(t, "inr", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Pro Course", gotForm["line_items[0][price_data][product_data][name]"])
	// 499.5 rupees in paise
	assert.Equal(t, "49950", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "1", gotForm["line_items[0][quantity]"])
	assert.Equal(t, "http://localhost:5173/courses/7/success?token=signed-token", gotForm["success_url"])
	assert.Equal(t, "http://localhost:5173/courses/7/cancel", gotForm["cancel_url"])
}

func TestCreateCheckoutSessionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Invalid API Key provided"},
		})
	}))
	t.Cleanup(server.Close)
	setupPaymentConfig(t, server.URL)

	session, err := CreateCheckoutSession(7, "Pro Course", 500, "signed-token")
	assert.Nil(t, session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "cs_no_url"})
	}))
	t.Cleanup(server.Close)
	setupPaymentConfig(t, server.URL)

	session, err := CreateCheckoutSession(7, "Pro Course", 500, "signed-token")
	assert.Nil(t, session)
	assert.Error(t, err)
}
