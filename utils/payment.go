package utils

import (
	"fmt"
	"strconv"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession is the subset of the Stripe Checkout session we consume
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a Stripe Checkout session for a paid course.
// The continuation token rides on the success redirect so the confirm endpoint
// can finish the enrollment after payment.
func CreateCheckoutSession(courseID uint, courseName string, price float64, token string) (*CheckoutSession, error) {
	successURL := fmt.Sprintf("%s/courses/%d/success?token=%s", config.AppConfig.FrontendURL, courseID, token)
	cancelURL := fmt.Sprintf("%s/courses/%d/cancel", config.AppConfig.FrontendURL, courseID)

	session := new(CheckoutSession)
	apiErr := new(stripeError)

	resp, err := resty.New().R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		SetFormData(map[string]string{
			"mode":                                          "payment",
			"payment_method_types[0]":                       "card",
			"line_items[0][price_data][currency]":           "inr",
			"line_items[0][price_data][product_data][name]": courseName,
			"line_items[0][price_data][unit_amount]":        strconv.FormatInt(int64(price*100), 10), // price in paise
			"line_items[0][quantity]":                       "1",
			"success_url":                                   successURL,
			"cancel_url":                                    cancelURL,
		}).
		SetResult(session).
		SetError(apiErr).
		Post(config.AppConfig.StripeApiURL + "/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("payment gateway error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status())
	}

	if session.URL == "" {
		return nil, fmt.Errorf("payment gateway returned no checkout URL")
	}

	return session, nil
}
