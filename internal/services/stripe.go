package services

import (
	"fmt"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/stripe/stripe-go/v76"
	billingportal "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/product"
	"github.com/stripe/stripe-go/v76/subscription"
)

// InitStripe sets the global Stripe key. Must be called before any billing
// operation; billing handlers reject requests when the key is missing.
func InitStripe() {
	stripe.Key = config.AppConfig.StripeSecretKey
}

// StripeConfigured reports whether the payment gateway can be used
func StripeConfigured() bool {
	return config.AppConfig.StripeSecretKey != ""
}

// CreateCustomer registers a new Stripe customer for a user
func CreateCustomer(email, name string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	return customer.New(params)
}

// premiumPriceID resolves the configured recurring price, creating the
// product and price on first use when no STRIPE_PRICE_ID is set.
func premiumPriceID() (string, error) {
	if id := config.AppConfig.StripePriceID; id != "" {
		return id, nil
	}

	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String("Melbourne Education Guide Premium"),
		Description: stripe.String("Monthly subscription for premium access to Melbourne school information"),
	})
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}

	p, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(699), // $6.99
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create price: %w", err)
	}

	return p.ID, nil
}

// CreateSubscription starts the premium subscription for a customer and
// returns it with the initial invoice's payment intent expanded so the
// client can confirm payment.
func CreateSubscription(customerID string) (*stripe.Subscription, error) {
	priceID, err := premiumPriceID()
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")

	return subscription.New(params)
}

// CancelSubscription cancels a subscription immediately
func CancelSubscription(subscriptionID string) (*stripe.Subscription, error) {
	return subscription.Cancel(subscriptionID, nil)
}

// CreatePortalSession creates a billing portal session so users can manage
// their subscription on Stripe-hosted pages
func CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	return billingportal.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
}
