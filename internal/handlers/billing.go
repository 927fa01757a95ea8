package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

// CreateSubscriptionHandler POST /billing/subscribe
// Creates (or reuses) the Stripe customer for the caller and starts an
// incomplete subscription; the client confirms payment with the returned
// payment intent secret.
func CreateSubscriptionHandler(c *gin.Context) {
	if !services.StripeConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsPremium() {
		c.JSON(http.StatusConflict, gin.H{"error": "Already subscribed"})
		return
	}

	if user.StripeCustomerID == "" {
		cust, err := services.CreateCustomer(user.Email, user.Username)
		if err != nil {
			logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to create Stripe customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set up billing"})
			return
		}
		user.StripeCustomerID = cust.ID
		if err := database.DB.Model(&user).Update("stripe_customer_id", cust.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save billing details"})
			return
		}
	}

	sub, err := services.CreateSubscription(user.StripeCustomerID)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to create subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	database.DB.Model(&user).Updates(map[string]interface{}{
		"stripe_subscription_id": sub.ID,
		"subscription_status":    string(sub.Status),
	})

	resp := gin.H{"subscriptionId": sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		resp["clientSecret"] = sub.LatestInvoice.PaymentIntent.ClientSecret
	}

	c.JSON(http.StatusOK, resp)
}

// CancelSubscriptionHandler POST /billing/cancel
func CancelSubscriptionHandler(c *gin.Context) {
	if !services.StripeConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.StripeSubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active subscription"})
		return
	}

	if _, err := services.CancelSubscription(user.StripeSubscriptionID); err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to cancel subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	database.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_tier":      models.TierFree,
		"subscription_status":    "canceled",
		"stripe_subscription_id": "",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
}

// CreatePortalSessionHandler POST /billing/portal
func CreatePortalSessionHandler(c *gin.Context) {
	if !services.StripeConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing is not configured"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil || user.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No billing account"})
		return
	}

	session, err := services.CreatePortalSession(user.StripeCustomerID, config.AppConfig.FrontendURL+"/account")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// StripeWebhook POST /billing/webhook
// Verifies the event signature, then reconciles the user's tier with the
// subscription state Stripe reports.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn().Err(err).Msg("Stripe webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
			return
		}
		activatePremium(session.Customer, session.ID)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
			return
		}
		activatePremium(invoice.Customer, invoice.ID)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
			return
		}
		syncSubscriptionStatus(sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
			return
		}
		if sub.Customer != nil {
			database.DB.Model(&models.User{}).
				Where("stripe_customer_id = ?", sub.Customer.ID).
				Updates(map[string]interface{}{
					"subscription_tier":      models.TierFree,
					"subscription_status":    "canceled",
					"stripe_subscription_id": "",
				})
		}

	default:
		logger.Debug().Str("type", string(event.Type)).Msg("Unhandled Stripe event")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func activatePremium(cust *stripe.Customer, invoiceID string) {
	if cust == nil {
		return
	}

	var user models.User
	if err := database.DB.Where("stripe_customer_id = ?", cust.ID).First(&user).Error; err != nil {
		logger.Warn().Str("customer_id", cust.ID).Msg("Webhook for unknown customer")
		return
	}

	database.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_tier":   models.TierPremium,
		"subscription_status": "active",
	})

	logger.Info().Uint("user_id", user.ID).Msg("Premium subscription activated")
	services.SendReceiptEmail(user.Email, "Melbourne Education Guide Premium", invoiceID)
}

func syncSubscriptionStatus(sub stripe.Subscription) {
	if sub.Customer == nil {
		return
	}

	tier := models.TierFree
	if sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing {
		tier = models.TierPremium
	}

	database.DB.Model(&models.User{}).
		Where("stripe_customer_id = ?", sub.Customer.ID).
		Updates(map[string]interface{}{
			"subscription_tier":   tier,
			"subscription_status": string(sub.Status),
		})
}
