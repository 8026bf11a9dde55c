package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"example/thinking-assistant/app/config"
	"example/thinking-assistant/app/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	portal "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CreateCheckoutSession starts a Stripe Checkout Session for the given client.
func CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing client_id"})
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("stripe checkout config load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}

	priceID := cfg.Stripe.PriceIDProMonthly
	if req.Interval == "year" {
		priceID = cfg.Stripe.PriceIDProYearly
	}
	frontendURL := strings.TrimRight(cfg.Stripe.FrontendURL, "/")
	if cfg.Stripe.SecretKey == "" || priceID == "" || frontendURL == "" {
		log.Printf("missing Stripe config: key=%t price_id=%t frontend_url=%t",
			cfg.Stripe.SecretKey != "", priceID != "", frontendURL != "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}

	stripeCustomerID, err := ensureStripeCustomer(c.Request.Context(), req.ClientID)
	if err != nil {
		log.Printf("ensureStripeCustomer failed client=%s: %v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare billing"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:          stripe.String(stripeCustomerID),
		ClientReferenceID: stripe.String(req.ClientID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(frontendURL + "/billing/success"),
		CancelURL:  stripe.String(frontendURL + "/billing/cancel"),
	}

	sess, err := session.New(params)
	if err != nil {
		log.Printf("stripe checkout session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session: " + truncate(err.Error(), 120)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// CreatePortalSession creates a Stripe Customer Portal session for the client.
func CreatePortalSession(c *gin.Context) {
	var req models.PortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing client_id"})
		return
	}

	account, err := store.AccountByClientID(c.Request.Context(), req.ClientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		log.Printf("portal lookup failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}
	if account.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stripe customer missing for account"})
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("portal config load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}

	frontendURL := strings.TrimRight(cfg.Stripe.FrontendURL, "/")
	if cfg.Stripe.SecretKey == "" || frontendURL == "" {
		log.Printf("missing Stripe config: key=%t frontend_url=%t",
			cfg.Stripe.SecretKey != "", frontendURL != "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(account.StripeCustomerID),
		ReturnURL: stripe.String(frontendURL + "/settings/billing"),
	}

	sess, err := portal.New(params)
	if err != nil {
		log.Printf("stripe portal session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create portal session: " + truncate(err.Error(), 120)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// StripeWebhook handles Stripe subscription events and updates account plans.
// After the signature checks out, the handler always acknowledges with 200:
// mapping failures are logged and swallowed so Stripe does not redeliver.
func StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Printf("stripe webhook read failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("stripe webhook config load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	endpointSecret := cfg.Stripe.WebhookSecret
	if endpointSecret == "" {
		log.Printf("stripe webhook secret missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		sigHeader,
		endpointSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		log.Printf("stripe webhook signature failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("stripe session unmarshal failed: %v", err)
			break
		}
		if err := applyCheckoutCompleted(c.Request.Context(), &sess); err != nil {
			log.Printf("stripe checkout apply failed: %v", err)
		}
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("stripe subscription unmarshal failed: %v", err)
			break
		}
		if err := applySubscriptionChange(c.Request.Context(), &sub); err != nil {
			log.Printf("stripe subscription apply failed: %v", err)
		}
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("stripe subscription unmarshal failed: %v", err)
			break
		}
		if err := applySubscriptionDeleted(c.Request.Context(), &sub); err != nil {
			log.Printf("stripe subscription delete apply failed: %v", err)
		}
	default:
		// Intentionally ignore unhandled events.
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// applyCheckoutCompleted upserts the account named by the checkout session's
// client reference and marks it pro. Sessions without a resolvable client id
// are ignored.
func applyCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	clientID := sess.ClientReferenceID
	if clientID == "" {
		clientID = sess.Metadata["client_id"]
	}
	if clientID == "" {
		return nil
	}

	now := time.Now().UTC()
	account, err := store.AccountByClientID(ctx, clientID)
	if errors.Is(err, ErrNotFound) {
		account = models.Account{
			ClientID:  clientID,
			CreatedAt: now,
		}
	} else if err != nil {
		return err
	}

	account.Plan = models.PlanPro
	account.SubscriptionStatus = "active"
	if sess.Customer != nil {
		account.StripeCustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		account.StripeSubscriptionID = sess.Subscription.ID
	}
	account.UpdatedAt = now

	return store.SaveAccount(ctx, account)
}

// applySubscriptionChange resolves the account by stored subscription id,
// then by customer id, and derives the plan from the subscription status.
func applySubscriptionChange(ctx context.Context, sub *stripe.Subscription) error {
	account, err := resolveSubscriptionAccount(ctx, sub)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	status := string(sub.Status)
	if status == string(stripe.SubscriptionStatusActive) || status == string(stripe.SubscriptionStatusTrialing) {
		account.Plan = models.PlanPro
	} else {
		account.Plan = models.PlanFree
	}
	account.StripeSubscriptionID = sub.ID
	account.SubscriptionStatus = status
	account.UpdatedAt = time.Now().UTC()

	return store.SaveAccount(ctx, account)
}

// applySubscriptionDeleted downgrades the account holding the deleted
// subscription. Unknown subscription ids are ignored.
func applySubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	account, err := store.AccountBySubscriptionID(ctx, sub.ID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	account.Plan = models.PlanFree
	account.SubscriptionStatus = string(sub.Status)
	account.UpdatedAt = time.Now().UTC()

	return store.SaveAccount(ctx, account)
}

func resolveSubscriptionAccount(ctx context.Context, sub *stripe.Subscription) (models.Account, error) {
	account, err := store.AccountBySubscriptionID(ctx, sub.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Account{}, err
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return models.Account{}, ErrNotFound
	}
	return store.AccountByCustomerID(ctx, sub.Customer.ID)
}
