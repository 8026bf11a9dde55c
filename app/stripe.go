package app

import (
	"context"
	"log"
	"time"

	"example/thinking-assistant/app/config"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/customer"
)

// InitStripe wires the Stripe API key from the environment.
func InitStripe() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config for stripe: %v", err)
	}
	stripe.Key = cfg.Stripe.SecretKey
}

// ensureStripeCustomer finds or creates a Stripe Customer for the given
// client id. It uses the stored stripe_customer_id when present, otherwise
// creates a new customer with metadata client_id = <clientID>, then stores
// that on the account.
func ensureStripeCustomer(ctx context.Context, clientID string) (string, error) {
	account, err := getOrCreateAccount(ctx, clientID)
	if err != nil {
		return "", err
	}
	if account.StripeCustomerID != "" {
		return account.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Metadata: map[string]string{
			"client_id": clientID,
		},
	}
	if account.Email != "" {
		params.Email = stripe.String(account.Email)
	}
	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	account.StripeCustomerID = cust.ID
	account.UpdatedAt = time.Now().UTC()
	if err := store.SaveAccount(ctx, account); err != nil {
		return "", err
	}

	return cust.ID, nil
}
