package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// StripeConfig holds configuration for the Stripe gateway confirmer.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	PaymentMethod string `env:"STRIPE_PAYMENT_METHOD,required"`
	ReturnURL     string `env:"STRIPE_RETURN_URL"`
}

// StripeConfirmer implements GatewayConfirmer by confirming the
// PaymentIntent behind a client secret. The platform server creates the
// intent and hands its client secret to this side; the secret embeds the
// intent ID as the part before "_secret_".
type StripeConfirmer struct {
	sc     *client.API
	config StripeConfig
}

// NewStripeConfirmer creates a Stripe-backed confirmer.
func NewStripeConfirmer(config StripeConfig) (*StripeConfirmer, error) {
	if config.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if config.PaymentMethod == "" {
		return nil, errors.New("stripe payment method is required")
	}

	sc := &client.API{}
	sc.Init(config.SecretKey, nil)

	return &StripeConfirmer{sc: sc, config: config}, nil
}

// Confirm runs the confirmation step for the intent behind the client
// secret. Stripe's error is returned as-is inside the wrap so the user sees
// the gateway's own message (decline reason, validation detail).
func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret string) error {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return err
	}

	params := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(s.config.PaymentMethod),
	}
	if s.config.ReturnURL != "" {
		params.ReturnURL = stripe.String(s.config.ReturnURL)
	}

	if _, err := s.sc.PaymentIntents.Confirm(intentID, params); err != nil {
		return err
	}
	return nil
}

// intentIDFromSecret extracts the PaymentIntent ID from a client secret of
// the form "pi_xxx_secret_yyy".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret %q", redactSecret(clientSecret))
	}
	return id, nil
}

// redactSecret keeps the identifying prefix and hides the secret suffix.
func redactSecret(clientSecret string) string {
	if len(clientSecret) <= 8 {
		return "****"
	}
	return clientSecret[:8] + "..."
}
