package checkout

import "errors"

var (
	// ErrInvalidPlan indicates no plan could be resolved for the checkout;
	// the caller must redirect to plan selection instead of charging.
	ErrInvalidPlan = errors.New("checkout plan could not be resolved")

	// ErrInvalidTransition indicates an attempt was driven out of order.
	ErrInvalidTransition = errors.New("invalid payment attempt transition")

	// ErrGatewayConfirmation wraps the gateway's verbatim confirmation error.
	ErrGatewayConfirmation = errors.New("gateway confirmation failed")
)
