package apiclient

import "github.com/google/uuid"

// Audience selects which identity kind a request authenticates as.
// User and admin sessions are independent and may coexist.
type Audience string

const (
	AudienceUser  Audience = "user"
	AudienceAdmin Audience = "admin"
)

// IdentityPayload is the server's representation of an authenticated caller,
// returned by session checks and profile fetches.
type IdentityPayload struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	PlanID   string    `json:"plan_id,omitempty"`
}

// PlanPayload is the server's representation of a subscription plan.
type PlanPayload struct {
	ID            string   `json:"id"`
	Tier          string   `json:"tier"`
	Name          string   `json:"name"`
	PriceAmount   int64    `json:"price_amount"` // smallest currency unit
	PriceCurrency string   `json:"price_currency"`
	PostLimit     *int64   `json:"post_limit"` // nil means unlimited
	Features      []string `json:"features"`
	Active        bool     `json:"active"`
}

// UsagePayload carries the caller's advisory usage counters.
type UsagePayload struct {
	PostsCreated int64  `json:"posts_created"`
	Limit        *int64 `json:"limit"` // nil means unlimited
}

// PlanUsagePayload pairs a plan with the usage counters computed against it.
// Plan is nil when the account holds no plan reference (implicit free tier).
type PlanUsagePayload struct {
	Plan  *PlanPayload `json:"plan"`
	Usage UsagePayload `json:"usage"`
}

// CheckoutPayload is returned by checkout creation and feeds the payment
// gateway's client-side confirmation step.
type CheckoutPayload struct {
	ClientSecret string `json:"client_secret"`
	Reference    string `json:"payment_reference"`
}

// VerifyPayload is the server's view of a payment attempt's state.
// Status is one of "pending", "confirmed", or "failed".
type VerifyPayload struct {
	Status string `json:"status"`
	PlanID string `json:"plan_id,omitempty"`
}
