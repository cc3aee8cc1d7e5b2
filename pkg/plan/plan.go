package plan

import (
	"slices"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
)

// Feature represents a named capability a plan may grant.
type Feature string

const (
	FeatureAdvancedAnalytics Feature = "advanced_analytics"
	FeatureCustomThemes      Feature = "custom_themes"
	FeatureScheduledPosts    Feature = "scheduled_posts"
	FeaturePrioritySupport   Feature = "priority_support"
	FeatureAPIAccess         Feature = "api_access"
)

// Unlimited indicates no post limit for a plan.
const Unlimited int64 = -1

// Money represents a monetary amount in the smallest currency unit.
// For example, $49 USD is Amount: 4900, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// Plan describes a subscription tier: its price, post limit, and feature set.
type Plan struct {
	ID        string    `json:"id" yaml:"id"`
	Tier      Tier      `json:"tier" yaml:"tier"`
	Name      string    `json:"name" yaml:"name"`
	Price     Money     `json:"price" yaml:"price"`
	PostLimit int64     `json:"post_limit" yaml:"post_limit"` // -1 means unlimited
	Features  []Feature `json:"features" yaml:"features"`
	Active    bool      `json:"active" yaml:"active"`
}

// HasFeature reports whether the plan grants the feature. Pure over the plan
// snapshot: the same (plan, feature) pair always yields the same answer.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// IsUnlimited reports whether the plan has no post limit.
func (p Plan) IsUnlimited() bool {
	return p.PostLimit == Unlimited
}

// Usage holds the advisory usage counters computed against a plan.
// The server remains the source of truth for enforcement; these values exist
// for client-side UX only.
type Usage struct {
	PostsCreated int64
	Limit        int64 // -1 means unlimited
}

// Remaining returns how many posts can still be created, or Unlimited.
func (u Usage) Remaining() int64 {
	if u.Limit == Unlimited {
		return Unlimited
	}
	return max(u.Limit-u.PostsCreated, 0)
}

// Exceeded reports whether the counter has reached the limit.
func (u Usage) Exceeded() bool {
	return u.Limit != Unlimited && u.PostsCreated >= u.Limit
}

// FromPayload converts the wire representation into a Plan.
// Unknown tier names are rejected rather than silently mapped to free, so a
// drifted server payload cannot falsely permit or block.
func FromPayload(p apiclient.PlanPayload) (Plan, error) {
	tier, err := ParseTier(p.Tier)
	if err != nil {
		return Plan{}, err
	}

	limit := Unlimited
	if p.PostLimit != nil {
		limit = *p.PostLimit
	}

	features := make([]Feature, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, Feature(f))
	}

	return Plan{
		ID:        p.ID,
		Tier:      tier,
		Name:      p.Name,
		Price:     Money{Amount: p.PriceAmount, Currency: p.PriceCurrency},
		PostLimit: limit,
		Features:  features,
		Active:    p.Active,
	}, nil
}

// UsageFromPayload converts the wire representation into Usage.
func UsageFromPayload(u apiclient.UsagePayload) Usage {
	limit := Unlimited
	if u.Limit != nil {
		limit = *u.Limit
	}
	return Usage{PostsCreated: u.PostsCreated, Limit: limit}
}
