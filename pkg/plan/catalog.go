package plan

import "strings"

// Catalog is an immutable set of plans with lookup by ID, tier, or name.
// Checkout uses it for the three-step identifier resolution: live plan list,
// in-memory candidate, static fallback.
type Catalog struct {
	plans []Plan
}

// NewCatalog builds a catalog from a plan list. The slice is copied; the
// catalog never mutates after construction.
func NewCatalog(plans []Plan) *Catalog {
	copied := make([]Plan, len(plans))
	copy(copied, plans)
	return &Catalog{plans: copied}
}

// Plans returns a copy of the catalog contents.
func (c *Catalog) Plans() []Plan {
	copied := make([]Plan, len(c.plans))
	copy(copied, c.plans)
	return copied
}

// Len returns the number of plans in the catalog.
func (c *Catalog) Len() int {
	return len(c.plans)
}

// ByID returns the plan with the given ID.
func (c *Catalog) ByID(id string) (Plan, error) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// ByTier returns the plan for the given tier.
func (c *Catalog) ByTier(t Tier) (Plan, error) {
	for _, p := range c.plans {
		if p.Tier == t {
			return p, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// Resolve finds a plan by identifier, matching plan ID first, then tier
// name, then display name (both case-insensitive).
func (c *Catalog) Resolve(identifier string) (Plan, error) {
	if identifier == "" {
		return Plan{}, ErrPlanNotFound
	}

	if p, err := c.ByID(identifier); err == nil {
		return p, nil
	}

	if tier, err := ParseTier(identifier); err == nil {
		if p, err := c.ByTier(tier); err == nil {
			return p, nil
		}
	}

	for _, p := range c.plans {
		if strings.EqualFold(p.Name, identifier) {
			return p, nil
		}
	}

	return Plan{}, ErrPlanNotFound
}
