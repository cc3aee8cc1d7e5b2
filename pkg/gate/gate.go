package gate

import (
	"fmt"

	"github.com/dmitrymomot/blogkit/pkg/plan"
	"github.com/dmitrymomot/blogkit/pkg/session"
	"github.com/dmitrymomot/blogkit/pkg/usage"
)

// Verdict is the gate's tri-state answer.
type Verdict uint8

const (
	// Loading means the relevant resolver has not finished; render a
	// spinner, never a redirect.
	Loading Verdict = iota
	// Allow means the caller may see the protected surface.
	Allow
	// Deny means the caller must be redirected to Decision.RedirectTo.
	Deny
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Loading:
		return "loading"
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("verdict(%d)", uint8(v))
	}
}

// Reason distinguishes why access was denied.
type Reason uint8

const (
	// ReasonNone accompanies Allow and Loading verdicts.
	ReasonNone Reason = iota
	// ReasonAuth means no valid session of the required kind.
	ReasonAuth
	// ReasonPlan means the session is fine but the plan lacks the feature.
	ReasonPlan
)

// Decision is the outcome of a guard check.
type Decision struct {
	Verdict    Verdict
	Reason     Reason
	RedirectTo string
}

// Routes holds the redirect targets the gate hands out.
type Routes struct {
	Login      string `env:"BLOG_ROUTE_LOGIN" envDefault:"/login"`
	AdminLogin string `env:"BLOG_ROUTE_ADMIN_LOGIN" envDefault:"/admin/login"`
	Upgrade    string `env:"BLOG_ROUTE_UPGRADE" envDefault:"/upgrade"`
}

// SessionSource exposes the resolver state the gate reads.
// *session.Resolver satisfies this interface.
type SessionSource interface {
	State() session.State
	Identity() *session.Identity
}

// PlanSource exposes the cached plan snapshot for feature checks.
// *usage.Resolver satisfies this interface.
type PlanSource interface {
	Cached() *usage.Snapshot
}

// Gate guards protected surfaces using the two session resolvers and the
// plan snapshot.
type Gate struct {
	user   SessionSource
	admin  SessionSource
	plans  PlanSource
	routes Routes
}

// New creates a gate. The plan source may be nil if no surface uses feature
// gating; session sources are required.
func New(user, admin SessionSource, plans PlanSource, routes Routes) *Gate {
	if user == nil || admin == nil {
		panic("gate: session sources are required")
	}
	return &Gate{user: user, admin: admin, plans: plans, routes: routes}
}

// Guard decides access for a surface requiring the given identity kind.
// An empty requiredFeature means no feature check beyond authentication.
func (g *Gate) Guard(requiredKind session.Kind, requiredFeature plan.Feature) Decision {
	source, loginRoute := g.sourceFor(requiredKind)

	switch source.State() {
	case session.StateUnknown:
		// Not resolved yet. Redirecting here is the login-flicker bug.
		return Decision{Verdict: Loading}

	case session.StateAbsent:
		return Decision{Verdict: Deny, Reason: ReasonAuth, RedirectTo: loginRoute}
	}

	identity := source.Identity()
	if identity == nil || identity.Kind != requiredKind {
		return Decision{Verdict: Deny, Reason: ReasonAuth, RedirectTo: loginRoute}
	}

	if requiredFeature == "" {
		return Decision{Verdict: Allow}
	}

	if g.plans == nil {
		return Decision{Verdict: Loading}
	}

	snap := g.plans.Cached()
	if snap == nil {
		// Plan data is unknown, not free: neither falsely permit nor
		// falsely block until a snapshot exists.
		return Decision{Verdict: Loading}
	}

	if !snap.HasFeature(requiredFeature) {
		return Decision{Verdict: Deny, Reason: ReasonPlan, RedirectTo: g.routes.Upgrade}
	}

	return Decision{Verdict: Allow}
}

func (g *Gate) sourceFor(kind session.Kind) (SessionSource, string) {
	if kind == session.KindAdmin {
		return g.admin, g.routes.AdminLogin
	}
	return g.user, g.routes.Login
}
