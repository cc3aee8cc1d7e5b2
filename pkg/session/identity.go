package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
)

// Kind is the closed set of identity kinds. KindNone is a resolved "nobody",
// distinct from the not-yet-resolved StateUnknown.
type Kind uint8

const (
	KindNone Kind = iota
	KindUser
	KindAdmin
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUser:
		return "user"
	case KindAdmin:
		return "admin"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Audience maps the kind to its API audience. Only user and admin have one.
func (k Kind) Audience() apiclient.Audience {
	if k == KindAdmin {
		return apiclient.AudienceAdmin
	}
	return apiclient.AudienceUser
}

// Identity is the resolved caller: kind, role, minimal profile, and the
// reference to their current plan (empty means implicit free tier).
type Identity struct {
	Kind     Kind
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
	PlanID   string
}

// Profile is the minimal profile persisted across reloads for provisional
// display. It carries no credentials and grants nothing.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Snapshot is the persisted per-kind session state: whether a session was
// present last time, plus the minimal profile. Restored snapshots are
// provisional and never promote the resolver past StateUnknown.
type Snapshot struct {
	Present bool    `json:"present"`
	Profile Profile `json:"profile"`
}

func identityFromPayload(kind Kind, p *apiclient.IdentityPayload) *Identity {
	return &Identity{
		Kind:     kind,
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
		PlanID:   p.PlanID,
	}
}
