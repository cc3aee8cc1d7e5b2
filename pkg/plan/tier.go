package plan

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is the closed set of subscription tiers. Using a tagged enum instead
// of raw strings eliminates case drift between server payloads, persisted
// state, and gating logic ("Free" vs "free").
type Tier uint8

const (
	TierFree Tier = iota
	TierPremium
	TierPro
)

// Tiers lists all tiers in ascending order of capability.
func Tiers() []Tier {
	return []Tier{TierFree, TierPremium, TierPro}
}

// String returns the canonical lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierFree:
		return "free"
	case TierPremium:
		return "premium"
	case TierPro:
		return "pro"
	default:
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return TierFree, nil
	case "premium":
		return TierPremium, nil
	case "pro":
		return TierPro, nil
	default:
		return TierFree, fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as their
// canonical names in JSON and YAML.
func (t Tier) MarshalText() ([]byte, error) {
	switch t {
	case TierFree, TierPremium, TierPro:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, uint8(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler; yaml.v3 does not consult
// encoding.TextMarshaler on its own.
func (t Tier) MarshalYAML() (any, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(raw))
}
