package value

import (
	"fmt"
	"strings"
)

// PaidTier is the buyer's access level, maintained by billing events.
type PaidTier string

const (
	PaidTierFree       PaidTier = "free"
	PaidTierPaid       PaidTier = "paid"
	PaidTierEnterprise PaidTier = "enterprise"
)

func ParsePaidTier(s string) (PaidTier, error) {
	switch t := PaidTier(strings.ToLower(strings.TrimSpace(s))); t {
	case PaidTierFree, PaidTierPaid, PaidTierEnterprise:
		return t, nil
	default:
		return "", fmt.Errorf("unknown paid tier %q", s)
	}
}

// IsPaying reports whether the tier receives deal flow. Free buyers may
// register but are never matched.
func (t PaidTier) IsPaying() bool {
	return t == PaidTierPaid || t == PaidTierEnterprise
}

func (t PaidTier) String() string {
	return string(t)
}
