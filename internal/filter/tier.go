package filter

import (
	"fmt"
	"strings"
)

// RiskTier classifies how severe a sensitive word is.
type RiskTier int

const (
	TierLow RiskTier = iota
	TierMedium
	TierHigh
)

func (t RiskTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier maps a tier name to its RiskTier, case-insensitively.
func ParseTier(s string) (RiskTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow, nil
	case "medium":
		return TierMedium, nil
	case "high":
		return TierHigh, nil
	}
	return TierLow, fmt.Errorf("unknown risk tier %q", s)
}
