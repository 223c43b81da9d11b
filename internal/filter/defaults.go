package filter

// defaultWords is the built-in dictionary loaded before any configured or
// persisted lists. High-tier entries carry over the phrase categories the
// platform already blocked outright; the lower tiers seed common comment
// spam vocabulary.
var defaultWords = map[RiskTier][]string{
	TierHigh: {
		"how to make a bomb", "how to make explosives",
		"how to harm", "how to kill",
		"how to hack into", "how to steal",
		"how to counterfeit", "how to forge",
		"write malware", "create a virus",
		"write ransomware", "create a trojan",
	},
	TierMedium: {
		"free money", "get rich quick",
		"miracle cure", "guaranteed winner",
		"crypto giveaway",
	},
	TierLow: {
		"buy now", "click here",
		"limited offer", "act now",
	},
}
