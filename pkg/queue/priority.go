package queue

import "time"

// Subscription tiers in ascending order of service level.
const (
	TierFree       = "free"
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Quality tiers accepted by the generate endpoint. "free" and "360p" map to
// the standard model, "premium" and "1080p" to the premium one.
const (
	QualityFree    = "free"
	QualityPremium = "premium"
	Quality360p    = "360p"
	Quality1080p   = "1080p"
)

const maxWaitBonus = 100

var tierBonus = map[string]int{
	TierFree:       0,
	TierBasic:      10,
	TierPro:        30,
	TierEnterprise: 50,
}

// ValidQuality reports whether q is a quality tier the API accepts.
func ValidQuality(q string) bool {
	switch q {
	case QualityFree, QualityPremium, Quality360p, Quality1080p:
		return true
	}
	return false
}

// Premium reports whether q is served by the premium model.
func Premium(q string) bool {
	return q == QualityPremium || q == Quality1080p
}

// PriorityScore computes the sort key for a pending request. Higher scores
// are served first. The wait bonus is one point per minute waited, capped,
// so paid tiers always outrank a fresh free request but a free request
// cannot starve forever behind them.
func PriorityScore(quality, tier string, waited time.Duration) int {
	score := 0
	if quality == Quality1080p {
		score += 10
	}
	score += tierBonus[tier]

	waitMinutes := int(waited.Minutes())
	if waitMinutes < 0 {
		waitMinutes = 0
	}
	if waitMinutes > maxWaitBonus {
		waitMinutes = maxWaitBonus
	}
	return score + waitMinutes
}
