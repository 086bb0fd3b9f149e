package queue

import (
	"testing"
	"time"
)

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name    string
		quality string
		tier    string
		waited  time.Duration
		want    int
	}{
		{
			name:    "free user fresh request",
			quality: QualityFree,
			tier:    TierFree,
			waited:  0,
			want:    0,
		},
		{
			name:    "1080p adds quality bonus",
			quality: Quality1080p,
			tier:    TierFree,
			waited:  0,
			want:    10,
		},
		{
			name:    "enterprise 1080p fresh",
			quality: Quality1080p,
			tier:    TierEnterprise,
			waited:  0,
			want:    60,
		},
		{
			name:    "pro tier bonus",
			quality: QualityFree,
			tier:    TierPro,
			waited:  0,
			want:    30,
		},
		{
			name:    "basic tier bonus",
			quality: QualityFree,
			tier:    TierBasic,
			waited:  0,
			want:    10,
		},
		{
			name:    "wait bonus one point per minute",
			quality: QualityFree,
			tier:    TierFree,
			waited:  7 * time.Minute,
			want:    7,
		},
		{
			name:    "wait bonus capped at 100",
			quality: QualityFree,
			tier:    TierFree,
			waited:  6 * time.Hour,
			want:    100,
		},
		{
			name:    "negative wait clamps to zero",
			quality: QualityFree,
			tier:    TierFree,
			waited:  -time.Minute,
			want:    0,
		},
		{
			name:    "premium quality alone has no bonus",
			quality: QualityPremium,
			tier:    TierFree,
			waited:  0,
			want:    0,
		},
		{
			name:    "unknown tier treated as free",
			quality: QualityFree,
			tier:    "vip",
			waited:  0,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityScore(tt.quality, tt.tier, tt.waited)
			if got != tt.want {
				t.Errorf("PriorityScore(%q, %q, %v) = %d, want %d", tt.quality, tt.tier, tt.waited, got, tt.want)
			}
		})
	}
}

// Upgrading quality or tier at equal wait time must never lower the score.
func TestPriorityScoreMonotonic(t *testing.T) {
	qualities := []string{QualityFree, Quality1080p}
	tiers := []string{TierFree, TierBasic, TierPro, TierEnterprise}

	for _, waited := range []time.Duration{0, 30 * time.Minute} {
		prev := -1
		for _, tier := range tiers {
			got := PriorityScore(QualityFree, tier, waited)
			if got < prev {
				t.Errorf("tier upgrade lowered score: %s at %v scored %d, previous tier %d", tier, waited, got, prev)
			}
			prev = got
		}

		for _, tier := range tiers {
			low := PriorityScore(qualities[0], tier, waited)
			high := PriorityScore(qualities[1], tier, waited)
			if high < low {
				t.Errorf("quality upgrade lowered score for tier %s: 1080p %d < free %d", tier, high, low)
			}
		}
	}
}

func TestValidQuality(t *testing.T) {
	tests := []struct {
		quality string
		want    bool
	}{
		{"free", true},
		{"premium", true},
		{"360p", true},
		{"1080p", true},
		{"4k", false},
		{"", false},
		{"FREE", false},
	}

	for _, tt := range tests {
		t.Run(tt.quality, func(t *testing.T) {
			if got := ValidQuality(tt.quality); got != tt.want {
				t.Errorf("ValidQuality(%q) = %v, want %v", tt.quality, got, tt.want)
			}
		})
	}
}

func TestPremium(t *testing.T) {
	if !Premium(QualityPremium) || !Premium(Quality1080p) {
		t.Error("premium and 1080p should map to the premium model")
	}
	if Premium(QualityFree) || Premium(Quality360p) {
		t.Error("free and 360p should map to the standard model")
	}
}
