package entity

import (
	"testing"
	"time"
)

func TestChallengeStatusAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &Challenge{
		StartsAt:     base,
		EndsAt:       base.Add(7 * 24 * time.Hour),
		VotingEndsAt: base.Add(10 * 24 * time.Hour),
	}

	tests := []struct {
		name string
		now  time.Time
		want ChallengeStatus
	}{
		{"before start", base.Add(-time.Hour), ChallengeStatusUpcoming},
		{"at start", base, ChallengeStatusActive},
		{"mid submission window", base.Add(3 * 24 * time.Hour), ChallengeStatusActive},
		{"submissions closed", c.EndsAt, ChallengeStatusVoting},
		{"mid voting window", base.Add(8 * 24 * time.Hour), ChallengeStatusVoting},
		{"voting closed", c.VotingEndsAt, ChallengeStatusCompleted},
		{"long after", base.Add(30 * 24 * time.Hour), ChallengeStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
