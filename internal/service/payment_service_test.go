package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPack(t *testing.T) {
	pack := findPack("starter")
	if assert.NotNil(t, pack) {
		assert.Equal(t, 10, pack.Credits)
		assert.Equal(t, int64(999), pack.PriceCents)
	}

	assert.Nil(t, findPack("nonexistent"))
}

func TestUnlimitedPackUsesSentinelCredits(t *testing.T) {
	pack := findPack("unlimited")
	if assert.NotNil(t, pack) {
		assert.Equal(t, -1, pack.Credits)
	}
}

func TestPackIdsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range creditPacks {
		assert.False(t, seen[p.Id], "duplicate pack id %q", p.Id)
		seen[p.Id] = true
		assert.NotZero(t, p.PriceCents)
	}
}
