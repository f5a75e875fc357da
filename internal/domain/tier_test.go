package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAddPlant(t *testing.T) {
	tests := []struct {
		name    string
		tier    SubscriptionTier
		current int
		want    bool
	}{
		{"free below limit", TierFree, 0, true},
		{"free at last slot", TierFree, 4, true},
		{"free at limit", TierFree, 5, false},
		{"free above limit", TierFree, 10, false},
		{"basic below limit", TierBasic, 24, true},
		{"basic at limit", TierBasic, 25, false},
		{"premium unlimited", TierPremium, 100000, true},
		{"unknown tier denied", SubscriptionTier("Gold"), 0, false},
		{"empty tier denied", SubscriptionTier(""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAddPlant(tt.tier, tt.current))
		})
	}
}
