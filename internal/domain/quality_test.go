package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScore_TopTier(t *testing.T) {
	// volume > 100k (30) + spread < 0.01 (30) + liquidity > 10k (40) = 100
	assert.Equal(t, 100, QualityScore(150_000, 0.005, 15_000))
}

func TestQualityScore_DeadMarket(t *testing.T) {
	assert.Equal(t, 0, QualityScore(500, 0.20, 50))
}

func TestQualityScore_MidTiers(t *testing.T) {
	// volume 60k (25) + spread 0.03 (15) + liquidity 2k (20) = 60
	assert.Equal(t, 60, QualityScore(60_000, 0.03, 2_000))
}

func TestQualityScore_BoundaryValuesAreExclusive(t *testing.T) {
	// Volume tiers use strict greater-than, spread tiers strict less-than.
	assert.Equal(t, 25+30+30, QualityScore(100_000, 0.009, 10_000))
	assert.Equal(t, 30+25+40, QualityScore(100_001, 0.01, 10_001))
}

func TestQualityScore_Deterministic(t *testing.T) {
	a := QualityScore(42_000, 0.015, 3_000)
	b := QualityScore(42_000, 0.015, 3_000)
	assert.Equal(t, a, b)
}

func TestAssessQuality_TradeableNeedsScoreAndActive(t *testing.T) {
	m := Market{ConditionID: "0xc1", Question: "Will it rain?", Volume: 60_000, Active: true}
	s := PriceSummary{Spread: 0.015, BidVolume: 6_000, AskVolume: 8_000}

	r := AssessQuality(m, s, 0.55)
	assert.Equal(t, 25+25+30, r.Score)
	assert.True(t, r.Tradeable)
	assert.Equal(t, 0.55, r.CurrentPrice)
	assert.Equal(t, 6_000.0, r.Liquidity, "liquidity is the thinner side")
}

func TestAssessQuality_InactiveNeverTradeable(t *testing.T) {
	m := Market{ConditionID: "0xc2", Volume: 200_000, Active: false}
	s := PriceSummary{Spread: 0.005, BidVolume: 20_000, AskVolume: 20_000}

	r := AssessQuality(m, s, 0.50)
	assert.Equal(t, 100, r.Score)
	assert.False(t, r.Tradeable)
}

func TestAssessQuality_BelowThreshold(t *testing.T) {
	m := Market{ConditionID: "0xc3", Volume: 2_000, Active: true}
	s := PriceSummary{Spread: 0.08, BidVolume: 200, AskVolume: 300}

	r := AssessQuality(m, s, 0.50)
	assert.Equal(t, 10+5+10, r.Score)
	assert.False(t, r.Tradeable)
}

func TestUnscorableQuality(t *testing.T) {
	r := UnscorableQuality("0xgone", "market not found")
	assert.Equal(t, 0, r.Score)
	assert.False(t, r.Tradeable)
	assert.Equal(t, "market not found", r.Reason)
}
