package polymarket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

func TestMapMarket_Basic(t *testing.T) {
	raw := clobMarket{
		ConditionID: "0xabc",
		Question:    "Will it happen?",
		EndDateISO:  "2026-11-05T12:00:00Z",
		Active:      true,
		Tokens: []clobToken{
			{TokenID: "tok-yes", Outcome: "Yes", Price: 0.62},
			{TokenID: "tok-no", Outcome: "No", Price: 0.38},
		},
	}

	m := mapMarket(raw)
	assert.Equal(t, "0xabc", m.ConditionID)
	assert.True(t, m.Active)
	assert.True(t, m.IsBinary())
	assert.Equal(t, "tok-yes", m.YesToken().TokenID)
	assert.Equal(t, "tok-no", m.NoToken().TokenID)
	assert.Equal(t, 2026, m.EndDate.Year())
}

func TestMapMarket_ExtraTokensIgnored(t *testing.T) {
	raw := clobMarket{
		ConditionID: "0xmulti",
		Tokens: []clobToken{
			{TokenID: "a", Outcome: "Yes"},
			{TokenID: "b", Outcome: "No"},
			{TokenID: "c", Outcome: "Maybe"},
		},
	}

	m := mapMarket(raw)
	assert.Equal(t, "a", m.Tokens[0].TokenID)
	assert.Equal(t, "b", m.Tokens[1].TokenID)
}

func TestMapMarket_DateOnlyFormat(t *testing.T) {
	m := mapMarket(clobMarket{ConditionID: "0xd", EndDateISO: "2026-03-01"})
	assert.Equal(t, time.March, m.EndDate.Month())
}

func TestApplyGammaVolume(t *testing.T) {
	m := domain.Market{ConditionID: "0xabc"}
	applyGammaVolume(&m, gammaMarket{
		ConditionID: "0xabc",
		Question:    "From gamma",
		Volume:      "123456.78",
	})

	assert.InDelta(t, 123456.78, m.Volume, 0.001)
	assert.Equal(t, "From gamma", m.Question, "empty question backfilled")

	// An existing question is not overwritten.
	m.Question = "original"
	applyGammaVolume(&m, gammaMarket{Question: "other", Volume: "1"})
	assert.Equal(t, "original", m.Question)
}

func TestMapBookEntries_SortsAndDropsZeroLevels(t *testing.T) {
	raw := []bookEntryRaw{
		{Price: "0.45", Size: "100"},
		{Price: "0.48", Size: "50"},
		{Price: "0", Size: "10"},
		{Price: "0.40", Size: "0"},
	}

	bids := mapBookEntries(raw, false)
	require.Len(t, bids, 2)
	assert.Equal(t, 0.48, bids[0].Price, "best bid first")

	asks := mapBookEntries(raw, true)
	assert.Equal(t, 0.45, asks[0].Price, "best ask first")
}

func TestMapBook_FallsBackToRequestedToken(t *testing.T) {
	b := mapBook(bookResponse{}, "tok-123")
	assert.Equal(t, "tok-123", b.TokenID)

	b = mapBook(bookResponse{AssetID: "from-api"}, "tok-123")
	assert.Equal(t, "from-api", b.TokenID)
}

func TestMapOpenOrder(t *testing.T) {
	o := mapOpenOrder(openOrderRaw{
		ID:           "ord-1",
		AssetID:      "tok",
		Market:       "0xm",
		Side:         "BUY",
		Price:        "0.52",
		OriginalSize: "100",
		SizeMatched:  "40",
		CreatedAt:    "1756300000",
	})

	assert.Equal(t, domain.SideBuy, o.Side)
	assert.Equal(t, 0.52, o.Price)
	assert.Equal(t, 100.0, o.OriginalSize)
	assert.Equal(t, 40.0, o.SizeMatched)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestParseMicroUSDC(t *testing.T) {
	assert.Equal(t, 1.0, parseMicroUSDC("1000000"))
	assert.InDelta(t, 12.345678, parseMicroUSDC("12345678"), 0.0001)
	assert.Equal(t, 0.0, parseMicroUSDC(""))
	assert.Equal(t, 0.0, parseMicroUSDC("garbage"))
}

func TestParseTimestamp_Formats(t *testing.T) {
	unix := parseTimestamp("1756300000")
	assert.Equal(t, 2025, unix.Year())

	millis := parseTimestamp("1756300000000")
	assert.Equal(t, unix, millis)

	iso := parseTimestamp("2026-08-28T10:00:00Z")
	assert.Equal(t, time.August, iso.Month())

	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("not-a-date").IsZero())
}
