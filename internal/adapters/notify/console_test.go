package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

func sampleOpportunities() []domain.Opportunity {
	m := domain.Market{
		ConditionID: "0xarb",
		Question:    "Will the arbitrage close?",
		Tokens: [2]domain.Token{
			{TokenID: "y", Outcome: "Yes"},
			{TokenID: "n", Outcome: "No"},
		},
	}
	arb := domain.NewArbitrage(m, 0.40, 0.55, 200)
	quality := domain.NewHighQuality(domain.QualityReport{
		MarketID: "0xq", Question: "A quality market", Score: 85, CurrentPrice: 0.52, Volume: 120_000,
	}, "tok", domain.PriceSummary{Spread: 0.01})
	return []domain.Opportunity{arb, quality}
}

func TestNotifyOpportunities_Table(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.NotifyOpportunities(context.Background(), sampleOpportunities()))

	out := buf.String()
	assert.Contains(t, out, "arbitrage")
	assert.Contains(t, out, "high_quality")
	assert.Contains(t, out, "Will the arbitrage close?")
	assert.Contains(t, out, "5.26%")
	assert.Contains(t, out, "score 85")
}

func TestNotifyOpportunities_Compact(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	require.NoError(t, c.NotifyOpportunities(context.Background(), sampleOpportunities()))
	assert.Contains(t, buf.String(), "arb:1 quality:1 mispriced:0")
}

func TestNotifyOpportunities_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.NotifyOpportunities(context.Background(), nil))
	assert.Contains(t, buf.String(), "no opportunities found")
}

func TestNotifySummary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	err := c.NotifySummary(context.Background(), domain.PortfolioSummary{
		CurrentBalance:      990,
		OpenPositions:       2,
		TotalExposure:       100,
		DailyPnL:            -10,
		DailyReturnPct:      -1.0,
		DailyTrades:         3,
		MaxDailyLoss:        50,
		RemainingLossBuffer: 40,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "$990.00")
	assert.Contains(t, out, "Open positions: 2")
	assert.Contains(t, out, "$-10.00 (-1.00%)")
	assert.Contains(t, out, "$40.00 of $50.00")
	assert.NotContains(t, out, "target reached")
}

func TestNotifySummary_TargetReached(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.NotifySummary(context.Background(), domain.PortfolioSummary{TargetReached: true}))
	assert.Contains(t, buf.String(), "Daily target reached")
}

func TestPrintPerformance_NoTrades(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	c.PrintPerformance(domain.PerformanceSummary{PeriodDays: 30}, nil)
	assert.Contains(t, buf.String(), "No closed trades in the last 30 days")
}

func TestPrintPerformance_WithTrades(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	trades := []domain.TradeRecord{
		{Strategy: domain.PositionValueBet, PnL: 20},
		{Strategy: domain.PositionValueBet, PnL: -5},
	}
	summary := domain.SummarizeTrades(trades, 7)
	dailies := []domain.DailyStats{{Date: "2026-08-28", Balance: 1000, DailyPnL: 15, Trades: 2}}

	c.PrintPerformance(summary, dailies)

	out := buf.String()
	assert.Contains(t, out, "PERFORMANCE (7 days)")
	assert.Contains(t, out, "win rate 50.0%")
	assert.Contains(t, out, "2026-08-28")
	assert.Contains(t, out, "value_bet")
}
