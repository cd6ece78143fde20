package scanner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

type fakeMarkets struct {
	markets []domain.Market
	listErr error
}

func (f *fakeMarkets) ListMarkets(_ context.Context, limit int) ([]domain.Market, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.markets) > limit {
		return f.markets[:limit], nil
	}
	return f.markets, nil
}

func (f *fakeMarkets) GetMarket(_ context.Context, conditionID string) (domain.Market, error) {
	for _, m := range f.markets {
		if m.ConditionID == conditionID {
			return m, nil
		}
	}
	return domain.Market{}, fmt.Errorf("market %s not found", conditionID)
}

type fakePrices struct {
	asks  map[string]float64
	bids  map[string]float64
	mids  map[string]float64
	books map[string]domain.OrderBook
}

func (f *fakePrices) BestPrice(_ context.Context, tokenID string, side domain.Side) (float64, error) {
	src := f.asks
	if side == domain.SideSell {
		src = f.bids
	}
	p, ok := src[tokenID]
	if !ok {
		return 0, errors.New("no price")
	}
	return p, nil
}

func (f *fakePrices) FetchOrderBook(_ context.Context, tokenID string) (domain.OrderBook, error) {
	b, ok := f.books[tokenID]
	if !ok {
		return domain.OrderBook{}, errors.New("no book")
	}
	return b, nil
}

func (f *fakePrices) MidpointPrice(_ context.Context, tokenID string) (float64, error) {
	m, ok := f.mids[tokenID]
	if !ok {
		return 0, errors.New("no midpoint")
	}
	return m, nil
}

func (f *fakePrices) LastTradePrice(ctx context.Context, tokenID string) (float64, error) {
	return f.MidpointPrice(ctx, tokenID)
}

func binaryMarket(id, yesTok, noTok string, volume float64) domain.Market {
	return domain.Market{
		ConditionID: id,
		Question:    "Question " + id,
		Volume:      volume,
		Active:      true,
		Tokens: [2]domain.Token{
			{TokenID: yesTok, Outcome: "Yes"},
			{TokenID: noTok, Outcome: "No"},
		},
	}
}

func bookWithDepth(tokenID string, bid, ask, size float64) domain.OrderBook {
	return domain.OrderBook{
		TokenID: tokenID,
		Bids:    []domain.BookEntry{{Price: bid, Size: size}},
		Asks:    []domain.BookEntry{{Price: ask, Size: size}},
	}
}

func TestFindArbitrage_DetectsUnderpricedPair(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xarb", "y1", "n1", 50_000),
	}}
	prices := &fakePrices{
		asks: map[string]float64{"y1": 0.40, "n1": 0.55},
		books: map[string]domain.OrderBook{
			"y1": bookWithDepth("y1", 0.39, 0.40, 300),
			"n1": bookWithDepth("n1", 0.54, 0.55, 200),
		},
	}

	a := New(Config{Workers: 1}, markets, prices)
	opps, err := a.FindArbitrage(context.Background(), 1.0)

	require.NoError(t, err)
	require.Len(t, opps, 1)
	arb := opps[0].Arbitrage
	require.NotNil(t, arb)
	assert.InDelta(t, 5.263, arb.ProfitPct, 0.001)
	assert.Equal(t, 200.0, arb.MaxPosition, "bounded by the thinner ask side")
}

func TestFindArbitrage_FairlyPricedPairExcluded(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xfair", "y1", "n1", 50_000),
	}}
	prices := &fakePrices{
		asks: map[string]float64{"y1": 0.50, "n1": 0.51},
	}

	a := New(Config{Workers: 1}, markets, prices)
	opps, err := a.FindArbitrage(context.Background(), 1.0)

	require.NoError(t, err)
	assert.Empty(t, opps)
}

func TestFindArbitrage_BelowThresholdExcluded(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xthin", "y1", "n1", 50_000),
	}}
	// combined 0.995 → 0.502% profit, below a 1% threshold
	prices := &fakePrices{
		asks: map[string]float64{"y1": 0.50, "n1": 0.495},
	}

	a := New(Config{Workers: 1}, markets, prices)
	opps, err := a.FindArbitrage(context.Background(), 1.0)

	require.NoError(t, err)
	assert.Empty(t, opps)
}

func TestFindArbitrage_FailedMarketSkippedNotFatal(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xbroken", "missing-yes", "missing-no", 10_000),
		binaryMarket("0xgood", "y2", "n2", 10_000),
	}}
	prices := &fakePrices{
		asks: map[string]float64{"y2": 0.40, "n2": 0.50},
		books: map[string]domain.OrderBook{
			"y2": bookWithDepth("y2", 0.39, 0.40, 100),
			"n2": bookWithDepth("n2", 0.49, 0.50, 100),
		},
	}

	a := New(Config{Workers: 2}, markets, prices)
	opps, err := a.FindArbitrage(context.Background(), 1.0)

	require.NoError(t, err)
	require.Len(t, opps, 1)
	assert.Equal(t, "0xgood", opps[0].MarketID)
}

func TestFindArbitrage_InactiveAndNonBinarySkipped(t *testing.T) {
	inactive := binaryMarket("0xoff", "y1", "n1", 10_000)
	inactive.Active = false
	nonBinary := domain.Market{ConditionID: "0xhalf", Active: true,
		Tokens: [2]domain.Token{{TokenID: "solo", Outcome: "Yes"}}}

	markets := &fakeMarkets{markets: []domain.Market{inactive, nonBinary}}
	prices := &fakePrices{asks: map[string]float64{
		"y1": 0.40, "n1": 0.50, "solo": 0.40,
	}}

	a := New(Config{Workers: 1}, markets, prices)
	opps, err := a.FindArbitrage(context.Background(), 1.0)

	require.NoError(t, err)
	assert.Empty(t, opps)
}

func TestFindArbitrage_ListFailureIsFatal(t *testing.T) {
	markets := &fakeMarkets{listErr: errors.New("api down")}
	a := New(Config{Workers: 1}, markets, &fakePrices{})

	_, err := a.FindArbitrage(context.Background(), 1.0)
	assert.Error(t, err)
}

func TestFindMispriced_NoEstimatesNoSignal(t *testing.T) {
	a := New(Config{}, &fakeMarkets{}, &fakePrices{})
	assert.Empty(t, a.FindMispriced(context.Background(), nil))
	assert.Empty(t, a.FindMispriced(context.Background(), map[string]float64{}))
}

func TestFindMispriced_BuySignal(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xm", "y1", "n1", 80_000),
	}}
	prices := &fakePrices{
		mids: map[string]float64{"y1": 0.60},
		books: map[string]domain.OrderBook{
			"y1": bookWithDepth("y1", 0.59, 0.61, 400),
		},
	}

	a := New(Config{MinEdgePct: 5.0}, markets, prices)
	opps := a.FindMispriced(context.Background(), map[string]float64{"0xm": 0.70})

	require.Len(t, opps, 1)
	mp := opps[0].Mispricing
	require.NotNil(t, mp)
	assert.InDelta(t, 16.666, mp.EdgePct, 0.01)
	assert.Equal(t, domain.SideBuy, mp.RecommendedSide)
	assert.Equal(t, 400.0, mp.Liquidity, "buying hits the ask side")
}

func TestFindMispriced_SmallEdgeExcluded(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xm", "y1", "n1", 80_000),
	}}
	prices := &fakePrices{mids: map[string]float64{"y1": 0.60}}

	a := New(Config{MinEdgePct: 5.0}, markets, prices)
	// 0.62 vs 0.60 → 3.3% edge, below threshold
	opps := a.FindMispriced(context.Background(), map[string]float64{"0xm": 0.62})
	assert.Empty(t, opps)
}

func TestFindMispriced_SortedByAbsoluteEdge(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xsmall", "ys", "ns", 10_000),
		binaryMarket("0xbig", "yb", "nb", 10_000),
	}}
	prices := &fakePrices{mids: map[string]float64{"ys": 0.50, "yb": 0.50}}

	a := New(Config{MinEdgePct: 5.0}, markets, prices)
	opps := a.FindMispriced(context.Background(), map[string]float64{
		"0xsmall": 0.55, // +10%
		"0xbig":   0.35, // -30%, SELL
	})

	require.Len(t, opps, 2)
	assert.Equal(t, "0xbig", opps[0].MarketID)
	assert.Equal(t, domain.SideSell, opps[0].Mispricing.RecommendedSide)
}

func TestAnalyzeQuality_Reasons(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xok", "y1", "n1", 200_000),
	}}
	prices := &fakePrices{
		mids:  map[string]float64{"y1": 0.50},
		books: map[string]domain.OrderBook{"y1": bookWithDepth("y1", 0.495, 0.505, 20_000)},
	}
	a := New(Config{}, markets, prices)

	r := a.AnalyzeQuality(context.Background(), "0xmissing")
	assert.Equal(t, "market not found", r.Reason)
	assert.False(t, r.Tradeable)

	r = a.AnalyzeQuality(context.Background(), "0xok")
	assert.Empty(t, r.Reason)
	assert.True(t, r.Tradeable)
	assert.Equal(t, 100, r.Score)
}

func TestBestOpportunities_ArbitrageRanksFirst(t *testing.T) {
	arbMarket := binaryMarket("0xarb", "ya", "na", 50_000)
	qualityMarket := binaryMarket("0xq", "yq", "nq", 200_000)

	markets := &fakeMarkets{markets: []domain.Market{qualityMarket, arbMarket}}
	prices := &fakePrices{
		asks: map[string]float64{"ya": 0.40, "na": 0.55, "yq": 0.51, "nq": 0.50},
		mids: map[string]float64{"yq": 0.505},
		books: map[string]domain.OrderBook{
			"ya": bookWithDepth("ya", 0.39, 0.40, 300),
			"na": bookWithDepth("na", 0.54, 0.55, 200),
			"yq": bookWithDepth("yq", 0.50, 0.51, 20_000),
		},
	}

	a := New(Config{Workers: 1}, markets, prices)
	opps := a.BestOpportunities(context.Background(), 1000, 10)

	require.Len(t, opps, 2)
	assert.Equal(t, domain.OpportunityArbitrage, opps[0].Type)
	assert.Equal(t, domain.OpportunityHighQuality, opps[1].Type)
	assert.Less(t, opps[0].Priority, opps[1].Priority)
}

func TestBestOpportunities_TruncatesToMax(t *testing.T) {
	var ms []domain.Market
	asks := map[string]float64{}
	books := map[string]domain.OrderBook{}
	for i := 0; i < 15; i++ {
		y := fmt.Sprintf("y%d", i)
		n := fmt.Sprintf("n%d", i)
		ms = append(ms, binaryMarket(fmt.Sprintf("0x%d", i), y, n, 1_000))
		asks[y], asks[n] = 0.40, 0.55
		books[y] = bookWithDepth(y, 0.39, 0.40, 100)
		books[n] = bookWithDepth(n, 0.54, 0.55, 100)
	}

	a := New(Config{Workers: 2}, &fakeMarkets{markets: ms}, &fakePrices{asks: asks, books: books})
	opps := a.BestOpportunities(context.Background(), 1000, 10)
	assert.Len(t, opps, 10)
}

func TestFindHighLiquidity_SortedByVolume(t *testing.T) {
	markets := &fakeMarkets{markets: []domain.Market{
		binaryMarket("0xlow", "yl", "nl", 8_000),
		binaryMarket("0xhigh", "yh", "nh", 90_000),
		binaryMarket("0xtiny", "yt", "nt", 100),
	}}
	prices := &fakePrices{
		mids: map[string]float64{"yl": 0.50, "yh": 0.50},
		books: map[string]domain.OrderBook{
			"yl": bookWithDepth("yl", 0.49, 0.51, 1_000),
			"yh": bookWithDepth("yh", 0.49, 0.51, 5_000),
		},
	}

	a := New(Config{}, markets, prices)
	liquid, err := a.FindHighLiquidity(context.Background(), 5_000)

	require.NoError(t, err)
	require.Len(t, liquid, 2)
	assert.Equal(t, "0xhigh", liquid[0].Market.ConditionID)
	assert.Equal(t, "0xlow", liquid[1].Market.ConditionID)
}
