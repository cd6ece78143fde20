package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/alejandrodnm/polytrader/internal/domain"
	"github.com/alejandrodnm/polytrader/internal/ports"
)

// Ranker constants, matching the execution path: arbitrage scans wider than
// the standalone default, quality candidates come from the top liquid markets.
const (
	rankerMinProfitPct = 0.5
	rankerMinVolume    = 5_000
	rankerTopLiquid    = 20
	rankerQualityMin   = 60

	defaultMaxOpportunities = 10
)

// Config controls the market analyzer.
type Config struct {
	MarketLimit  int     // max markets fetched per scan
	MinProfitPct float64 // arbitrage profit threshold for the standalone scan
	MinEdgePct   float64 // mispricing |edge| threshold in percent
	MinVolume    float64 // high-liquidity volume floor
	Workers      int     // arbitrage scan workers (0 = NumCPU*2)
}

// DefaultConfig returns the analyzer defaults.
func DefaultConfig() Config {
	return Config{
		MarketLimit:  500,
		MinProfitPct: 1.0,
		MinEdgePct:   5.0,
		MinVolume:    10_000,
	}
}

// Analyzer scans the active market set for exploitable price relationships.
// A failure on one market never aborts the scan of the rest: failures are
// logged at debug level and the market is skipped for the cycle.
type Analyzer struct {
	cfg     Config
	markets ports.MarketProvider
	prices  ports.PriceProvider
}

// New creates an Analyzer with its data dependencies injected.
func New(cfg Config, markets ports.MarketProvider, prices ports.PriceProvider) *Analyzer {
	if cfg.MarketLimit <= 0 {
		cfg.MarketLimit = 500
	}
	if cfg.MinEdgePct <= 0 {
		cfg.MinEdgePct = 5.0
	}
	return &Analyzer{cfg: cfg, markets: markets, prices: prices}
}

// FindArbitrage scans every active binary market for intra-market arbitrage:
// best_ask(YES) + best_ask(NO) < $1.00. Only opportunities with profit_pct at
// or above minProfitPct are kept, sorted descending by profit_pct.
func (a *Analyzer) FindArbitrage(ctx context.Context, minProfitPct float64) ([]domain.Opportunity, error) {
	markets, err := a.markets.ListMarkets(ctx, a.cfg.MarketLimit)
	if err != nil {
		return nil, fmt.Errorf("scanner.FindArbitrage: list markets: %w", err)
	}

	opps := scanArbitrageConcurrent(ctx, a.prices, markets, minProfitPct, a.cfg.Workers)

	sort.Slice(opps, func(i, j int) bool {
		return opps[i].Arbitrage.ProfitPct > opps[j].Arbitrage.ProfitPct
	})

	if len(opps) > 0 {
		slog.Info("arbitrage opportunities found", "count", len(opps))
	}
	return opps, nil
}

// FindMispriced compares market midpoints against externally supplied
// probability estimates (market id → estimate). Without estimates this
// strategy has no signal and returns empty. Kept when |edge_pct| >= the
// configured threshold, sorted descending by |edge_pct|.
func (a *Analyzer) FindMispriced(ctx context.Context, estimates map[string]float64) []domain.Opportunity {
	if len(estimates) == 0 {
		return nil
	}

	var opps []domain.Opportunity
	for marketID, estimate := range estimates {
		market, err := a.markets.GetMarket(ctx, marketID)
		if err != nil {
			slog.Debug("mispricing scan: market unavailable", "condition_id", marketID, "err", err)
			continue
		}
		if !market.Active {
			continue
		}

		yesToken := market.YesToken().TokenID
		if yesToken == "" {
			continue
		}

		price, err := a.prices.MidpointPrice(ctx, yesToken)
		if err != nil || price <= 0 {
			slog.Debug("mispricing scan: no midpoint", "token_id", yesToken, "err", err)
			continue
		}

		edge := estimate - price
		edgePct := edge / price * 100
		if math.Abs(edgePct) < a.cfg.MinEdgePct {
			continue
		}

		// Liquidity on the side we would hit: asks when buying, bids when
		// selling. A failed book fetch degrades to zero liquidity.
		var summary domain.PriceSummary
		if book, err := a.prices.FetchOrderBook(ctx, yesToken); err == nil {
			summary = book.Summarize()
		}
		liquidity := summary.BidVolume
		if edge > 0 {
			liquidity = summary.AskVolume
		}

		opps = append(opps, domain.NewMispricing(market, yesToken, market.Question, price, estimate, liquidity))
	}

	sort.Slice(opps, func(i, j int) bool {
		return math.Abs(opps[i].Mispricing.EdgePct) > math.Abs(opps[j].Mispricing.EdgePct)
	})

	if len(opps) > 0 {
		slog.Info("mispriced markets found", "count", len(opps))
	}
	return opps
}

// LiquidMarket pairs a market with its YES-token depth summary.
type LiquidMarket struct {
	Market   domain.Market
	Summary  domain.PriceSummary
	Midpoint float64
}

// FindHighLiquidity returns active markets with volume at or above minVolume,
// sorted descending by volume.
func (a *Analyzer) FindHighLiquidity(ctx context.Context, minVolume float64) ([]LiquidMarket, error) {
	markets, err := a.markets.ListMarkets(ctx, a.cfg.MarketLimit)
	if err != nil {
		return nil, fmt.Errorf("scanner.FindHighLiquidity: list markets: %w", err)
	}

	var liquid []LiquidMarket
	for _, m := range markets {
		if !m.Active || m.Volume < minVolume {
			continue
		}
		yesToken := m.YesToken().TokenID
		if yesToken == "" {
			continue
		}

		book, err := a.prices.FetchOrderBook(ctx, yesToken)
		if err != nil {
			slog.Debug("liquidity scan: no order book", "token_id", yesToken, "err", err)
			continue
		}
		summary := book.Summarize()

		midpoint, err := a.prices.MidpointPrice(ctx, yesToken)
		if err != nil {
			midpoint = summary.Midpoint
		}

		liquid = append(liquid, LiquidMarket{Market: m, Summary: summary, Midpoint: midpoint})
	}

	sort.Slice(liquid, func(i, j int) bool {
		return liquid[i].Market.Volume > liquid[j].Market.Volume
	})
	return liquid, nil
}

// FindMomentum is a named gap: momentum detection needs a historical price
// series this agent does not track yet.
// TODO: wire a price-history store before enabling momentum scans.
func (a *Analyzer) FindMomentum(ctx context.Context) []domain.Opportunity {
	slog.Debug("momentum scan skipped: no historical price series available")
	return nil
}

// AnalyzeQuality fetches one market and scores its tradeability. Any missing
// data yields a zero score with a reason instead of an error.
func (a *Analyzer) AnalyzeQuality(ctx context.Context, marketID string) domain.QualityReport {
	market, err := a.markets.GetMarket(ctx, marketID)
	if err != nil {
		return domain.UnscorableQuality(marketID, "market not found")
	}

	yesToken := market.YesToken().TokenID
	if yesToken == "" {
		return domain.UnscorableQuality(marketID, "no tokens")
	}

	book, err := a.prices.FetchOrderBook(ctx, yesToken)
	if err != nil {
		return domain.UnscorableQuality(marketID, "order book unavailable")
	}
	summary := book.Summarize()

	midpoint, err := a.prices.MidpointPrice(ctx, yesToken)
	if err != nil {
		midpoint = summary.Midpoint
	}

	return domain.AssessQuality(market, summary, midpoint)
}

// BestOpportunities merges the strategy outputs into one prioritized list:
// arbitrage first, then quality-filtered candidates from the top liquid
// markets. Mispricing is a separate entry point — it needs an external
// estimate that is not always present, so it never joins this default list.
// Returns at most maxOpportunities entries (10 when <= 0).
func (a *Analyzer) BestOpportunities(ctx context.Context, bankroll float64, maxOpportunities int) []domain.Opportunity {
	if maxOpportunities <= 0 {
		maxOpportunities = defaultMaxOpportunities
	}

	var all []domain.Opportunity

	arb, err := a.FindArbitrage(ctx, rankerMinProfitPct)
	if err != nil {
		slog.Warn("ranker: arbitrage scan failed", "err", err)
	}
	all = append(all, arb...)

	liquid, err := a.FindHighLiquidity(ctx, rankerMinVolume)
	if err != nil {
		slog.Warn("ranker: liquidity scan failed", "err", err)
	}
	if len(liquid) > rankerTopLiquid {
		liquid = liquid[:rankerTopLiquid]
	}
	for _, lm := range liquid {
		q := domain.AssessQuality(lm.Market, lm.Summary, lm.Midpoint)
		if q.Tradeable && q.Score >= rankerQualityMin {
			all = append(all, domain.NewHighQuality(q, lm.Market.YesToken().TokenID, lm.Summary))
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Priority != all[j].Priority {
			return all[i].Priority < all[j].Priority
		}
		return all[i].ExpectedValue > all[j].ExpectedValue
	})

	if len(all) > maxOpportunities {
		all = all[:maxOpportunities]
	}

	slog.Debug("opportunities ranked",
		"total", len(all),
		"bankroll", fmt.Sprintf("$%.2f", bankroll),
	)
	return all
}
