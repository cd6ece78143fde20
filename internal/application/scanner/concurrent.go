package scanner

// concurrent.go — worker pool for the arbitrage scan.
//
// Each market needs two best-ask lookups plus, for candidates, two order-book
// fetches. Fanning markets out over workers keeps the scan inside one polling
// interval; the opportunity slice is only assembled after every worker is
// done, so ranking always sees a consistent snapshot.

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/polytrader/internal/domain"
	"github.com/alejandrodnm/polytrader/internal/ports"
)

// scanArbitrageConcurrent checks all markets for arbitrage using a worker
// pool. Workers skip markets whose lookups fail; if workers <= 0 it uses
// runtime.NumCPU() × 2.
func scanArbitrageConcurrent(
	ctx context.Context,
	prices ports.PriceProvider,
	markets []domain.Market,
	minProfitPct float64,
	workers int,
) []domain.Opportunity {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	workCh := make(chan domain.Market, len(markets))
	resultCh := make(chan domain.Opportunity, len(markets))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range workCh {
				if opp, ok := checkArbitrage(ctx, prices, m, minProfitPct); ok {
					resultCh <- opp
				}
			}
		}()
	}

	queued := 0
	for _, m := range markets {
		if !m.Active || !m.IsBinary() {
			continue
		}
		workCh <- m
		queued++
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	opps := make([]domain.Opportunity, 0, queued)
	for opp := range resultCh {
		opps = append(opps, opp)
	}

	slog.Debug("arbitrage scan complete",
		"markets_queued", queued,
		"opportunities", len(opps),
		"workers", workers,
	)
	return opps
}

// checkArbitrage evaluates one binary market. The cost to acquire one share
// of each outcome is the sum of the best asks; below $1.00 the pair locks in
// a riskless profit at resolution.
func checkArbitrage(
	ctx context.Context,
	prices ports.PriceProvider,
	m domain.Market,
	minProfitPct float64,
) (domain.Opportunity, bool) {
	yesToken := m.YesToken().TokenID
	noToken := m.NoToken().TokenID

	yesAsk, err := prices.BestPrice(ctx, yesToken, domain.SideBuy)
	if err != nil || yesAsk <= 0 {
		slog.Debug("arbitrage scan: no YES ask", "condition_id", m.ConditionID, "err", err)
		return domain.Opportunity{}, false
	}
	noAsk, err := prices.BestPrice(ctx, noToken, domain.SideBuy)
	if err != nil || noAsk <= 0 {
		slog.Debug("arbitrage scan: no NO ask", "condition_id", m.ConditionID, "err", err)
		return domain.Opportunity{}, false
	}

	combined := yesAsk + noAsk
	if combined >= 1.0 {
		return domain.Opportunity{}, false
	}

	profitPct := (1.0 - combined) / combined * 100
	if profitPct < minProfitPct {
		return domain.Opportunity{}, false
	}

	// Liquidity bound: the position cannot exceed the thinner ask side.
	yesBook, err := prices.FetchOrderBook(ctx, yesToken)
	if err != nil {
		slog.Debug("arbitrage scan: no YES book", "condition_id", m.ConditionID, "err", err)
		return domain.Opportunity{}, false
	}
	noBook, err := prices.FetchOrderBook(ctx, noToken)
	if err != nil {
		slog.Debug("arbitrage scan: no NO book", "condition_id", m.ConditionID, "err", err)
		return domain.Opportunity{}, false
	}

	maxPosition := yesBook.Summarize().AskVolume
	if v := noBook.Summarize().AskVolume; v < maxPosition {
		maxPosition = v
	}

	return domain.NewArbitrage(m, yesAsk, noAsk, maxPosition), true
}
