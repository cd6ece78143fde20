package trading

import (
	"math"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// minPositionUSDC is the exchange's practical order floor. Anything smaller
// is rejected before reaching the order executor.
const minPositionUSDC = 10.0

// PositionSize maps an opportunity to a dollar size under the configured cap.
// Stronger signals get a larger fraction of both the cap and the bankroll;
// the tightest of the applicable bounds wins. Never returns a negative size.
func (m *Manager) PositionSize(opp domain.Opportunity, bankroll float64) float64 {
	cap := m.cfg.MaxPositionSize

	var size float64
	switch {
	case opp.Type == domain.OpportunityArbitrage && opp.Arbitrage != nil:
		d := opp.Arbitrage
		switch {
		case d.ProfitPct >= 2.0:
			size = min3(cap, d.MaxPosition*100, bankroll*0.15)
		case d.ProfitPct >= 1.0:
			size = min3(cap*0.7, d.MaxPosition*100, bankroll*0.10)
		default:
			size = min3(cap*0.5, d.MaxPosition*100, bankroll*0.05)
		}

	case opp.Type == domain.OpportunityMispriced && opp.Mispricing != nil:
		d := opp.Mispricing
		edge := math.Abs(d.EdgePct) / 100
		if edge < m.cfg.MinEdge {
			return 0
		}
		// Quarter-Kelly style: bankroll scaled by the edge fraction, then
		// bounded by the cap and a 10% bankroll ceiling.
		size = min3(bankroll*edge*m.cfg.KellyFraction, cap, bankroll*0.10)

	case opp.Type == domain.OpportunityHighQuality && opp.Quality != nil:
		d := opp.Quality
		switch {
		case d.Score >= 80:
			size = math.Min(cap*0.6, bankroll*0.08)
		case d.Score >= 60:
			size = math.Min(cap*0.4, bankroll*0.05)
		default:
			size = math.Min(cap*0.2, bankroll*0.03)
		}

	default:
		size = math.Min(cap*0.3, bankroll*0.03)
	}

	return math.Max(size, 0)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}
