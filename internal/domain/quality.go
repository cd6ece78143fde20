package domain

// QualityReport is the result of scoring a single market for tradeability.
type QualityReport struct {
	MarketID     string
	Question     string
	Score        int // 0-100
	Tradeable    bool
	Volume       float64
	Spread       float64
	Liquidity    float64
	CurrentPrice float64
	Active       bool
	Reason       string // set when the market could not be scored
}

// Tradeability threshold: below this the market is too thin to trade.
const MinTradeableScore = 40

// QualityScore computes the 0-100 market quality score. Three independent
// axes, no interaction terms: volume up to 30, spread up to 30, liquidity up
// to 40 points. Deterministic on its inputs.
func QualityScore(volume, spread, liquidity float64) int {
	return volumeScore(volume) + spreadScore(spread) + liquidityScore(liquidity)
}

func volumeScore(volume float64) int {
	switch {
	case volume > 100_000:
		return 30
	case volume > 50_000:
		return 25
	case volume > 10_000:
		return 20
	case volume > 1_000:
		return 10
	default:
		return 0
	}
}

func spreadScore(spread float64) int {
	switch {
	case spread < 0.01:
		return 30
	case spread < 0.02:
		return 25
	case spread < 0.05:
		return 15
	case spread < 0.10:
		return 5
	default:
		return 0
	}
}

func liquidityScore(liquidity float64) int {
	switch {
	case liquidity > 10_000:
		return 40
	case liquidity > 5_000:
		return 30
	case liquidity > 1_000:
		return 20
	case liquidity > 100:
		return 10
	default:
		return 0
	}
}

// AssessQuality scores a market given its YES-token price summary and midpoint.
// Tradeable requires both the score threshold and an active market.
func AssessQuality(m Market, s PriceSummary, midpoint float64) QualityReport {
	score := QualityScore(m.Volume, s.Spread, s.Liquidity())
	return QualityReport{
		MarketID:     m.ConditionID,
		Question:     m.Question,
		Score:        score,
		Tradeable:    score >= MinTradeableScore && m.Active,
		Volume:       m.Volume,
		Spread:       s.Spread,
		Liquidity:    s.Liquidity(),
		CurrentPrice: midpoint,
		Active:       m.Active,
	}
}

// UnscorableQuality is the zero-score report for a market that could not be
// assessed (not found, no tokens, fetch failure).
func UnscorableQuality(marketID, reason string) QualityReport {
	return QualityReport{MarketID: marketID, Reason: reason}
}
