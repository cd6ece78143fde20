package domain

// OpportunityType tags the variant carried by an Opportunity.
type OpportunityType string

const (
	OpportunityArbitrage   OpportunityType = "arbitrage"
	OpportunityMispriced   OpportunityType = "mispriced"
	OpportunityHighQuality OpportunityType = "high_quality"
)

// Ranking priorities. Lower is better: a riskless arbitrage always outranks a
// quality-filtered candidate.
const (
	PriorityArbitrage   = 1
	PriorityHighQuality = 2
)

// Side of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opportunity is a tagged union over the three strategy outputs. Exactly one
// of Arbitrage, Mispricing, Quality is non-nil, matching Type. Priority and
// ExpectedValue exist for ranking only and never feed position sizing.
type Opportunity struct {
	Type          OpportunityType
	MarketID      string
	Question      string
	Priority      int
	ExpectedValue float64

	Arbitrage  *ArbitrageDetail
	Mispricing *MispricingDetail
	Quality    *QualityDetail
}

// ArbitrageDetail is an intra-market arbitrage: both outcome tokens bought
// together for less than the $1 they resolve to. Only valid while
// CombinedCost < 1.0.
type ArbitrageDetail struct {
	YesTokenID   string
	NoTokenID    string
	YesPrice     float64 // best ask of the YES token
	NoPrice      float64 // best ask of the NO token
	CombinedCost float64 // YesPrice + NoPrice
	Profit       float64 // 1.0 - CombinedCost
	ProfitPct    float64 // Profit / CombinedCost * 100
	MaxPosition  float64 // min(yes ask volume, no ask volume)
}

// MispricingDetail is a market whose implied probability diverges from an
// externally supplied estimate.
type MispricingDetail struct {
	TokenID         string
	MarketPrice     float64 // midpoint, the market's implied probability
	EstimatedProb   float64
	Edge            float64 // EstimatedProb - MarketPrice
	EdgePct         float64 // Edge / MarketPrice * 100
	RecommendedSide Side    // BUY when edge > 0, SELL otherwise
	Liquidity       float64 // ask volume when buying, bid volume when selling
}

// QualityDetail is a high-quality market candidate. It carries no price edge,
// only a confidence-style score.
type QualityDetail struct {
	TokenID      string
	Score        int
	CurrentPrice float64
	Volume       float64
	Spread       float64
	BidVolume    float64
	AskVolume    float64
}

// NewArbitrage builds a ranked arbitrage opportunity from the two ask prices.
func NewArbitrage(m Market, yesAsk, noAsk, maxPosition float64) Opportunity {
	combined := yesAsk + noAsk
	profit := 1.0 - combined
	return Opportunity{
		Type:          OpportunityArbitrage,
		MarketID:      m.ConditionID,
		Question:      m.Question,
		Priority:      PriorityArbitrage,
		ExpectedValue: profit / combined * 100,
		Arbitrage: &ArbitrageDetail{
			YesTokenID:   m.YesToken().TokenID,
			NoTokenID:    m.NoToken().TokenID,
			YesPrice:     yesAsk,
			NoPrice:      noAsk,
			CombinedCost: combined,
			Profit:       profit,
			ProfitPct:    profit / combined * 100,
			MaxPosition:  maxPosition,
		},
	}
}

// NewMispricing builds a mispricing opportunity from a midpoint price and an
// external probability estimate.
func NewMispricing(m Market, tokenID, question string, price, estimate, liquidity float64) Opportunity {
	edge := estimate - price
	edgePct := 0.0
	if price > 0 {
		edgePct = edge / price * 100
	}
	side := SideSell
	if edge > 0 {
		side = SideBuy
	}
	return Opportunity{
		Type:     OpportunityMispriced,
		MarketID: m.ConditionID,
		Question: question,
		Mispricing: &MispricingDetail{
			TokenID:         tokenID,
			MarketPrice:     price,
			EstimatedProb:   estimate,
			Edge:            edge,
			EdgePct:         edgePct,
			RecommendedSide: side,
			Liquidity:       liquidity,
		},
	}
}

// NewHighQuality builds a ranked high-quality opportunity from a quality report.
func NewHighQuality(r QualityReport, tokenID string, s PriceSummary) Opportunity {
	return Opportunity{
		Type:          OpportunityHighQuality,
		MarketID:      r.MarketID,
		Question:      r.Question,
		Priority:      PriorityHighQuality,
		ExpectedValue: float64(r.Score) / 10,
		Quality: &QualityDetail{
			TokenID:      tokenID,
			Score:        r.Score,
			CurrentPrice: r.CurrentPrice,
			Volume:       r.Volume,
			Spread:       s.Spread,
			BidVolume:    s.BidVolume,
			AskVolume:    s.AskVolume,
		},
	}
}
