package domain

// KellyBetSize computes the Kelly-optimal bet in dollars for a binary market.
//
// For a token priced at marketPrice that pays $1 on the predicted outcome:
//
//	kelly_pct = edge / (1 - market_price)   where edge = probability - market_price
//
// kellyFraction (< 1, typically 0.25 for quarter Kelly) scales the full Kelly
// bet down to reduce variance. The result is capped at 10% of bankroll and is
// 0 whenever there is no positive edge or the price is outside (0, 1).
func KellyBetSize(probability, marketPrice, bankroll, kellyFraction float64) float64 {
	if marketPrice <= 0 || marketPrice >= 1 {
		return 0
	}

	edge := probability - marketPrice
	if edge <= 0 {
		return 0
	}

	kellyPct := edge / (1 - marketPrice) * kellyFraction
	size := bankroll * kellyPct

	if maxBet := bankroll * 0.10; size > maxBet {
		size = maxBet
	}
	if size < 0 {
		return 0
	}
	return size
}
