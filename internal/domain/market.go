package domain

import "time"

// Market is an immutable snapshot of a binary prediction market on Polymarket.
// Snapshots are never mutated locally; a fresh one is fetched each cycle.
type Market struct {
	ConditionID string
	Question    string
	Volume      float64 // total traded volume in USDC
	EndDate     time.Time
	Tokens      [2]Token
	Active      bool
	Closed      bool
}

// Token is one of the two sides of the market (YES/NO).
type Token struct {
	TokenID string
	Outcome string // "Yes" | "No"
	Price   float64
}

// IsBinary reports whether the market has both outcome tokens populated.
// Only binary markets are tradeable by this agent.
func (m Market) IsBinary() bool {
	return m.Tokens[0].TokenID != "" && m.Tokens[1].TokenID != ""
}

// YesToken returns the YES token of the market.
func (m Market) YesToken() Token {
	for _, t := range m.Tokens {
		if t.Outcome == "Yes" {
			return t
		}
	}
	return m.Tokens[0]
}

// NoToken returns the NO token of the market.
func (m Market) NoToken() Token {
	for _, t := range m.Tokens {
		if t.Outcome == "No" {
			return t
		}
	}
	return m.Tokens[1]
}

// TruncateQuestion returns the market question truncated to maxLen characters.
// Falls back to a prefix of the condition ID when the question is empty.
func TruncateQuestion(question, conditionID string, maxLen int) string {
	q := question
	if q == "" {
		if len(conditionID) > 20 {
			q = conditionID[:20] + "..."
		} else {
			q = conditionID
		}
	}
	if len(q) > maxLen {
		q = q[:maxLen-3] + "..."
	}
	return q
}
