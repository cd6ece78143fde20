package trading

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// Execute routes an opportunity to its strategy entry. A nil result with a
// nil error means the entry was skipped (sized below the floor), not failed.
func (m *Manager) Execute(ctx context.Context, opp domain.Opportunity, bankroll float64) (*domain.ExecutionResult, error) {
	switch opp.Type {
	case domain.OpportunityArbitrage:
		return m.ExecuteArbitrage(ctx, opp, bankroll)
	case domain.OpportunityMispriced:
		return m.ExecuteValueBet(ctx, opp, bankroll)
	case domain.OpportunityHighQuality:
		return m.ExecuteLimitOrder(ctx, opp, bankroll)
	default:
		return nil, fmt.Errorf("trading.Execute: unknown opportunity type %q", opp.Type)
	}
}

// ExecuteArbitrage buys both outcome tokens of a binary market. The position
// only exists if both legs fill; a failed second leg leaves the first leg
// outstanding and is reported as an error without opening anything.
func (m *Manager) ExecuteArbitrage(ctx context.Context, opp domain.Opportunity, bankroll float64) (*domain.ExecutionResult, error) {
	if opp.Type != domain.OpportunityArbitrage || opp.Arbitrage == nil {
		return nil, fmt.Errorf("trading.ExecuteArbitrage: not an arbitrage opportunity")
	}
	arb := opp.Arbitrage

	size := m.PositionSize(opp, bankroll)
	if size < minPositionUSDC {
		slog.Info("arbitrage skipped: size below floor",
			"condition_id", opp.MarketID, "size", size)
		return nil, nil
	}
	shares := size / arb.CombinedCost

	yesRes, err := m.executor.PlaceMarketOrder(ctx, arb.YesTokenID, shares*arb.YesPrice, domain.SideBuy)
	if err != nil {
		return nil, fmt.Errorf("trading.ExecuteArbitrage: yes leg: %w", err)
	}
	if !yesRes.Success {
		return nil, fmt.Errorf("trading.ExecuteArbitrage: yes leg rejected: %s", yesRes.Status)
	}

	noRes, err := m.executor.PlaceMarketOrder(ctx, arb.NoTokenID, shares*arb.NoPrice, domain.SideBuy)
	if err != nil || !noRes.Success {
		// The YES leg is filled and now unhedged. Closing it immediately
		// would realize the spread as a loss; leave it and surface the
		// exposure loudly instead.
		slog.Warn("arbitrage NO leg failed, YES leg outstanding",
			"condition_id", opp.MarketID,
			"yes_token", arb.YesTokenID,
			"yes_order", yesRes.OrderID,
			"exposure", shares*arb.YesPrice,
			"err", err,
		)
		if err != nil {
			return nil, fmt.Errorf("trading.ExecuteArbitrage: no leg: %w", err)
		}
		return nil, fmt.Errorf("trading.ExecuteArbitrage: no leg rejected: %s", noRes.Status)
	}

	pos := domain.Position{
		ID:             domain.NewPositionID(domain.PositionArbitrage, arb.YesTokenID, arb.NoTokenID),
		Type:           domain.PositionArbitrage,
		MarketID:       opp.MarketID,
		YesTokenID:     arb.YesTokenID,
		NoTokenID:      arb.NoTokenID,
		Shares:         shares,
		Cost:           size,
		ExpectedProfit: shares * arb.Profit,
		EntryTime:      time.Now(),
	}
	m.state.OpenPositions[pos.ID] = pos
	m.state.DailyTrades++

	slog.Info("arbitrage position opened",
		"position_id", pos.ID,
		"cost", size,
		"shares", shares,
		"expected_profit", pos.ExpectedProfit,
	)
	return &domain.ExecutionResult{
		PositionID:     pos.ID,
		Size:           size,
		ExpectedProfit: pos.ExpectedProfit,
	}, nil
}

// ExecuteValueBet enters a single-sided position on a mispriced market with a
// market order on the recommended side.
func (m *Manager) ExecuteValueBet(ctx context.Context, opp domain.Opportunity, bankroll float64) (*domain.ExecutionResult, error) {
	if opp.Type != domain.OpportunityMispriced || opp.Mispricing == nil {
		return nil, fmt.Errorf("trading.ExecuteValueBet: not a mispricing opportunity")
	}
	mp := opp.Mispricing

	size := m.PositionSize(opp, bankroll)
	if size < minPositionUSDC {
		slog.Info("value bet skipped: size below floor",
			"condition_id", opp.MarketID, "size", size)
		return nil, nil
	}

	res, err := m.executor.PlaceMarketOrder(ctx, mp.TokenID, size, mp.RecommendedSide)
	if err != nil {
		return nil, fmt.Errorf("trading.ExecuteValueBet: place order: %w", err)
	}
	if !res.Success {
		return nil, fmt.Errorf("trading.ExecuteValueBet: order rejected: %s", res.Status)
	}

	pos := domain.Position{
		ID:            domain.NewPositionID(domain.PositionValueBet, mp.TokenID),
		Type:          domain.PositionValueBet,
		MarketID:      opp.MarketID,
		TokenID:       mp.TokenID,
		Side:          mp.RecommendedSide,
		Size:          size,
		EntryPrice:    mp.MarketPrice,
		EstimatedProb: mp.EstimatedProb,
		Edge:          mp.Edge,
		EntryTime:     time.Now(),
	}
	m.state.OpenPositions[pos.ID] = pos
	m.state.DailyTrades++

	slog.Info("value bet opened",
		"position_id", pos.ID,
		"side", pos.Side,
		"size", size,
		"entry_price", pos.EntryPrice,
		"edge_pct", mp.EdgePct,
	)
	return &domain.ExecutionResult{
		PositionID: pos.ID,
		Size:       size,
		Edge:       mp.Edge,
		OrderID:    res.OrderID,
	}, nil
}

// ExecuteLimitOrder places a resting limit order slightly inside the current
// price of a high-quality market: 2% below when buying cheap tokens, 2% above
// when selling rich ones. Sub-share orders are rejected by the exchange, so
// they are skipped here.
func (m *Manager) ExecuteLimitOrder(ctx context.Context, opp domain.Opportunity, bankroll float64) (*domain.ExecutionResult, error) {
	if opp.Type != domain.OpportunityHighQuality || opp.Quality == nil {
		return nil, fmt.Errorf("trading.ExecuteLimitOrder: not a quality opportunity")
	}
	q := opp.Quality

	size := m.PositionSize(opp, bankroll)
	if size < minPositionUSDC {
		slog.Info("limit order skipped: size below floor",
			"condition_id", opp.MarketID, "size", size)
		return nil, nil
	}

	price := q.CurrentPrice
	if price <= 0 {
		price = 0.5
	}
	side := domain.SideSell
	limitPrice := price * 1.02
	if price < 0.5 {
		side = domain.SideBuy
		limitPrice = price * 0.98
	}

	shares := size / limitPrice
	if shares < 1 {
		slog.Info("limit order skipped: sub-share size",
			"condition_id", opp.MarketID, "shares", shares)
		return nil, nil
	}

	res, err := m.executor.PlaceLimitOrder(ctx, q.TokenID, limitPrice, shares, side)
	if err != nil {
		return nil, fmt.Errorf("trading.ExecuteLimitOrder: place order: %w", err)
	}
	if !res.Success {
		return nil, fmt.Errorf("trading.ExecuteLimitOrder: order rejected: %s", res.Status)
	}

	pos := domain.Position{
		ID:         domain.NewPositionID(domain.PositionLimitOrder, q.TokenID),
		Type:       domain.PositionLimitOrder,
		MarketID:   opp.MarketID,
		TokenID:    q.TokenID,
		Side:       side,
		Size:       size,
		Shares:     shares,
		LimitPrice: limitPrice,
		OrderID:    res.OrderID,
		EntryTime:  time.Now(),
	}
	m.state.OpenPositions[pos.ID] = pos
	m.state.DailyTrades++

	slog.Info("limit order placed",
		"position_id", pos.ID,
		"side", side,
		"limit_price", limitPrice,
		"shares", shares,
		"order_id", res.OrderID,
	)
	return &domain.ExecutionResult{
		PositionID: pos.ID,
		Size:       size,
		OrderID:    res.OrderID,
	}, nil
}

// Monitoring thresholds for value bets, as fractions of the entry price.
const (
	profitTargetPct = 0.50
	stopLossPct     = -0.20
)

// ManagePositions walks the open positions and flags value bets whose
// side-adjusted P&L has crossed the profit target or stop loss. Arbitrage
// positions resolve on-chain and limit orders rest on the book, so neither
// produces actions here. Flagging does not mutate state; closes happen in
// ClosePosition.
func (m *Manager) ManagePositions(ctx context.Context) []domain.PositionAction {
	var actions []domain.PositionAction

	for id, pos := range m.state.OpenPositions {
		switch pos.Type {
		case domain.PositionValueBet:
			current, err := m.prices.MidpointPrice(ctx, pos.TokenID)
			if err != nil || pos.EntryPrice <= 0 {
				slog.Debug("position check skipped: no midpoint",
					"position_id", id, "err", err)
				continue
			}

			pnlPct := (current - pos.EntryPrice) / pos.EntryPrice
			if pos.Side == domain.SideSell {
				pnlPct = -pnlPct
			}

			switch {
			case pnlPct >= profitTargetPct:
				actions = append(actions, domain.PositionAction{
					PositionID: id,
					Action:     "close",
					Reason:     domain.ExitProfitTarget,
					PnLPct:     pnlPct,
				})
			case pnlPct <= stopLossPct:
				actions = append(actions, domain.PositionAction{
					PositionID: id,
					Action:     "close",
					Reason:     domain.ExitStopLoss,
					PnLPct:     pnlPct,
				})
			}

		case domain.PositionArbitrage:
			// Resolution detection needs market settlement data.
			// TODO: close arbitrage positions when the market resolves.

		case domain.PositionLimitOrder:
			// Fill polling by order ID is not implemented yet.
			// TODO: reconcile resting orders against GetOpenOrders.
		}
	}
	return actions
}

// ClosePosition exits a value bet with a market order on the opposite side,
// realizes the P&L into the daily counter exactly once, and records the trade.
// Only value bets can be closed this way.
func (m *Manager) ClosePosition(ctx context.Context, positionID, reason string) (float64, error) {
	pos, ok := m.state.OpenPositions[positionID]
	if !ok {
		return 0, fmt.Errorf("trading.ClosePosition: unknown position %q", positionID)
	}
	if pos.Type != domain.PositionValueBet {
		return 0, fmt.Errorf("trading.ClosePosition: cannot close %s position %q", pos.Type, positionID)
	}

	closeSide := domain.SideSell
	if pos.Side == domain.SideSell {
		closeSide = domain.SideBuy
	}

	res, err := m.executor.PlaceMarketOrder(ctx, pos.TokenID, pos.Size, closeSide)
	if err != nil {
		return 0, fmt.Errorf("trading.ClosePosition: close order: %w", err)
	}
	if !res.Success {
		return 0, fmt.Errorf("trading.ClosePosition: close order rejected: %s", res.Status)
	}

	// Best-effort exit price. If the midpoint is gone right after our own
	// order, the position is still removed but with zero recorded P&L.
	pnl := 0.0
	if exit, err := m.prices.MidpointPrice(ctx, pos.TokenID); err == nil {
		if pos.Side == domain.SideBuy {
			pnl = (exit - pos.EntryPrice) * pos.Size
		} else {
			pnl = (pos.EntryPrice - exit) * pos.Size
		}
	} else {
		slog.Warn("close: exit midpoint unavailable, recording zero P&L",
			"position_id", positionID, "err", err)
	}

	m.state.DailyPnL += pnl
	delete(m.state.OpenPositions, positionID)

	if m.store != nil {
		rec := domain.TradeRecord{
			Strategy: pos.Type,
			MarketID: pos.MarketID,
			TokenID:  pos.TokenID,
			Side:     pos.Side,
			Size:     pos.Size,
			PnL:      pnl,
			Reason:   reason,
			ClosedAt: time.Now(),
		}
		if err := m.store.SaveTrade(ctx, rec); err != nil {
			slog.Warn("close: trade record not saved", "position_id", positionID, "err", err)
		}
	}

	slog.Info("position closed",
		"position_id", positionID,
		"reason", reason,
		"pnl", pnl,
		"daily_pnl", m.state.DailyPnL,
	)
	return pnl, nil
}
