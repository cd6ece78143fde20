package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/polytrader/internal/domain"
)

// Console implements ports.Notifier on stdout.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyOpportunities prints the ranked opportunity list.
func (c *Console) NotifyOpportunities(_ context.Context, opportunities []domain.Opportunity) error {
	now := time.Now().Format("15:04:05")
	if len(opportunities) == 0 {
		fmt.Fprintf(c.out, "[%s] no opportunities found\n", now)
		return nil
	}

	if !c.table {
		c.printCompact(now, opportunities)
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] %d opportunities\n", now, len(opportunities))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Type", "Market", "Prio", "EV", "Detail")

	for i, opp := range opportunities {
		table.Append(
			fmt.Sprintf("%d", i+1),
			string(opp.Type),
			domain.TruncateQuestion(opp.Question, opp.MarketID, 40),
			fmt.Sprintf("%d", opp.Priority),
			fmt.Sprintf("%.2f", opp.ExpectedValue),
			opportunityDetail(opp),
		)
	}
	table.Render()
	return nil
}

// printCompact prints the essentials on one line.
func (c *Console) printCompact(now string, opps []domain.Opportunity) {
	arb, quality, mispriced := 0, 0, 0
	for _, o := range opps {
		switch o.Type {
		case domain.OpportunityArbitrage:
			arb++
		case domain.OpportunityHighQuality:
			quality++
		case domain.OpportunityMispriced:
			mispriced++
		}
	}
	fmt.Fprintf(c.out, "[%s] %d opps → arb:%d quality:%d mispriced:%d\n",
		now, len(opps), arb, quality, mispriced)
}

// opportunityDetail formats the variant-specific columns.
func opportunityDetail(opp domain.Opportunity) string {
	switch {
	case opp.Arbitrage != nil:
		return fmt.Sprintf("yes %.3f + no %.3f = %.3f (%.2f%%)",
			opp.Arbitrage.YesPrice, opp.Arbitrage.NoPrice,
			opp.Arbitrage.CombinedCost, opp.Arbitrage.ProfitPct)
	case opp.Mispricing != nil:
		return fmt.Sprintf("%s mid %.3f est %.3f edge %.1f%%",
			opp.Mispricing.RecommendedSide, opp.Mispricing.MarketPrice,
			opp.Mispricing.EstimatedProb, opp.Mispricing.EdgePct)
	case opp.Quality != nil:
		return fmt.Sprintf("score %d vol $%.0f spread %.3f",
			opp.Quality.Score, opp.Quality.Volume, opp.Quality.Spread)
	}
	return "-"
}

// NotifySummary prints the portfolio summary block.
func (c *Console) NotifySummary(_ context.Context, s domain.PortfolioSummary) error {
	fmt.Fprintf(c.out, "\n=== PORTFOLIO ===\n")
	fmt.Fprintf(c.out, "  Balance:        $%.2f\n", s.CurrentBalance)
	fmt.Fprintf(c.out, "  Open positions: %d  (exposure $%.2f)\n", s.OpenPositions, s.TotalExposure)
	fmt.Fprintf(c.out, "  Daily P&L:      $%.2f (%.2f%%)  trades: %d\n",
		s.DailyPnL, s.DailyReturnPct, s.DailyTrades)
	fmt.Fprintf(c.out, "  Loss buffer:    $%.2f of $%.2f\n", s.RemainingLossBuffer, s.MaxDailyLoss)
	if s.TargetReached {
		fmt.Fprintf(c.out, "  Daily target reached — new entries paused\n")
	}
	fmt.Fprintln(c.out)
	return nil
}

// PrintPerformance prints the realized-trade report: per-day table plus the
// aggregate summary.
func (c *Console) PrintPerformance(summary domain.PerformanceSummary, dailies []domain.DailyStats) {
	if summary.TotalTrades == 0 {
		fmt.Fprintf(c.out, "\n  No closed trades in the last %d days.\n\n", summary.PeriodDays)
		return
	}

	if len(dailies) > 0 {
		tbl := tablewriter.NewWriter(c.out)
		tbl.Header("Date", "Balance", "PnL", "Return", "Trades", "Open", "Exposure")
		for _, d := range dailies {
			tbl.Append(
				d.Date,
				fmt.Sprintf("$%.2f", d.Balance),
				fmt.Sprintf("$%.2f", d.DailyPnL),
				fmt.Sprintf("%.2f%%", d.DailyReturnPct),
				fmt.Sprintf("%d", d.Trades),
				fmt.Sprintf("%d", d.OpenPositions),
				fmt.Sprintf("$%.2f", d.TotalExposure),
			)
		}
		tbl.Render()
	}

	fmt.Fprintf(c.out, "\n=== PERFORMANCE (%d days) ===\n", summary.PeriodDays)
	fmt.Fprintf(c.out, "  Trades:        %d  (W:%d L:%d, win rate %.1f%%)\n",
		summary.TotalTrades, summary.WinningTrades, summary.LosingTrades, summary.WinRate*100)
	fmt.Fprintf(c.out, "  Total P&L:     $%.2f\n", summary.TotalPnL)
	fmt.Fprintf(c.out, "  Avg win/loss:  $%.2f / $%.2f\n", summary.AvgWin, summary.AvgLoss)

	pfLabel := fmt.Sprintf("%.2f", summary.ProfitFactor)
	if math.IsInf(summary.ProfitFactor, 1) {
		pfLabel = "INF"
	}
	fmt.Fprintf(c.out, "  Profit factor: %s\n", pfLabel)
	fmt.Fprintf(c.out, "  Best/worst:    $%.2f / $%.2f\n", summary.BestTrade, summary.WorstTrade)

	for strategy, st := range summary.ByStrategy {
		fmt.Fprintf(c.out, "  %-12s %d trades, $%.2f\n", string(strategy)+":", st.Count, st.PnL)
	}
	fmt.Fprintln(c.out)
}
