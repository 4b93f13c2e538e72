package notifier

import (
	"fmt"
	"strings"
	"time"

	"AlphaTrader/internal/model"
	"AlphaTrader/internal/scanner"
)

// FormatSignalAlert formats a per-ticker signal alert message.
func FormatSignalAlert(report *model.TickerReport) string {
	last := report.Latest()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", report.Ticker, last.Time.Format("2006-01-02")))

	switch report.Signal {
	case model.SignalBuy:
		b.WriteString("🔥 Signal: STRONG BUY (momentum breakout)\n")
	case model.SignalSell:
		b.WriteString("🛑 Signal: SELL/EXIT (trend broken)\n")
	case model.SignalHold:
		b.WriteString("👀 Signal: HOLD (waiting for setup)\n")
	}

	b.WriteString(fmt.Sprintf("\nPrice: $%.2f (%+.2f%%)\n", last.Close, report.ChangePct()))
	b.WriteString(fmt.Sprintf("Stop loss: $%.2f\n", report.StopLoss))
	b.WriteString(fmt.Sprintf("Risk/share: $%.2f\n", report.Risk()))
	b.WriteString(fmt.Sprintf("RVol: %.1fx\n", report.RelativeVolume()))

	return b.String()
}

// FormatSentimentReport formats the factor breakdown and total score.
func FormatSentimentReport(report *model.TickerReport) string {
	s := report.Sentiment

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🛠️ <b>%s sentiment</b>\n\n", report.Ticker))
	for _, f := range s.Factors {
		b.WriteString(fmt.Sprintf("  %s: %s (%+.1f) %s\n", f.Name, f.Verdict, f.Score, f.Commentary))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Total: %+.1f → %s\n", s.TotalScore, sentimentText(s.Label)))

	switch report.Source {
	case model.SourceSnapshot:
		b.WriteString("\nOptions data: last snapshot (market closed)\n")
	case "":
		b.WriteString("\nOptions data: N/A\n")
	}
	return b.String()
}

// FormatScanReport formats the universe scan buckets.
func FormatScanReport(res *scanner.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>Market scan</b> | %s\n", time.Now().Format("2006-01-02 15:04")))

	for _, sig := range []model.Signal{model.SignalBuy, model.SignalHold, model.SignalSell} {
		entries := res.Buckets[sig]
		b.WriteString(fmt.Sprintf("\n%s %s (%d):\n", signalIcon(sig), sig, len(entries)))
		for _, e := range entries {
			b.WriteString(fmt.Sprintf("  %s $%.2f (%+.2f%%)\n", e.Ticker, e.Price, e.ChangePct))
		}
	}

	if len(res.Failed) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ Skipped %d:\n", len(res.Failed)))
		for _, f := range res.Failed {
			b.WriteString(fmt.Sprintf("  %s: %v\n", f.Ticker, f.Err))
		}
	}
	return b.String()
}

func signalIcon(sig model.Signal) string {
	switch sig {
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	default:
		return "⚪"
	}
}

func sentimentText(label model.SentimentLabel) string {
	switch label {
	case model.SentimentStrongBull:
		return "strong bull"
	case model.SentimentLeanBull:
		return "lean bull"
	case model.SentimentLeanBear:
		return "lean bear"
	case model.SentimentStrongBear:
		return "strong bear"
	default:
		return "balanced"
	}
}
