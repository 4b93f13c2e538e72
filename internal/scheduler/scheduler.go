package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"AlphaTrader/internal/collector"
	"AlphaTrader/internal/model"
	"AlphaTrader/internal/notifier"
	"AlphaTrader/internal/recorder"
	"AlphaTrader/internal/scanner"
	"AlphaTrader/internal/snapshot"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks: the periodic re-evaluation of the
// ticker universe, the market-wide scan, and the end-of-session
// snapshot capture.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Scanner   *scanner.Scanner
	Snapshots snapshot.Store
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	tickers []string

	// last observed signal per ticker, so refresh only alerts on change
	lastSignals map[string]model.Signal
}

// NewScheduler creates a new Scheduler over the given ticker universe.
func NewScheduler(ctx context.Context, col *collector.Collector, scn *scanner.Scanner,
	snaps snapshot.Store, tn *notifier.TelegramNotifier, rec recorder.Recorder, tickers []string) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Scanner:     scn,
		Snapshots:   snaps,
		Notifier:    tn,
		Recorder:    rec,
		Ctx:         ctx,
		tickers:     tickers,
		lastSignals: make(map[string]model.Signal),
	}
}

// RegisterAll registers the refresh, scan, and capture tasks. The
// capture cron must fire inside the end-of-session window; the task
// itself only enforces the once-per-day rule.
func (s *Scheduler) RegisterAll(refreshCron, scanCron, captureCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(captureCron, s.captureTask); err != nil {
		return fmt.Errorf("register capture task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// refreshTask re-evaluates every ticker and alerts when its signal
// changed since the last pass. One bad ticker never stops the rest.
func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	for _, ticker := range s.tickers {
		report, err := s.Collector.Analyze(ticker)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", ticker, err)
			continue
		}
		s.record(report)

		if prev, ok := s.lastSignals[ticker]; !ok || prev != report.Signal {
			s.trySend(notifier.FormatSignalAlert(report))
		}
		s.lastSignals[ticker] = report.Signal
	}
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running market scan")
	res := s.Scanner.Scan(s.tickers, s.Collector.ATRMultiplier())

	if err := s.Recorder.RecordScan(&recorder.ScanRun{
		Universe: len(s.tickers),
		Buy:      len(res.Buckets[model.SignalBuy]),
		Hold:     len(res.Buckets[model.SignalHold]),
		Sell:     len(res.Buckets[model.SignalSell]),
		Failures: len(res.Failed),
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	s.trySend(notifier.FormatScanReport(res))
}

// captureTask persists each ticker's live put/call sentiment. The cron
// expression confines it to the close window; the stored date confines
// it to once per calendar day per ticker.
func (s *Scheduler) captureTask() {
	log.Println("[INFO] running snapshot capture")
	today := time.Now().Format(model.SnapshotDateFormat)

	for _, ticker := range s.tickers {
		if snap, ok := s.Snapshots.Load(ticker); ok && snap.Date == today {
			continue // already captured today
		}
		report, err := s.Collector.Analyze(ticker)
		if err != nil {
			log.Printf("[ERROR] capture %s: %v", ticker, err)
			continue
		}
		if report.Source != model.SourceLive || report.PutCall == nil {
			log.Printf("[WARN] capture %s: no live put/call data, keeping old snapshot", ticker)
			continue
		}
		if err := s.Snapshots.Save(ticker, report.Latest().Close, report.PutCall); err != nil {
			log.Printf("[ERROR] save snapshot %s: %v", ticker, err)
			continue
		}
		log.Printf("[INFO] snapshot captured: %s", ticker)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/scan":
		go s.scanTask()
		return "Scanning..."
	case "/signal":
		if len(fields) < 2 {
			return "Usage: /signal TICKER"
		}
		report, err := s.Collector.Analyze(strings.ToUpper(fields[1]))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		s.record(report)
		return notifier.FormatSignalAlert(report)
	case "/sentiment":
		if len(fields) < 2 {
			return "Usage: /sentiment TICKER"
		}
		report, err := s.Collector.Analyze(strings.ToUpper(fields[1]))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatSentimentReport(report)
	default:
		return "Commands:\n• /signal TICKER\n• /sentiment TICKER\n• /scan"
	}
}

func (s *Scheduler) record(report *model.TickerReport) {
	ev := &recorder.Evaluation{
		Ticker:     report.Ticker,
		Price:      report.Latest().Close,
		Signal:     string(report.Signal),
		StopLoss:   report.StopLoss,
		TotalScore: report.Sentiment.TotalScore,
		Label:      string(report.Sentiment.Label),
		PCSource:   report.Source,
	}
	if report.PutCall != nil {
		ev.PCRatio = report.PutCall.Ratio
	}
	if err := s.Recorder.RecordEvaluation(ev); err != nil {
		log.Printf("[ERROR] record evaluation %s: %v", report.Ticker, err)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
