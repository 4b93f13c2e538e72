package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"AlphaTrader/internal/collector"
	"AlphaTrader/internal/config"
	"AlphaTrader/internal/notifier"
	"AlphaTrader/internal/options"
	"AlphaTrader/internal/recorder"
	"AlphaTrader/internal/scanner"
	"AlphaTrader/internal/scheduler"
	"AlphaTrader/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AlphaTrader starting...")

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Snapshot store: badger when configured, JSON file otherwise
	var snaps snapshot.Store
	if cfg.Snapshot.Backend == "badger" {
		bs, err := snapshot.NewBadgerStore(cfg.Snapshot.Path)
		if err != nil {
			log.Printf("[WARN] open badger snapshot store failed, using file store: %v", err)
			snaps = snapshot.NewFileStore(cfg.Snapshot.Path + ".json")
		} else {
			snaps = bs
		}
	} else {
		snaps = snapshot.NewFileStore(cfg.Snapshot.Path)
	}
	defer snaps.Close()

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	barCache := collector.NewCache(time.Duration(cfg.Cache.BarsTTLSeconds)*time.Second, 256)
	optionCache := collector.NewCache(time.Duration(cfg.Cache.OptionsTTLSeconds)*time.Second, 256)

	col := collector.New(fetcher, options.NewCalculator(fetcher), snaps,
		barCache, optionCache, cfg.Market.ATRMultiplier, cfg.Market.HistoryDays)
	scn := scanner.New(fetcher, cfg.Market.HistoryDays)

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, scn, snaps, tn, rec, cfg.Market.Tickers)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ScanCron, cfg.Schedule.CaptureCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] AlphaTrader is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AlphaTrader stopped")
}
