package snapshot

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"AlphaTrader/internal/model"
)

// BadgerStore is the embedded key-value backend for snapshots,
// interchangeable with FileStore behind the Store interface.
type BadgerStore struct {
	store *badgerhold.Store
	now   func() time.Time
}

// NewBadgerStore opens (or creates) a Badger database at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	log.Printf("[INFO] badger snapshot store opened: %s", dir)
	return &BadgerStore{store: store, now: time.Now}, nil
}

func (s *BadgerStore) Load(ticker string) (*model.Snapshot, bool) {
	var snap model.Snapshot
	if err := s.store.Get(ticker, &snap); err != nil {
		if err != badgerhold.ErrNotFound {
			log.Printf("[WARN] load snapshot %s: %v", ticker, err)
		}
		return nil, false
	}
	return &snap, true
}

func (s *BadgerStore) Save(ticker string, price float64, pc *model.PutCallSentiment) error {
	now := s.now()
	snap := model.Snapshot{
		Ticker:     ticker,
		Date:       now.Format(model.SnapshotDateFormat),
		Timestamp:  now,
		ClosePrice: price,
		PCData:     pc,
	}
	if err := s.store.Upsert(ticker, &snap); err != nil {
		return fmt.Errorf("save snapshot %s: %w", ticker, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.store.Close()
}
