package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"AlphaTrader/internal/model"
)

// FileStore keeps all snapshots in a single JSON file keyed by ticker.
// Every save is a whole-file read-modify-write under a mutex; the file
// has one writer (the capture task) so this is sufficient.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileStore creates a FileStore persisting to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Load returns the stored snapshot for ticker, if any.
func (s *FileStore) Load(ticker string) (*model.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps := s.readAll()
	snap, ok := snaps[ticker]
	return snap, ok
}

// Save overwrites the snapshot for ticker with a fresh record.
func (s *FileStore) Save(ticker string, price float64, pc *model.PutCallSentiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	snaps := s.readAll()
	snaps[ticker] = &model.Snapshot{
		Ticker:     ticker,
		Date:       now.Format(model.SnapshotDateFormat),
		Timestamp:  now,
		ClosePrice: price,
		PCData:     pc,
	}

	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// readAll parses the whole snapshot file. A missing file is an empty
// map; a corrupt file is logged and treated as empty rather than
// blocking the dashboard.
func (s *FileStore) readAll() map[string]*model.Snapshot {
	snaps := make(map[string]*model.Snapshot)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read snapshot file %s: %v", s.path, err)
		}
		return snaps
	}
	if err := json.Unmarshal(data, &snaps); err != nil {
		log.Printf("[WARN] corrupt snapshot file %s: %v", s.path, err)
		return make(map[string]*model.Snapshot)
	}
	return snaps
}
