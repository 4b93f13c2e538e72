package snapshot

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"AlphaTrader/internal/model"
)

func testPC() *model.PutCallSentiment {
	return &model.PutCallSentiment{
		Ratio:      0.62,
		CallVolume: 1800,
		PutVolume:  1116,
		Samples: []model.ExpirationSample{
			{
				Expiration: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
				CallVolume: 1800,
				PutVolume:  1116,
			},
		},
	}
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewFileStore(path)
	fixed := time.Date(2025, 6, 2, 21, 5, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.Save("TSLA", 250.0, testPC()); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, ok := store.Load("TSLA")
	if !ok {
		t.Fatal("expected snapshot after save")
	}
	if snap.Ticker != "TSLA" || snap.ClosePrice != 250.0 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Date != "2025-06-02" {
		t.Errorf("expected date 2025-06-02, got %s", snap.Date)
	}
	if !reflect.DeepEqual(snap.PCData, testPC()) {
		t.Errorf("put/call data did not survive the round trip: %+v", snap.PCData)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "snapshots.json"))
	if _, ok := store.Load("TSLA"); ok {
		t.Error("expected no snapshot from a missing file")
	}
}

func TestFileStore_LoadUnknownTicker(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "snapshots.json"))
	if err := store.Save("TSLA", 250.0, testPC()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.Load("NVDA"); ok {
		t.Error("expected no snapshot for an unsaved ticker")
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if _, ok := store.Load("TSLA"); ok {
		t.Error("expected no snapshot from a corrupt file")
	}

	// a corrupt file must not block new saves
	if err := store.Save("TSLA", 250.0, testPC()); err != nil {
		t.Fatalf("save over corrupt file: %v", err)
	}
	if _, ok := store.Load("TSLA"); !ok {
		t.Error("expected snapshot after save over corrupt file")
	}
}

func TestFileStore_OverwriteKeepsOtherTickers(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "snapshots.json"))
	if err := store.Save("TSLA", 250.0, testPC()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("NVDA", 120.0, testPC()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("TSLA", 260.0, testPC()); err != nil {
		t.Fatal(err)
	}

	snap, ok := store.Load("TSLA")
	if !ok || snap.ClosePrice != 260.0 {
		t.Errorf("expected overwritten close 260.0, got %+v", snap)
	}
	if _, ok := store.Load("NVDA"); !ok {
		t.Error("overwrite must not drop other tickers")
	}
}
