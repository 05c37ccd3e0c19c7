package position

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// Snapshot captures a trader's positions at a point in time.
type Snapshot struct {
	Timestamp int64   `json:"timestamp"`
	TraderID  uint64  `json:"traderId"`
	Positions []Entry `json:"positions"`
}

// Entry is a single stock position entry.
type Entry struct {
	Stock       string          `json:"stock"`
	BuyShares   int64           `json:"buyShares"`
	BuyAmount   decimal.Decimal `json:"buyAmount"`
	SellShares  int64           `json:"sellShares"`
	SellAmount  decimal.Decimal `json:"sellAmount"`
	NetShares   int64           `json:"netShares"`
	NetInvested decimal.Decimal `json:"netInvested"`
}

// Snapshot builds a snapshot of the reducer's positions.
func (r *Reducer) Snapshot(traderID uint64) Snapshot {
	positions := r.Positions()
	entries := make([]Entry, 0, len(positions))
	for _, p := range positions {
		entries = append(entries, Entry{
			Stock:       p.StockName,
			BuyShares:   p.Buy.Shares,
			BuyAmount:   p.Buy.Amount,
			SellShares:  p.Sell.Shares,
			SellAmount:  p.Sell.Amount,
			NetShares:   p.NetShares,
			NetInvested: p.NetInvested,
		})
	}
	return Snapshot{
		Timestamp: time.Now().UTC().UnixNano(),
		TraderID:  traderID,
		Positions: entries,
	}
}

// WriteSnapshot writes a snapshot to disk as JSON.
func WriteSnapshot(path string, snapshot Snapshot) error {
	data, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a snapshot from disk.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// CompareSnapshots checks if two snapshots hold the same positions.
func CompareSnapshots(expected, actual Snapshot) error {
	if len(expected.Positions) != len(actual.Positions) {
		return errors.Errorf("snapshot length mismatch: expected=%d actual=%d", len(expected.Positions), len(actual.Positions))
	}
	expectedMap := make(map[string]Entry, len(expected.Positions))
	for _, entry := range expected.Positions {
		expectedMap[entry.Stock] = entry
	}
	for _, entry := range actual.Positions {
		want, ok := expectedMap[entry.Stock]
		if !ok {
			return errors.Errorf("snapshot missing stock: %s", entry.Stock)
		}
		if want.NetShares != entry.NetShares || !want.NetInvested.Equal(entry.NetInvested) {
			return errors.Errorf("snapshot mismatch: stock=%s expected=%d/%s actual=%d/%s",
				entry.Stock, want.NetShares, want.NetInvested, entry.NetShares, entry.NetInvested)
		}
	}
	return nil
}
