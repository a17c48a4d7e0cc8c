package house

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/cloudx-io/auctionhouse/core"
)

// MemStore is an in-memory Store keeping records as CBOR bytes. Every
// Get decodes a fresh copy, so callers can never reach the stored
// bytes through a returned record, and a rejected operation provably
// leaves the stored encoding untouched.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

func (s *MemStore) Get(assetID string) (*core.AuctionRecord, error) {
	s.mu.RLock()
	raw, ok := s.records[assetID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var rec core.AuctionRecord
	if err := cbor.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", assetID, err)
	}
	return &rec, nil
}

func (s *MemStore) Put(assetID string, rec *core.AuctionRecord) error {
	raw, err := cbor.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", assetID, err)
	}
	s.mu.Lock()
	s.records[assetID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Remove(assetID string) error {
	s.mu.Lock()
	delete(s.records, assetID)
	s.mu.Unlock()
	return nil
}

// Assets returns the stored asset ids in sorted order, implementing
// AssetLister for the settlement sweeper.
func (s *MemStore) Assets() ([]string, error) {
	s.mu.RLock()
	assets := make([]string, 0, len(s.records))
	for assetID := range s.records {
		assets = append(assets, assetID)
	}
	s.mu.RUnlock()
	sort.Strings(assets)
	return assets, nil
}

// Raw returns the stored CBOR encoding for the asset, or nil. Intended
// for byte-level audits of the no-partial-write guarantee.
func (s *MemStore) Raw(assetID string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.records[assetID]
	if !ok {
		return nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}
