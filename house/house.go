package house

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cloudx-io/auctionhouse/core"
)

// Deps are the external collaborators a House is wired with.
type Deps struct {
	Clock    Clock
	Store    Store
	Assets   AssetTransfer
	Currency CurrencyTransfer
	Access   AccessControl
	Events   EventSink
}

// House is the auction lifecycle controller. All state transitions
// happen under an internal mutex; external side effects (transfers,
// events) run only after the transition is committed to the store, so
// a collaborator calling back in observes the committed state. In
// particular a reentrant settle sees the auction already settled and
// fails safely.
type House struct {
	mu   sync.Mutex
	cfg  core.HouseConfig
	deps Deps
}

// New wires a House. The config owner is fixed for the life of the
// house; the tunables may change later through the setters.
func New(cfg core.HouseConfig, deps Deps) (*House, error) {
	if cfg.Owner == "" {
		return nil, fmt.Errorf("house config: owner must be set")
	}
	if cfg.Duration == 0 {
		return nil, fmt.Errorf("house config: duration must be positive")
	}
	if deps.Clock == nil || deps.Store == nil || deps.Assets == nil ||
		deps.Currency == nil || deps.Access == nil || deps.Events == nil {
		return nil, fmt.Errorf("house deps: all collaborators must be set")
	}
	return &House{cfg: cfg, deps: deps}, nil
}

// Config returns a snapshot of the current house config.
func (h *House) Config() core.HouseConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// GetAuction returns a snapshot of the stored record for the asset, or
// ErrNotFound.
func (h *House) GetAuction(assetID string) (*core.AuctionRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, err := h.deps.Store.Get(assetID)
	if err != nil {
		return nil, fmt.Errorf("load auction %s: %w", assetID, err)
	}
	if rec == nil {
		return nil, core.ErrNotFound
	}
	return rec, nil
}

// Create opens a new auction for the asset: start=now, end=now+duration,
// no amount, no bidder. It fails with ErrAlreadyActive while an
// unsettled auction for the same asset exists; a settled record is
// superseded by the new one.
func (h *House) Create(assetID string) (*core.AuctionRecord, error) {
	h.mu.Lock()
	existing, err := h.deps.Store.Get(assetID)
	if err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("load auction %s: %w", assetID, err)
	}
	if existing != nil && !existing.Settled {
		h.mu.Unlock()
		return nil, fmt.Errorf("create auction %s: %w", assetID, core.ErrAlreadyActive)
	}

	now := h.deps.Clock.Now()
	rec := &core.AuctionRecord{
		AssetID:   assetID,
		Amount:    0,
		StartTime: now,
		EndTime:   now + h.cfg.Duration,
		Bidder:    "",
		Settled:   false,
	}
	if err := h.deps.Store.Put(assetID, rec); err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("store auction %s: %w", assetID, err)
	}
	h.mu.Unlock()

	log.Printf("INFO: Auction created: asset=%s start=%d end=%d", assetID, rec.StartTime, rec.EndTime)
	h.deps.Events.Publish(AuctionCreated{
		AssetID:   assetID,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
	})
	return rec, nil
}

// Bid submits a bid. Acceptance is decided entirely by
// core.EvaluateBid; on acceptance the updated record is committed and
// AuctionBid (plus AuctionExtended when the close moved) is published.
// A rejected bid leaves the stored record untouched.
func (h *House) Bid(assetID string, bidder core.AccountID, amount core.Amount) (*core.AuctionRecord, error) {
	h.mu.Lock()
	rec, err := h.deps.Store.Get(assetID)
	if err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("load auction %s: %w", assetID, err)
	}

	now := h.deps.Clock.Now()
	outcome, err := core.EvaluateBid(rec, h.cfg, now, bidder, amount)
	if err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("bid on auction %s: %w", assetID, err)
	}

	updated := *rec
	updated.Amount = outcome.Amount
	updated.Bidder = outcome.Bidder
	updated.EndTime = outcome.EndTime
	if err := h.deps.Store.Put(assetID, &updated); err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("store auction %s: %w", assetID, err)
	}
	h.mu.Unlock()

	log.Printf("INFO: Bid accepted: asset=%s bidder=%s amount=%s extended=%t",
		assetID, bidder, core.FormatAmount(amount), outcome.Extended)
	h.deps.Events.Publish(AuctionBid{
		AssetID:  assetID,
		Bidder:   bidder,
		Amount:   amount,
		Extended: outcome.Extended,
	})
	if outcome.Extended {
		h.deps.Events.Publish(AuctionExtended{
			AssetID: assetID,
			EndTime: outcome.EndTime,
		})
	}
	return &updated, nil
}

// Settle closes an expired auction. The settled flag is committed to
// the store before any transfer collaborator runs; only then is the
// asset handed over (or burned when no bid arrived) and the proceeds
// paid to the house owner.
func (h *House) Settle(assetID string) (*core.AuctionRecord, error) {
	h.mu.Lock()
	rec, err := h.deps.Store.Get(assetID)
	if err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("load auction %s: %w", assetID, err)
	}
	if rec == nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("settle auction %s: %w", assetID, core.ErrNotFound)
	}
	if rec.Settled {
		h.mu.Unlock()
		return nil, fmt.Errorf("settle auction %s: %w", assetID, core.ErrAlreadySettled)
	}
	if h.deps.Clock.Now() < rec.EndTime {
		h.mu.Unlock()
		return nil, fmt.Errorf("settle auction %s: %w", assetID, core.ErrStillInProgress)
	}

	settled := *rec
	settled.Settled = true
	if err := h.deps.Store.Put(assetID, &settled); err != nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("store auction %s: %w", assetID, err)
	}
	owner := h.cfg.Owner
	h.mu.Unlock()

	// State is committed; a reentrant settle now fails with
	// ErrAlreadySettled. Transfer failures surface to the caller but do
	// not roll the settlement back.
	if settled.HasBidder() {
		if err := h.deps.Assets.Transfer(assetID, settled.Bidder); err != nil {
			return nil, fmt.Errorf("transfer asset %s to %s: %w", assetID, settled.Bidder, err)
		}
	} else {
		if err := h.deps.Assets.Burn(assetID); err != nil {
			return nil, fmt.Errorf("burn asset %s: %w", assetID, err)
		}
	}
	if settled.Amount > 0 {
		if err := h.deps.Currency.Pay(owner, settled.Amount); err != nil {
			return nil, fmt.Errorf("pay proceeds of asset %s: %w", assetID, err)
		}
	}

	log.Printf("INFO: Auction settled: asset=%s winner=%s amount=%s",
		assetID, winnerLabel(settled.Bidder), core.FormatAmount(settled.Amount))
	h.deps.Events.Publish(AuctionSettled{
		AssetID: assetID,
		Winner:  settled.Bidder,
		Amount:  settled.Amount,
	})
	return &settled, nil
}

// SettleAndCreate settles the old asset's auction and, only when
// settlement succeeded, opens an auction for the next asset.
func (h *House) SettleAndCreate(oldAssetID, newAssetID string) (*core.AuctionRecord, error) {
	if _, err := h.Settle(oldAssetID); err != nil {
		return nil, err
	}
	return h.Create(newAssetID)
}

// SettleExpired settles every unsettled auction whose close time has
// passed, returning the number settled. The store must implement
// AssetLister.
func (h *House) SettleExpired() (int, error) {
	lister, ok := h.deps.Store.(AssetLister)
	if !ok {
		return 0, fmt.Errorf("settle expired: store does not enumerate assets")
	}
	assets, err := lister.Assets()
	if err != nil {
		return 0, fmt.Errorf("settle expired: %w", err)
	}

	settled := 0
	for _, assetID := range assets {
		rec, err := h.GetAuction(assetID)
		if err != nil || rec.Settled || h.deps.Clock.Now() < rec.EndTime {
			continue
		}
		if _, err := h.Settle(assetID); err != nil {
			log.Printf("WARNING: Sweeper failed to settle asset %s: %v", assetID, err)
			continue
		}
		settled++
	}
	return settled, nil
}

// StartSettlementSweeper runs SettleExpired on the given interval until
// the context is cancelled.
func (h *House) StartSettlementSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("INFO: Settlement sweeper stopped")
				return
			case <-ticker.C:
				n, err := h.SettleExpired()
				if err != nil {
					log.Printf("ERROR: Settlement sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("INFO: Settlement sweep settled %d auction(s)", n)
				}
			}
		}
	}()
}

func winnerLabel(bidder core.AccountID) string {
	if bidder == "" {
		return "none"
	}
	return bidder
}
