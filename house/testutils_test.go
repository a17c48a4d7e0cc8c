package house

import (
	"fmt"
	"testing"

	"github.com/cloudx-io/auctionhouse/core"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now core.Timestamp
}

func (c *fakeClock) Now() core.Timestamp { return c.now }

// recordingAssets records transfer and burn instructions and can be
// rigged to fail or to call back into the house (reentrancy tests).
type recordingAssets struct {
	transfers []assetTransfer
	burns     []string
	failNext  error
	onCall    func()
}

type assetTransfer struct {
	AssetID string
	To      core.AccountID
}

func (a *recordingAssets) Transfer(assetID string, to core.AccountID) error {
	if a.onCall != nil {
		a.onCall()
	}
	if a.failNext != nil {
		err := a.failNext
		a.failNext = nil
		return err
	}
	a.transfers = append(a.transfers, assetTransfer{AssetID: assetID, To: to})
	return nil
}

func (a *recordingAssets) Burn(assetID string) error {
	if a.onCall != nil {
		a.onCall()
	}
	if a.failNext != nil {
		err := a.failNext
		a.failNext = nil
		return err
	}
	a.burns = append(a.burns, assetID)
	return nil
}

// recordingCurrency records payment instructions.
type recordingCurrency struct {
	payments []payment
}

type payment struct {
	To     core.AccountID
	Amount core.Amount
}

func (c *recordingCurrency) Pay(to core.AccountID, amount core.Amount) error {
	c.payments = append(c.payments, payment{To: to, Amount: amount})
	return nil
}

// staticAccess authorizes one owner and one admin account.
type staticAccess struct {
	owner core.AccountID
	admin core.AccountID
}

func (a staticAccess) IsOwner(caller core.AccountID) bool { return caller == a.owner }

func (a staticAccess) IsAuthorized(caller core.AccountID, action string) bool {
	return caller == a.admin
}

// recordingSink captures published events in order.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Publish(event Event) {
	s.events = append(s.events, event)
}

func (s *recordingSink) byTopic(topic string) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Topic() == topic {
			out = append(out, e)
		}
	}
	return out
}

// testHouse bundles a house wired entirely with fakes.
type testHouse struct {
	house    *House
	clock    *fakeClock
	store    *MemStore
	assets   *recordingAssets
	currency *recordingCurrency
	sink     *recordingSink
}

func newTestHouse(t *testing.T) *testHouse {
	t.Helper()
	th := &testHouse{
		clock:    &fakeClock{},
		store:    NewMemStore(),
		assets:   &recordingAssets{},
		currency: &recordingCurrency{},
		sink:     &recordingSink{},
	}

	h, err := New(core.HouseConfig{
		Owner:                     "house-owner",
		TimeBuffer:                300,
		ReservePrice:              100,
		MinBidIncrementPercentage: 5,
		Duration:                  3600,
	}, Deps{
		Clock:    th.clock,
		Store:    th.store,
		Assets:   th.assets,
		Currency: th.currency,
		Access:   staticAccess{owner: "house-owner", admin: "admin"},
		Events:   th.sink,
	})
	if err != nil {
		t.Fatalf("failed to wire test house: %v", err)
	}
	th.house = h
	return th
}

// failingStore wraps a Store to fail selected operations.
type failingStore struct {
	Store
	failGet bool
	failPut bool
}

func (s *failingStore) Get(assetID string) (*core.AuctionRecord, error) {
	if s.failGet {
		return nil, fmt.Errorf("store unavailable")
	}
	return s.Store.Get(assetID)
}

func (s *failingStore) Put(assetID string, rec *core.AuctionRecord) error {
	if s.failPut {
		return fmt.Errorf("store unavailable")
	}
	return s.Store.Put(assetID, rec)
}
