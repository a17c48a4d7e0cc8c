// Package house implements the auction lifecycle controller: it
// sequences the pure decision logic in core with the keyed record
// store and the external transfer, access-control, and event
// collaborators owned by the host ledger.
package house

import (
	"time"

	"github.com/cloudx-io/auctionhouse/core"
)

// Clock is the house's time source. Implementations must be
// monotonically non-decreasing.
type Clock interface {
	Now() core.Timestamp
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() core.Timestamp {
	return core.Timestamp(time.Now().Unix())
}

// Store is the keyed persistence contract for auction records. Get
// returns (nil, nil) when no record exists for the asset. Records
// returned by Get are private copies; mutating them does not affect
// the store until Put.
type Store interface {
	Get(assetID string) (*core.AuctionRecord, error)
	Put(assetID string, rec *core.AuctionRecord) error
	Remove(assetID string) error
}

// AssetLister is an optional Store extension enumerating the asset ids
// with stored records. The settlement sweeper requires it.
type AssetLister interface {
	Assets() ([]string, error)
}

// AssetTransfer moves or destroys the auctioned asset. Custody is
// owned by the host ledger; the house only triggers it.
type AssetTransfer interface {
	Transfer(assetID string, to core.AccountID) error
	Burn(assetID string) error
}

// CurrencyTransfer pays auction proceeds. Execution is owned by the
// host ledger.
type CurrencyTransfer interface {
	Pay(to core.AccountID, amount core.Amount) error
}

// AccessControl answers authorization questions for administrative
// operations.
type AccessControl interface {
	IsOwner(caller core.AccountID) bool
	IsAuthorized(caller core.AccountID, action string) bool
}

// EventSink receives one-way notifications. Publish is fire-and-forget:
// no return value, no delivery acknowledgement back to the house.
type EventSink interface {
	Publish(event Event)
}
