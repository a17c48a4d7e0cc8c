package core

// Timestamp is a point in time in seconds since the Unix epoch.
type Timestamp = uint64

// Amount is a quantity of currency in its smallest indivisible unit.
type Amount = uint64

// AccountID identifies a bidder, seller, or administrator. The empty
// string means "no account" (e.g. an auction with no bids yet).
type AccountID = string

// AuctionRecord is the stored state of a single auction. One record
// exists per asset id; at most one of them is unsettled at any time.
type AuctionRecord struct {
	// AssetID is the opaque identifier of the item under auction.
	AssetID string `json:"asset_id"`

	// Amount is the current highest bid. Zero until the first accepted
	// bid, then monotonically non-decreasing.
	Amount Amount `json:"amount"`

	// StartTime and EndTime bound the bidding window; EndTime > StartTime.
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`

	// Bidder is the current highest bidder, empty until the first
	// accepted bid. Amount > 0 implies Bidder is non-empty.
	Bidder AccountID `json:"bidder,omitempty"`

	// Settled becomes true exactly once, at settlement, and never
	// reverts. A settled record accepts no further bids.
	Settled bool `json:"settled"`
}

// HasBidder reports whether the auction has received at least one
// accepted bid.
func (a *AuctionRecord) HasBidder() bool {
	return a.Bidder != ""
}

// HouseConfig holds the house-wide tunables. Owner is fixed at
// construction; the remaining fields change only through the audited
// setters on House.
type HouseConfig struct {
	// Owner is the administrative identity of the house and the
	// recipient of auction proceeds. The owner may not bid.
	Owner AccountID `json:"owner"`

	// TimeBuffer is the minimum time that must remain after an accepted
	// bid before the auction may close.
	TimeBuffer uint64 `json:"time_buffer"`

	// ReservePrice is the minimum acceptable winning amount.
	ReservePrice Amount `json:"reserve_price"`

	// MinBidIncrementPercentage is the minimum percentage a new bid
	// must exceed the current amount by.
	MinBidIncrementPercentage uint64 `json:"min_bid_increment_percentage"`

	// Duration is the length of a newly created auction.
	Duration uint64 `json:"duration"`
}

// BidOutcome is the accepted result of evaluating a bid: the field
// values the auction record takes on once the bid is committed.
type BidOutcome struct {
	Amount  Amount    `json:"amount"`
	Bidder  AccountID `json:"bidder"`
	EndTime Timestamp `json:"end_time"`

	// Extended reports whether the close time moved to deter sniping.
	Extended bool `json:"extended"`
}
