package house

import "github.com/cloudx-io/auctionhouse/core"

// Event is a house notification. Topic returns the bus topic the event
// is published under.
type Event interface {
	Topic() string
}

// Bus topics, one per event type.
const (
	TopicAuctionCreated                   = "auction.created"
	TopicAuctionBid                       = "auction.bid"
	TopicAuctionExtended                  = "auction.extended"
	TopicAuctionSettled                   = "auction.settled"
	TopicTimeBufferUpdated                = "config.time_buffer_updated"
	TopicReservePriceUpdated              = "config.reserve_price_updated"
	TopicMinBidIncrementPercentageUpdated = "config.min_bid_increment_percentage_updated"
)

// AuctionCreated fires when a new auction opens.
type AuctionCreated struct {
	AssetID   string         `json:"asset_id"`
	StartTime core.Timestamp `json:"start_time"`
	EndTime   core.Timestamp `json:"end_time"`
}

func (AuctionCreated) Topic() string { return TopicAuctionCreated }

// AuctionBid fires for every accepted bid.
type AuctionBid struct {
	AssetID  string         `json:"asset_id"`
	Bidder   core.AccountID `json:"bidder"`
	Amount   core.Amount    `json:"amount"`
	Extended bool           `json:"extended"`
}

func (AuctionBid) Topic() string { return TopicAuctionBid }

// AuctionExtended fires when an accepted bid moved the close time.
type AuctionExtended struct {
	AssetID string         `json:"asset_id"`
	EndTime core.Timestamp `json:"end_time"`
}

func (AuctionExtended) Topic() string { return TopicAuctionExtended }

// AuctionSettled fires once per auction, at settlement. Winner is
// empty when the auction closed without bids.
type AuctionSettled struct {
	AssetID string         `json:"asset_id"`
	Winner  core.AccountID `json:"winner,omitempty"`
	Amount  core.Amount    `json:"amount"`
}

func (AuctionSettled) Topic() string { return TopicAuctionSettled }

// AuctionTimeBufferUpdated fires after SetTimeBuffer.
type AuctionTimeBufferUpdated struct {
	TimeBuffer uint64 `json:"time_buffer"`
}

func (AuctionTimeBufferUpdated) Topic() string { return TopicTimeBufferUpdated }

// AuctionReservePriceUpdated fires after SetReservePrice.
type AuctionReservePriceUpdated struct {
	ReservePrice core.Amount `json:"reserve_price"`
}

func (AuctionReservePriceUpdated) Topic() string { return TopicReservePriceUpdated }

// AuctionMinBidIncrementPercentageUpdated fires after
// SetMinBidIncrementPercentage.
type AuctionMinBidIncrementPercentageUpdated struct {
	MinBidIncrementPercentage uint64 `json:"min_bid_increment_percentage"`
}

func (AuctionMinBidIncrementPercentageUpdated) Topic() string {
	return TopicMinBidIncrementPercentageUpdated
}
