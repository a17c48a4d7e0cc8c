// Package houseapi defines the JSON wire protocol spoken by the
// auction-house daemon. Every connection carries one request object;
// the daemon sniffs the "type" field to pick the handler and answers
// with a single response object.
package houseapi

import "github.com/cloudx-io/auctionhouse/core"

// Request type discriminators.
const (
	TypePing            = "ping"
	TypeCreateAuction   = "create_auction"
	TypePlaceBid        = "place_bid"
	TypeSettleAuction   = "settle_auction"
	TypeSettleAndCreate = "settle_and_create"
	TypeGetAuction      = "get_auction"
	TypeSetConfig       = "set_config"
)

// BaseRequest is the fragment decoded first to discover the request type.
type BaseRequest struct {
	Type string `json:"type"`
}

// CreateAuctionRequest opens a new auction for an asset.
type CreateAuctionRequest struct {
	Type    string `json:"type"`
	AssetID string `json:"asset_id"`
}

// PlaceBidRequest submits a bid. Amount is in base currency units.
type PlaceBidRequest struct {
	Type    string         `json:"type"`
	AssetID string         `json:"asset_id"`
	Bidder  core.AccountID `json:"bidder"`
	Amount  core.Amount    `json:"amount"`
}

// SettleAuctionRequest settles an expired auction.
type SettleAuctionRequest struct {
	Type    string `json:"type"`
	AssetID string `json:"asset_id"`
}

// SettleAndCreateRequest settles one auction and opens the next.
type SettleAndCreateRequest struct {
	Type        string `json:"type"`
	AssetID     string `json:"asset_id"`
	NextAssetID string `json:"next_asset_id"`
}

// GetAuctionRequest fetches the current snapshot for an asset.
type GetAuctionRequest struct {
	Type    string `json:"type"`
	AssetID string `json:"asset_id"`
}

// Config fields settable over the wire.
const (
	ConfigTimeBuffer                = "time_buffer"
	ConfigReservePrice              = "reserve_price"
	ConfigMinBidIncrementPercentage = "min_bid_increment_percentage"
)

// SetConfigRequest updates a single house tunable on behalf of Caller.
type SetConfigRequest struct {
	Type   string         `json:"type"`
	Caller core.AccountID `json:"caller"`
	Field  string         `json:"field"`
	Value  uint64         `json:"value"`
}

// AuctionSnapshot is the wire view of a stored auction record.
// DisplayAmount carries the fixed-precision decimal rendering of
// Amount for human consumers.
type AuctionSnapshot struct {
	AssetID       string         `json:"asset_id"`
	Amount        core.Amount    `json:"amount"`
	DisplayAmount string         `json:"display_amount"`
	StartTime     core.Timestamp `json:"start_time"`
	EndTime       core.Timestamp `json:"end_time"`
	Bidder        core.AccountID `json:"bidder,omitempty"`
	Settled       bool           `json:"settled"`
}

// NewAuctionSnapshot builds the wire view of a record.
func NewAuctionSnapshot(rec *core.AuctionRecord) *AuctionSnapshot {
	if rec == nil {
		return nil
	}
	return &AuctionSnapshot{
		AssetID:       rec.AssetID,
		Amount:        rec.Amount,
		DisplayAmount: core.FormatAmount(rec.Amount),
		StartTime:     rec.StartTime,
		EndTime:       rec.EndTime,
		Bidder:        rec.Bidder,
		Settled:       rec.Settled,
	}
}

// AuctionResponse is the uniform response envelope. Reason is the
// stable error code when Success is false; Auction is the record
// snapshot after a successful mutation or lookup.
type AuctionResponse struct {
	Type           string           `json:"type"`
	Success        bool             `json:"success"`
	Message        string           `json:"message,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	Auction        *AuctionSnapshot `json:"auction,omitempty"`
	ProcessingTime int64            `json:"processing_time_ms"`
}

// PongResponse answers a ping.
type PongResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
