package house

import (
	"fmt"
	"log"

	"github.com/cloudx-io/auctionhouse/core"
)

// Administrative actions checked against AccessControl.IsAuthorized.
const (
	ActionSetTimeBuffer                = "set_time_buffer"
	ActionSetReservePrice              = "set_reserve_price"
	ActionSetMinBidIncrementPercentage = "set_min_bid_increment_percentage"
)

func (h *House) authorize(caller core.AccountID, action string) error {
	if h.deps.Access.IsOwner(caller) || h.deps.Access.IsAuthorized(caller, action) {
		return nil
	}
	return fmt.Errorf("%s by %s: %w", action, caller, core.ErrNotAuthorized)
}

// SetTimeBuffer updates the anti-snipe time buffer. Owner or an
// account authorized for the action only.
func (h *House) SetTimeBuffer(caller core.AccountID, timeBuffer uint64) error {
	if err := h.authorize(caller, ActionSetTimeBuffer); err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg.TimeBuffer = timeBuffer
	h.mu.Unlock()

	log.Printf("INFO: Time buffer updated to %d by %s", timeBuffer, caller)
	h.deps.Events.Publish(AuctionTimeBufferUpdated{TimeBuffer: timeBuffer})
	return nil
}

// SetReservePrice updates the minimum acceptable winning amount.
func (h *House) SetReservePrice(caller core.AccountID, reservePrice core.Amount) error {
	if err := h.authorize(caller, ActionSetReservePrice); err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg.ReservePrice = reservePrice
	h.mu.Unlock()

	log.Printf("INFO: Reserve price updated to %s by %s", core.FormatAmount(reservePrice), caller)
	h.deps.Events.Publish(AuctionReservePriceUpdated{ReservePrice: reservePrice})
	return nil
}

// SetMinBidIncrementPercentage updates the minimum percentage a new
// bid must exceed the current amount by.
func (h *House) SetMinBidIncrementPercentage(caller core.AccountID, percentage uint64) error {
	if err := h.authorize(caller, ActionSetMinBidIncrementPercentage); err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg.MinBidIncrementPercentage = percentage
	h.mu.Unlock()

	log.Printf("INFO: Min bid increment percentage updated to %d by %s", percentage, caller)
	h.deps.Events.Publish(AuctionMinBidIncrementPercentageUpdated{MinBidIncrementPercentage: percentage})
	return nil
}
