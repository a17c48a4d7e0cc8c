package core

import "errors"

// Rejection and failure kinds returned by the auction engine. Callers
// classify with errors.Is; the wire layer maps them to reason codes.
var (
	// ErrNotFound: no auction exists for the asset id.
	ErrNotFound = errors.New("no auction found for asset")

	// ErrAlreadyActive: create was called while an unsettled auction
	// for the same asset is still open.
	ErrAlreadyActive = errors.New("auction already active for asset")

	// ErrNotYetStarted / ErrExpired: the bid landed outside the open
	// bidding window.
	ErrNotYetStarted = errors.New("auction has not started")
	ErrExpired       = errors.New("auction expired")

	// ErrBelowReserve: the bid does not meet the reserve price.
	ErrBelowReserve = errors.New("bid below reserve price")

	// ErrBelowMinIncrement: the bid does not exceed the current amount
	// by the minimum increment percentage.
	ErrBelowMinIncrement = errors.New("bid below minimum increment")

	// ErrOwnerCannotBid: the house owner may not bid on its own asset.
	ErrOwnerCannotBid = errors.New("owner cannot bid")

	// ErrAlreadyTopBidder: the bidder already holds the top bid.
	ErrAlreadyTopBidder = errors.New("bidder already holds top bid")

	// ErrNotAuthorized: the caller may not perform the operation.
	ErrNotAuthorized = errors.New("caller not authorized")

	// ErrAlreadySettled / ErrStillInProgress: settlement called twice,
	// or before the auction closed.
	ErrAlreadySettled  = errors.New("auction already settled")
	ErrStillInProgress = errors.New("auction still in progress")

	// ErrArithmeticOverflow: a checked amount computation overflowed.
	ErrArithmeticOverflow = errors.New("amount arithmetic overflow")
)

// reasonCodes maps engine errors to stable snake_case codes for wire
// responses and event payloads.
var reasonCodes = map[error]string{
	ErrNotFound:           "not_found",
	ErrAlreadyActive:      "already_active",
	ErrNotYetStarted:      "not_yet_started",
	ErrExpired:            "expired",
	ErrBelowReserve:       "below_reserve",
	ErrBelowMinIncrement:  "below_min_increment",
	ErrOwnerCannotBid:     "owner_cannot_bid",
	ErrAlreadyTopBidder:   "already_top_bidder",
	ErrNotAuthorized:      "not_authorized",
	ErrAlreadySettled:     "already_settled",
	ErrStillInProgress:    "still_in_progress",
	ErrArithmeticOverflow: "arithmetic_overflow",
}

// ReasonCode returns the stable code for an engine error, or "internal"
// for anything outside the taxonomy. A nil error has no reason code and
// returns the empty string.
func ReasonCode(err error) string {
	if err == nil {
		return ""
	}
	for kind, code := range reasonCodes {
		if errors.Is(err, kind) {
			return code
		}
	}
	return "internal"
}
