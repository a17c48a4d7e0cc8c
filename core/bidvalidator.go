package core

import "math"

// EvaluateBid decides whether a proposed bid is accepted against the
// current auction record and house config. It is a pure function: the
// record is never mutated, and the returned outcome holds the field
// values the record takes on if the caller commits the bid.
//
// Checks run in a fixed order and the first failure wins:
//
//  1. an auction record exists
//  2. the auction has not been settled
//  3. the bidding window is open (start <= now < end)
//  4. the bid meets the reserve price
//  5. the bid meets the minimum increment over the current amount
//  6. the bidder is not the house owner
//  7. the bidder does not already hold the top bid
//
// All amount arithmetic is overflow-checked; overflow is reported as
// ErrArithmeticOverflow, never wrapped around.
func EvaluateBid(rec *AuctionRecord, cfg HouseConfig, now Timestamp, bidder AccountID, amount Amount) (BidOutcome, error) {
	if rec == nil {
		return BidOutcome{}, ErrNotFound
	}
	if rec.Settled {
		return BidOutcome{}, ErrAlreadySettled
	}
	if now < rec.StartTime {
		return BidOutcome{}, ErrNotYetStarted
	}
	if now >= rec.EndTime {
		return BidOutcome{}, ErrExpired
	}
	if amount < cfg.ReservePrice {
		return BidOutcome{}, ErrBelowReserve
	}

	// The first bid only has to clear the reserve; the increment rule
	// applies once there is a standing amount to increment over.
	if rec.Amount > 0 {
		floor, err := MinNextBid(rec.Amount, cfg.MinBidIncrementPercentage)
		if err != nil {
			return BidOutcome{}, err
		}
		if amount < floor {
			return BidOutcome{}, ErrBelowMinIncrement
		}
	}

	if bidder == cfg.Owner {
		return BidOutcome{}, ErrOwnerCannotBid
	}
	if rec.HasBidder() && bidder == rec.Bidder {
		return BidOutcome{}, ErrAlreadyTopBidder
	}

	outcome := BidOutcome{
		Amount:  amount,
		Bidder:  bidder,
		EndTime: rec.EndTime,
	}

	// Anti-snipe extension: a bid landing within the time buffer of the
	// close pushes the close out to now + buffer.
	if rec.EndTime-now < cfg.TimeBuffer {
		newEnd, err := checkedAdd(now, cfg.TimeBuffer)
		if err != nil {
			return BidOutcome{}, err
		}
		outcome.EndTime = newEnd
		outcome.Extended = true
	}

	return outcome, nil
}

// MinNextBid returns the smallest acceptable bid over the current
// amount: current + current*percentage/100, with truncating integer
// division.
func MinNextBid(current Amount, percentage uint64) (Amount, error) {
	step, err := checkedMul(current, percentage)
	if err != nil {
		return 0, err
	}
	return checkedAdd(current, step/100)
}

func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrArithmeticOverflow
	}
	return a * b, nil
}
