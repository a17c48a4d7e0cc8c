package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestReasonCode(t *testing.T) {
	check.Equal(t, "", ReasonCode(nil))
	check.Equal(t, "expired", ReasonCode(ErrExpired))
	check.Equal(t, "below_reserve", ReasonCode(fmt.Errorf("bid on auction x: %w", ErrBelowReserve)))
	check.Equal(t, "internal", ReasonCode(errors.New("disk on fire")))
}

func TestReasonCode_CoversTaxonomy(t *testing.T) {
	kinds := []error{
		ErrNotFound, ErrAlreadyActive, ErrNotYetStarted, ErrExpired,
		ErrBelowReserve, ErrBelowMinIncrement, ErrOwnerCannotBid,
		ErrAlreadyTopBidder, ErrNotAuthorized, ErrAlreadySettled,
		ErrStillInProgress, ErrArithmeticOverflow,
	}
	seen := make(map[string]bool)
	for _, kind := range kinds {
		code := ReasonCode(kind)
		check.NotEqual(t, "internal", code)
		check.False(t, seen[code])
		seen[code] = true
	}
}
