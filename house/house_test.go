package house

import (
	"bytes"
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/auctionhouse/core"
)

func TestCreate_InitializesRecord(t *testing.T) {
	th := newTestHouse(t)
	th.clock.now = 1000

	rec, err := th.house.Create("asset-1")

	check.NoError(t, err)
	check.Equal(t, "asset-1", rec.AssetID)
	check.Equal(t, core.Amount(0), rec.Amount)
	check.Equal(t, core.Timestamp(1000), rec.StartTime)
	check.Equal(t, core.Timestamp(4600), rec.EndTime)
	check.Equal(t, "", rec.Bidder)
	check.False(t, rec.Settled)

	created := th.sink.byTopic(TopicAuctionCreated)
	check.Equal(t, 1, len(created))
	check.Equal(t, AuctionCreated{AssetID: "asset-1", StartTime: 1000, EndTime: 4600}, created[0].(AuctionCreated))
}

func TestCreate_FailsWhileActive(t *testing.T) {
	th := newTestHouse(t)

	_, err := th.house.Create("asset-1")
	check.NoError(t, err)

	_, err = th.house.Create("asset-1")
	check.True(t, errors.Is(err, core.ErrAlreadyActive))
}

func TestCreate_SupersedesSettled(t *testing.T) {
	th := newTestHouse(t)

	_, err := th.house.Create("asset-1")
	check.NoError(t, err)
	th.clock.now = 3600
	_, err = th.house.Settle("asset-1")
	check.NoError(t, err)

	rec, err := th.house.Create("asset-1")
	check.NoError(t, err)
	check.False(t, rec.Settled)
	check.Equal(t, core.Timestamp(3600), rec.StartTime)
}

func TestBid_AcceptedUpdatesRecordAndEvents(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100

	rec, err := th.house.Bid("asset-1", "alice", 150)

	check.NoError(t, err)
	check.Equal(t, core.Amount(150), rec.Amount)
	check.Equal(t, "alice", rec.Bidder)
	check.Equal(t, core.Timestamp(3600), rec.EndTime)

	bids := th.sink.byTopic(TopicAuctionBid)
	check.Equal(t, 1, len(bids))
	check.Equal(t, AuctionBid{AssetID: "asset-1", Bidder: "alice", Amount: 150, Extended: false}, bids[0].(AuctionBid))
	check.Equal(t, 0, len(th.sink.byTopic(TopicAuctionExtended)))
}

func TestBid_RejectedLeavesStoredBytesUntouched(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100
	_, _ = th.house.Bid("asset-1", "alice", 150)
	before := th.store.Raw("asset-1")

	_, err := th.house.Bid("asset-1", "bob", 151)

	check.True(t, errors.Is(err, core.ErrBelowMinIncrement))
	check.True(t, bytes.Equal(before, th.store.Raw("asset-1")))
}

func TestBid_AmountMonotonic(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100

	last := core.Amount(0)
	bidders := []core.AccountID{"alice", "bob", "carol"}
	amounts := []core.Amount{100, 120, 200}
	for i, amount := range amounts {
		rec, err := th.house.Bid("asset-1", bidders[i], amount)
		check.NoError(t, err)
		check.True(t, rec.Amount >= last)
		last = rec.Amount
	}
}

func TestSettle_BeforeCloseFails(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 3599

	_, err := th.house.Settle("asset-1")

	check.True(t, errors.Is(err, core.ErrStillInProgress))
	rec, getErr := th.house.GetAuction("asset-1")
	check.NoError(t, getErr)
	check.False(t, rec.Settled)
}

func TestSettle_NoBidderBurns(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 3600

	rec, err := th.house.Settle("asset-1")

	check.NoError(t, err)
	check.True(t, rec.Settled)
	check.Equal(t, core.Amount(0), rec.Amount)
	check.Equal(t, []string{"asset-1"}, th.assets.burns)
	check.Equal(t, 0, len(th.assets.transfers))
	check.Equal(t, 0, len(th.currency.payments))

	settled := th.sink.byTopic(TopicAuctionSettled)
	check.Equal(t, 1, len(settled))
	check.Equal(t, AuctionSettled{AssetID: "asset-1", Winner: "", Amount: 0}, settled[0].(AuctionSettled))
}

func TestSettle_WithWinnerTransfersAndPays(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100
	_, _ = th.house.Bid("asset-1", "alice", 150)
	th.clock.now = 3600

	rec, err := th.house.Settle("asset-1")

	check.NoError(t, err)
	check.True(t, rec.Settled)
	check.Equal(t, []assetTransfer{{AssetID: "asset-1", To: "alice"}}, th.assets.transfers)
	check.Equal(t, []payment{{To: "house-owner", Amount: 150}}, th.currency.payments)
}

func TestSettle_TwiceFails(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 3600
	_, _ = th.house.Settle("asset-1")

	_, err := th.house.Settle("asset-1")

	check.True(t, errors.Is(err, core.ErrAlreadySettled))
}

func TestSettle_Unknown(t *testing.T) {
	th := newTestHouse(t)

	_, err := th.house.Settle("nope")

	check.True(t, errors.Is(err, core.ErrNotFound))
}

func TestSettle_CommitsBeforeTransfer(t *testing.T) {
	// A transfer collaborator calling back into Settle must observe the
	// already-committed settled flag.
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100
	_, _ = th.house.Bid("asset-1", "alice", 150)
	th.clock.now = 3600

	var reentrantErr error
	th.assets.onCall = func() {
		_, reentrantErr = th.house.Settle("asset-1")
	}

	_, err := th.house.Settle("asset-1")

	check.NoError(t, err)
	check.True(t, errors.Is(reentrantErr, core.ErrAlreadySettled))
}

func TestSettle_TransferFailureKeepsSettledState(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 3600
	th.assets.failNext = errors.New("custody offline")

	_, err := th.house.Settle("asset-1")

	check.Error(t, err)
	rec, getErr := th.house.GetAuction("asset-1")
	check.NoError(t, getErr)
	check.True(t, rec.Settled)
}

func TestSettleAndCreate_FailurePropagates(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 100 // still in progress

	_, err := th.house.SettleAndCreate("asset-1", "asset-2")

	check.True(t, errors.Is(err, core.ErrStillInProgress))
	_, getErr := th.house.GetAuction("asset-2")
	check.True(t, errors.Is(getErr, core.ErrNotFound))
}

func TestSettleAndCreate_OpensNext(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 3600

	rec, err := th.house.SettleAndCreate("asset-1", "asset-2")

	check.NoError(t, err)
	check.Equal(t, "asset-2", rec.AssetID)
	check.False(t, rec.Settled)
}

func TestSettleExpired_SweepsOnlyClosed(t *testing.T) {
	th := newTestHouse(t)
	_, _ = th.house.Create("asset-1")
	th.clock.now = 1000
	_, _ = th.house.Create("asset-2")
	th.clock.now = 3600 // asset-1 closed, asset-2 still open

	n, err := th.house.SettleExpired()

	check.NoError(t, err)
	check.Equal(t, 1, n)
	rec1, _ := th.house.GetAuction("asset-1")
	rec2, _ := th.house.GetAuction("asset-2")
	check.True(t, rec1.Settled)
	check.False(t, rec2.Settled)
}

func TestHouse_EndToEndScenario(t *testing.T) {
	// duration=3600, buffer=300, reserve=100, increment=5%.
	th := newTestHouse(t)

	th.clock.now = 0
	rec, err := th.house.Create("asset-1")
	check.NoError(t, err)
	check.Equal(t, core.Timestamp(3600), rec.EndTime)

	// Bid at t=3500: accepted, 100s remain (<300) so close moves to 3800.
	th.clock.now = 3500
	rec, err = th.house.Bid("asset-1", "bidder-b", 150)
	check.NoError(t, err)
	check.Equal(t, core.Timestamp(3800), rec.EndTime)
	extended := th.sink.byTopic(TopicAuctionExtended)
	check.Equal(t, 1, len(extended))
	check.Equal(t, AuctionExtended{AssetID: "asset-1", EndTime: 3800}, extended[0].(AuctionExtended))

	// Bid at t=3900: past the extended close.
	th.clock.now = 3900
	_, err = th.house.Bid("asset-1", "bidder-c", 155)
	check.True(t, errors.Is(err, core.ErrExpired))

	// Past the extended close: settle hands the asset to bidder-b and
	// the 150 proceeds to the owner.
	rec, err = th.house.Settle("asset-1")
	check.NoError(t, err)
	check.True(t, rec.Settled)
	check.Equal(t, []assetTransfer{{AssetID: "asset-1", To: "bidder-b"}}, th.assets.transfers)
	check.Equal(t, []payment{{To: "house-owner", Amount: 150}}, th.currency.payments)
}

func TestHouse_StoreFailuresSurface(t *testing.T) {
	th := newTestHouse(t)
	fs := &failingStore{Store: th.store}
	h, err := New(th.house.Config(), Deps{
		Clock:    th.clock,
		Store:    fs,
		Assets:   th.assets,
		Currency: th.currency,
		Access:   staticAccess{owner: "house-owner", admin: "admin"},
		Events:   th.sink,
	})
	check.NoError(t, err)

	fs.failGet = true
	_, err = h.Create("asset-1")
	check.Error(t, err)

	fs.failGet = false
	fs.failPut = true
	_, err = h.Create("asset-1")
	check.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(core.HouseConfig{Owner: "", Duration: 10}, Deps{})
	check.Error(t, err)

	_, err = New(core.HouseConfig{Owner: "o", Duration: 0}, Deps{})
	check.Error(t, err)
}
