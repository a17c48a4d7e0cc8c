package main

import (
	"log"

	"github.com/cloudx-io/auctionhouse/core"
	"github.com/cloudx-io/auctionhouse/house"
)

// staticAccessControl authorizes the configured owner plus a fixed
// admin list. Admins may perform any config action.
type staticAccessControl struct {
	owner  core.AccountID
	admins map[core.AccountID]struct{}
}

func newStaticAccessControl(owner core.AccountID, admins []string) *staticAccessControl {
	set := make(map[core.AccountID]struct{}, len(admins))
	for _, admin := range admins {
		set[admin] = struct{}{}
	}
	return &staticAccessControl{owner: owner, admins: set}
}

func (a *staticAccessControl) IsOwner(caller core.AccountID) bool {
	return caller == a.owner
}

func (a *staticAccessControl) IsAuthorized(caller core.AccountID, action string) bool {
	_, ok := a.admins[caller]
	return ok
}

// ledgerLog stands in for the host ledger's custody and payment rails:
// every transfer instruction is written to the process log, where the
// host picks it up. Real deployments replace this with ledger clients.
type ledgerLog struct{}

func (ledgerLog) Transfer(assetID string, to core.AccountID) error {
	log.Printf("INFO: Ledger instruction: transfer asset=%s to=%s", assetID, to)
	return nil
}

func (ledgerLog) Burn(assetID string) error {
	log.Printf("INFO: Ledger instruction: burn asset=%s", assetID)
	return nil
}

func (ledgerLog) Pay(to core.AccountID, amount core.Amount) error {
	log.Printf("INFO: Ledger instruction: pay to=%s amount=%s", to, core.FormatAmount(amount))
	return nil
}

var _ house.AssetTransfer = ledgerLog{}
var _ house.CurrencyTransfer = ledgerLog{}
