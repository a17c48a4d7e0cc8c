package main

import (
	"context"
	"log"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/cloudx-io/auctionhouse/core"
	"github.com/cloudx-io/auctionhouse/house"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("ERROR: Invalid configuration: %v", err)
	}

	sink := house.MultiSink{
		house.NewBusSink(EventBus.New()),
		house.LogSink{},
	}

	h, err := house.New(core.HouseConfig{
		Owner:                     cfg.Owner,
		TimeBuffer:                cfg.TimeBuffer,
		ReservePrice:              cfg.ReservePrice,
		MinBidIncrementPercentage: cfg.MinBidIncrementPercentage,
		Duration:                  cfg.Duration,
	}, house.Deps{
		Clock:    house.SystemClock{},
		Store:    house.NewMemStore(),
		Assets:   ledgerLog{},
		Currency: ledgerLog{},
		Access:   newStaticAccessControl(cfg.Owner, cfg.Admins),
		Events:   sink,
	})
	if err != nil {
		log.Fatalf("ERROR: Failed to initialize house: %v", err)
	}
	log.Printf("INFO: House initialized: owner=%s duration=%ds buffer=%ds reserve=%s increment=%d%%",
		cfg.Owner, cfg.Duration, cfg.TimeBuffer, core.FormatAmount(cfg.ReservePrice), cfg.MinBidIncrementPercentage)

	if cfg.SweepIntervalSec > 0 {
		h.StartSettlementSweeper(context.Background(), time.Duration(cfg.SweepIntervalSec)*time.Second)
		log.Printf("INFO: Settlement sweeper started (interval: %ds)", cfg.SweepIntervalSec)
	}

	server := NewAuctionServer(cfg, h)
	log.Fatal(server.Start())
}
