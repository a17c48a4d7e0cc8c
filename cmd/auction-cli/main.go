// auction-cli sends a single request to a running auction-housed and
// prints the response.
//
// Examples:
//
//	auction-cli -type create_auction -asset token-1
//	auction-cli -type place_bid -asset token-1 -bidder alice -amount 150
//	auction-cli -type settle_auction -asset token-1 -format json
//	auction-cli -vsock-cid 3 -type get_auction -asset token-1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/mdlayher/vsock"

	"github.com/cloudx-io/auctionhouse/houseapi"
)

func main() {
	var (
		addr         = flag.String("addr", "localhost:5000", "TCP address of auction-housed")
		vsockCID     = flag.Uint("vsock-cid", 0, "Dial over vsock to this context ID instead of TCP")
		vsockPort    = flag.Uint("vsock-port", 5000, "vsock port (with -vsock-cid)")
		reqType      = flag.String("type", "", "Request type: ping, create_auction, place_bid, settle_auction, settle_and_create, get_auction, set_config")
		assetID      = flag.String("asset", "", "Asset id")
		nextAssetID  = flag.String("next-asset", "", "Next asset id (settle_and_create)")
		bidder       = flag.String("bidder", "", "Bidder account (place_bid)")
		amount       = flag.Uint64("amount", 0, "Bid amount in base units (place_bid)")
		caller       = flag.String("caller", "", "Caller account (set_config)")
		field        = flag.String("field", "", "Config field (set_config): time_buffer, reserve_price, min_bid_increment_percentage")
		value        = flag.Uint64("value", 0, "Config value (set_config)")
		outputFormat = flag.String("format", "text", "Output format: text or json")
		timeout      = flag.Duration("timeout", 10*time.Second, "Request timeout")
	)

	flag.Parse()

	request, err := buildRequest(*reqType, *assetID, *nextAssetID, *bidder, *amount, *caller, *field, *value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	response, err := send(*addr, uint32(*vsockCID), uint32(*vsockPort), *timeout, request)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := printResponse(response, *outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if !response.Success && response.Type != "pong" {
		os.Exit(3)
	}
}

func buildRequest(reqType, assetID, nextAssetID, bidder string, amount uint64, caller, field string, value uint64) (any, error) {
	switch reqType {
	case houseapi.TypePing:
		return houseapi.BaseRequest{Type: reqType}, nil
	case houseapi.TypeCreateAuction:
		if assetID == "" {
			return nil, fmt.Errorf("-asset is required for %s", reqType)
		}
		return houseapi.CreateAuctionRequest{Type: reqType, AssetID: assetID}, nil
	case houseapi.TypePlaceBid:
		if assetID == "" || bidder == "" || amount == 0 {
			return nil, fmt.Errorf("-asset, -bidder and -amount are required for %s", reqType)
		}
		return houseapi.PlaceBidRequest{Type: reqType, AssetID: assetID, Bidder: bidder, Amount: amount}, nil
	case houseapi.TypeSettleAuction:
		if assetID == "" {
			return nil, fmt.Errorf("-asset is required for %s", reqType)
		}
		return houseapi.SettleAuctionRequest{Type: reqType, AssetID: assetID}, nil
	case houseapi.TypeSettleAndCreate:
		if assetID == "" || nextAssetID == "" {
			return nil, fmt.Errorf("-asset and -next-asset are required for %s", reqType)
		}
		return houseapi.SettleAndCreateRequest{Type: reqType, AssetID: assetID, NextAssetID: nextAssetID}, nil
	case houseapi.TypeGetAuction:
		if assetID == "" {
			return nil, fmt.Errorf("-asset is required for %s", reqType)
		}
		return houseapi.GetAuctionRequest{Type: reqType, AssetID: assetID}, nil
	case houseapi.TypeSetConfig:
		if caller == "" || field == "" {
			return nil, fmt.Errorf("-caller and -field are required for %s", reqType)
		}
		return houseapi.SetConfigRequest{Type: reqType, Caller: caller, Field: field, Value: value}, nil
	case "":
		return nil, fmt.Errorf("-type is required")
	default:
		return nil, fmt.Errorf("unknown request type: %s", reqType)
	}
}

func dial(addr string, vsockCID, vsockPort uint32) (net.Conn, error) {
	if vsockCID > 0 {
		return vsock.Dial(vsockCID, vsockPort, nil)
	}
	return net.Dial("tcp", addr)
}

// send writes one request, half-closes the write side so the server
// sees EOF, and decodes the single response.
func send(addr string, vsockCID, vsockPort uint32, timeout time.Duration, request any) (*houseapi.AuctionResponse, error) {
	conn, err := dial(addr, vsockCID, vsockPort)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(timeout))

	if err := json.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			return nil, fmt.Errorf("close write side: %w", err)
		}
	}

	var response houseapi.AuctionResponse
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func printResponse(response *houseapi.AuctionResponse, format string) error {
	if format == "json" {
		out, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if response.Success || response.Type == "pong" {
		fmt.Printf("OK (%s)\n", response.Type)
	} else {
		fmt.Printf("FAILED (%s): %s [%s]\n", response.Type, response.Message, response.Reason)
	}
	if response.Auction != nil {
		a := response.Auction
		fmt.Printf("  asset:    %s\n", a.AssetID)
		fmt.Printf("  amount:   %d (%s)\n", a.Amount, a.DisplayAmount)
		fmt.Printf("  window:   %d .. %d\n", a.StartTime, a.EndTime)
		fmt.Printf("  bidder:   %s\n", orNone(a.Bidder))
		fmt.Printf("  settled:  %t\n", a.Settled)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
