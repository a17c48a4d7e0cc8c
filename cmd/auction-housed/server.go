package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/mdlayher/vsock"

	"github.com/cloudx-io/auctionhouse/core"
	"github.com/cloudx-io/auctionhouse/house"
	"github.com/cloudx-io/auctionhouse/houseapi"
)

const readTimeout = 30 * time.Second

// AuctionServer serves the houseapi protocol: one JSON request per
// connection, one JSON response back.
type AuctionServer struct {
	cfg   *serverConfig
	house *house.House
}

func NewAuctionServer(cfg *serverConfig, h *house.House) *AuctionServer {
	return &AuctionServer{cfg: cfg, house: h}
}

func (s *AuctionServer) listen() (net.Listener, error) {
	if s.cfg.ListenMode == "vsock" {
		return vsock.Listen(s.cfg.Port, nil)
	}
	return net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
}

func (s *AuctionServer) Start() error {
	listener, err := s.listen()
	if err != nil {
		return fmt.Errorf("failed to create %s listener: %w", s.cfg.ListenMode, err)
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Printf("ERROR: Failed to close listener: %v", err)
		}
	}()

	log.Printf("INFO: Auction house listening on %s port %d", s.cfg.ListenMode, s.cfg.Port)

	semaphore := make(chan struct{}, s.cfg.MaxWorkers)
	log.Printf("INFO: Worker pool initialized with %d max concurrent workers", s.cfg.MaxWorkers)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("ERROR: Failed to accept connection: %v", err)
			continue
		}

		// Acquire worker slot - immediate rejection if pool full
		select {
		case semaphore <- struct{}{}:
			go func(c net.Conn) {
				defer func() { <-semaphore }() // Release worker slot
				s.handleConnection(c)
			}(conn)
		default:
			log.Printf("INFO: No workers available, rejecting connection (pool full)")
			if err := conn.Close(); err != nil {
				log.Printf("ERROR: Failed to close rejected connection: %v", err)
			}
		}
	}
}

func (s *AuctionServer) handleConnection(conn net.Conn) {
	requestID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Panic recovered in handleConnection (request %s): %v", requestID, r)
		}
		if err := conn.Close(); err != nil {
			log.Printf("ERROR: Failed to close connection: %v", err)
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		log.Printf("ERROR: Failed to read request %s: %v", requestID, err)
		return
	}

	var baseReq houseapi.BaseRequest
	if err := json.Unmarshal(buf.Bytes(), &baseReq); err != nil {
		log.Printf("ERROR: Failed to decode base request %s: %v", requestID, err)
		return
	}

	log.Printf("INFO: Request %s type=%s", requestID, baseReq.Type)
	response := s.dispatch(baseReq.Type, buf.Bytes())

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(response); err != nil {
		log.Printf("ERROR: Failed to encode response for request %s: %v", requestID, err)
		return
	}
	log.Printf("INFO: Request %s handled", requestID)
}

func (s *AuctionServer) dispatch(reqType string, raw []byte) any {
	startTime := time.Now()

	switch reqType {
	case houseapi.TypePing:
		return houseapi.PongResponse{
			Type:      "pong",
			Message:   "auction house is healthy",
			Timestamp: time.Now().Unix(),
		}

	case houseapi.TypeCreateAuction:
		var req houseapi.CreateAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		rec, err := s.house.Create(req.AssetID)
		return auctionResult(reqType, startTime, rec, err)

	case houseapi.TypePlaceBid:
		var req houseapi.PlaceBidRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		rec, err := s.house.Bid(req.AssetID, req.Bidder, req.Amount)
		return auctionResult(reqType, startTime, rec, err)

	case houseapi.TypeSettleAuction:
		var req houseapi.SettleAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		rec, err := s.house.Settle(req.AssetID)
		return auctionResult(reqType, startTime, rec, err)

	case houseapi.TypeSettleAndCreate:
		var req houseapi.SettleAndCreateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		rec, err := s.house.SettleAndCreate(req.AssetID, req.NextAssetID)
		return auctionResult(reqType, startTime, rec, err)

	case houseapi.TypeGetAuction:
		var req houseapi.GetAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		rec, err := s.house.GetAuction(req.AssetID)
		return auctionResult(reqType, startTime, rec, err)

	case houseapi.TypeSetConfig:
		var req houseapi.SetConfigRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return decodeFailure(reqType, startTime, err)
		}
		return auctionResult(reqType, startTime, nil, s.setConfig(req))

	default:
		return houseapi.AuctionResponse{
			Type:           "error",
			Success:        false,
			Message:        fmt.Sprintf("Unknown request type: %s", reqType),
			ProcessingTime: time.Since(startTime).Milliseconds(),
		}
	}
}

func (s *AuctionServer) setConfig(req houseapi.SetConfigRequest) error {
	switch req.Field {
	case houseapi.ConfigTimeBuffer:
		return s.house.SetTimeBuffer(req.Caller, req.Value)
	case houseapi.ConfigReservePrice:
		return s.house.SetReservePrice(req.Caller, req.Value)
	case houseapi.ConfigMinBidIncrementPercentage:
		return s.house.SetMinBidIncrementPercentage(req.Caller, req.Value)
	default:
		return fmt.Errorf("unknown config field: %s", req.Field)
	}
}

func decodeFailure(reqType string, startTime time.Time, err error) houseapi.AuctionResponse {
	log.Printf("ERROR: Failed to decode %s request: %v", reqType, err)
	return houseapi.AuctionResponse{
		Type:           reqType + "_response",
		Success:        false,
		Message:        fmt.Sprintf("Failed to decode request: %v", err),
		ProcessingTime: time.Since(startTime).Milliseconds(),
	}
}

func auctionResult(reqType string, startTime time.Time, rec *core.AuctionRecord, err error) houseapi.AuctionResponse {
	resp := houseapi.AuctionResponse{
		Type:           reqType + "_response",
		ProcessingTime: time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		resp.Success = false
		resp.Message = err.Error()
		resp.Reason = core.ReasonCode(err)
		if errors.Is(err, core.ErrArithmeticOverflow) {
			log.Printf("WARNING: Arithmetic overflow rejected in %s: %v", reqType, err)
		}
		return resp
	}
	resp.Success = true
	resp.Auction = houseapi.NewAuctionSnapshot(rec)
	return resp
}
