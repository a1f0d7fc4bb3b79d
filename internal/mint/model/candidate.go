package model

import "time"

// SenderUnknown is reported when no input address could be derived.
const SenderUnknown = "unknown"

// Origin tells where a candidate was observed.
type Origin string

var (
	OriginMempool Origin = "mempool"
	OriginBlock   Origin = "block"
)

// MintCandidate is a transaction classified as a mint attempt.
type MintCandidate struct {
	TxID         string    `json:"txid"`
	FeeRate      FeeRate   `json:"feeRate"`
	Sender       string    `json:"sender"`
	Origin       Origin    `json:"origin"`
	BlockHeight  *uint64   `json:"blockHeight,omitempty"`
	Position     int       `json:"position"`
	OutputIndex  uint32    `json:"outputIndex"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// CompetitionRecord is the highest confirmed-winner fee rate seen by this process.
// A record with an unavailable FeeRate means no winner has been seen yet.
type CompetitionRecord struct {
	TxID        string    `json:"txid,omitempty"`
	FeeRate     FeeRate   `json:"feeRate"`
	BlockHeight *uint64   `json:"blockHeight,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Empty reports whether no record has been set.
func (r CompetitionRecord) Empty() bool {
	return !r.FeeRate.Valid()
}

// HeightPtr returns a pointer to a copy of h.
func HeightPtr(h uint64) *uint64 {
	return &h
}
