// Package events defines the typed events emitted by the scanners and a
// fan-out broker delivering them to subscribers.
package events

import (
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

// Kind names an event type on the wire.
type Kind string

const (
	KindBlockProcessed    Kind = "blockProcessed"
	KindMintDetected      Kind = "mintDetected"
	KindBlockWinner       Kind = "blockWinner"
	KindHighestFeeUpdated Kind = "highestFeeUpdated"
	KindMempoolUpdated    Kind = "mempoolUpdated"
)

// Event is implemented by every payload type below.
type Event interface {
	Kind() Kind
}

type BlockProcessed struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	MintCount int    `json:"mintCount"`
}

type MintDetected struct {
	Candidate model.MintCandidate `json:"candidate"`
}

type BlockWinner struct {
	Candidate model.MintCandidate `json:"candidate"`
}

type HighestFeeUpdated struct {
	Record model.CompetitionRecord `json:"record"`
}

// MempoolUpdated carries the pending count and the top candidates by rate.
type MempoolUpdated struct {
	Count int                   `json:"count"`
	Top   []model.MintCandidate `json:"topCandidates"`
}

func (BlockProcessed) Kind() Kind    { return KindBlockProcessed }
func (MintDetected) Kind() Kind      { return KindMintDetected }
func (BlockWinner) Kind() Kind       { return KindBlockWinner }
func (HighestFeeUpdated) Kind() Kind { return KindHighestFeeUpdated }
func (MempoolUpdated) Kind() Kind    { return KindMempoolUpdated }

// Envelope is the JSON form of an event.
type Envelope struct {
	Type    Kind  `json:"type"`
	Payload Event `json:"payload"`
}

// Wrap builds the envelope for e.
func Wrap(e Event) Envelope {
	return Envelope{Type: e.Kind(), Payload: e}
}
