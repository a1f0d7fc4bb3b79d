// Package model defines domain models for mint competition tracking.
package model

import "time"

// Network names a ledger network the monitor is attached to.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Signet  Network = "signet"
	Regtest Network = "regtest"
)

// ScriptKind classifies an output script after normalization.
type ScriptKind string

var (
	// ScriptDataCarrier marks a provably unspendable output carrying an application payload.
	ScriptDataCarrier ScriptKind = "data_carrier"
	// ScriptOther marks every other output.
	ScriptOther ScriptKind = "other"
)

// Block is a confirmed block with its transactions in block order.
type Block struct {
	Height       uint64
	Hash         string
	Time         time.Time
	Transactions []Transaction
}

// TxIDs returns the ids of all transactions in block order.
func (b Block) TxIDs() []string {
	ids := make([]string, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		ids = append(ids, tx.TxID)
	}
	return ids
}

// Transaction is a normalized ledger transaction.
type Transaction struct {
	TxID    string
	Inputs  []TransactionInput
	Outputs []TransactionOutput
	VSize   uint32
	Size    uint32
	Weight  uint32
}

// Sender returns the address funding the first input, or SenderUnknown.
func (t Transaction) Sender() string {
	for _, in := range t.Inputs {
		if in.Address != "" {
			return in.Address
		}
	}
	return SenderUnknown
}

// TransactionInput references the output being spent.
// PrevValue is meaningful only when PrevValueKnown is set.
type TransactionInput struct {
	PrevTxID       string
	PrevVout       uint32
	PrevValue      uint64
	PrevValueKnown bool
	Address        string
	IsCoinbase     bool
}

// TransactionOutput is a normalized output. PayloadHex holds the carried
// payload with the carrier marker already stripped and is empty for
// non data-carrier outputs.
type TransactionOutput struct {
	Index      uint32
	Value      uint64
	ScriptKind ScriptKind
	PayloadHex string
	Addresses  []string
}

// IsDataCarrier reports whether the output carries an application payload.
func (o TransactionOutput) IsDataCarrier() bool {
	return o.ScriptKind == ScriptDataCarrier
}

// MempoolEntry is the cheap per-transaction summary reported by a mempool snapshot.
type MempoolEntry struct {
	TxID     string
	Fee      uint64
	FeeKnown bool
	VSize    uint32
	Size     uint32
	Weight   uint32
}

// MempoolSnapshot maps txid to its mempool entry.
type MempoolSnapshot map[string]MempoolEntry

// IDs returns the snapshot's id set.
func (s MempoolSnapshot) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s))
	for id := range s {
		ids[id] = struct{}{}
	}
	return ids
}
