package bitcoin

import "github.com/btcsuite/btcd/btcjson"

// The node response shapes below accept both current and legacy bitcoind
// fields. Only what the monitor reads is decoded.

type rpcBlock struct {
	Hash   string           `json:"hash"`
	Height int64            `json:"height"`
	Time   int64            `json:"time"`
	Tx     []rpcTransaction `json:"tx"`
}

type rpcTransaction struct {
	Txid   string         `json:"txid"`
	Size   int64          `json:"size"`
	Vsize  int64          `json:"vsize"`
	Weight int64          `json:"weight"`
	Vin    []rpcVin       `json:"vin"`
	Vout   []btcjson.Vout `json:"vout"`
}

// rpcVin is a transaction input. Prevout is only reported by getblock
// verbosity 3 and getrawtransaction verbosity 2.
type rpcVin struct {
	Coinbase string      `json:"coinbase,omitempty"`
	Txid     string      `json:"txid"`
	Vout     uint32      `json:"vout"`
	Prevout  *rpcPrevout `json:"prevout,omitempty"`
}

func (v rpcVin) isCoinbase() bool {
	return v.Coinbase != ""
}

type rpcPrevout struct {
	Value        float64                    `json:"value"`
	ScriptPubKey btcjson.ScriptPubKeyResult `json:"scriptPubKey"`
}

// rpcMempoolEntry is one getrawmempool verbose entry. Nodes before 0.19
// report fee at the top level; later nodes report fees.base.
type rpcMempoolEntry struct {
	Vsize  int64    `json:"vsize"`
	Size   int64    `json:"size"`
	Weight int64    `json:"weight"`
	Fee    *float64 `json:"fee,omitempty"`
	Fees   *struct {
		Base float64 `json:"base"`
	} `json:"fees,omitempty"`
}

func (e rpcMempoolEntry) baseFee() (float64, bool) {
	if e.Fees != nil {
		return e.Fees.Base, true
	}
	if e.Fee != nil {
		return *e.Fee, true
	}
	return 0, false
}
