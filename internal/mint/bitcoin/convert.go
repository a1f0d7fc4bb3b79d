// Package bitcoin implements the ledger client over bitcoind JSON-RPC.
package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/pkg/safe"
	"go.uber.org/zap"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// convertTransaction normalizes a node transaction. Inputs whose prevout
// was not reported are left with PrevValueKnown unset.
func (c *LedgerClient) convertTransaction(src rpcTransaction) (model.Transaction, error) {
	if src.Txid == "" {
		return model.Transaction{}, fmt.Errorf("transaction without txid: %w", model.ErrProtocol)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size overflow: %w: %w", src.Txid, model.ErrProtocol, err)
	}
	vsize, err := safe.Uint32(src.Vsize)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s vsize overflow: %w: %w", src.Txid, model.ErrProtocol, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s weight overflow: %w: %w", src.Txid, model.ErrProtocol, err)
	}

	inputs := make([]model.TransactionInput, 0, len(src.Vin))
	for idx, vin := range src.Vin {
		in, err := c.convertInput(vin)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s input %d: %w", src.Txid, idx, err)
		}
		inputs = append(inputs, in)
	}

	outputs := make([]model.TransactionOutput, 0, len(src.Vout))
	for idx, vout := range src.Vout {
		index, err := safe.Uint32(idx)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output index overflow: %w: %w", src.Txid, model.ErrProtocol, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d value: %w: %w", src.Txid, idx, model.ErrProtocol, err)
		}
		kind, payload, err := c.decoder.payload(vout.ScriptPubKey)
		switch {
		case errors.Is(err, errTruncatedPayload):
			c.logger.Warn("data carrier truncated, keeping the complete pushes",
				zap.String("txid", src.Txid),
				zap.Int("output", idx),
				zap.Error(err),
			)
		case err != nil:
			return model.Transaction{}, fmt.Errorf("tx %s output %d script: %w: %w", src.Txid, idx, model.ErrProtocol, err)
		}
		var addresses []string
		if kind != model.ScriptDataCarrier {
			// Nonstandard scripts are kept without addresses.
			addresses, _ = c.decoder.addresses(vout.ScriptPubKey)
		}
		outputs = append(outputs, model.TransactionOutput{
			Index:      index,
			Value:      value,
			ScriptKind: kind,
			PayloadHex: payload,
			Addresses:  addresses,
		})
	}

	return model.Transaction{
		TxID:    src.Txid,
		Inputs:  inputs,
		Outputs: outputs,
		VSize:   vsize,
		Size:    size,
		Weight:  weight,
	}, nil
}

func (c *LedgerClient) convertInput(vin rpcVin) (model.TransactionInput, error) {
	if vin.isCoinbase() {
		return model.TransactionInput{IsCoinbase: true}, nil
	}
	in := model.TransactionInput{PrevTxID: vin.Txid, PrevVout: vin.Vout}
	if vin.Prevout == nil {
		return in, nil
	}
	value, err := BtcToSatoshis(vin.Prevout.Value)
	if err != nil {
		return in, fmt.Errorf("prevout value: %w: %w", model.ErrProtocol, err)
	}
	in.PrevValue = value
	in.PrevValueKnown = true
	in.Address = c.firstAddress(vin.Prevout)
	return in, nil
}

func (c *LedgerClient) firstAddress(prevout *rpcPrevout) string {
	addrs, err := c.decoder.addresses(prevout.ScriptPubKey)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

// hasDataCarrier reports whether any output is a data carrier. Only such
// transactions can be mint candidates, so only they need their prevouts.
func hasDataCarrier(tx model.Transaction) bool {
	for _, out := range tx.Outputs {
		if out.IsDataCarrier() {
			return true
		}
	}
	return false
}

// needsPrevouts reports whether an input is missing its spent value.
func needsPrevouts(tx model.Transaction) bool {
	for _, in := range tx.Inputs {
		if !in.IsCoinbase && !in.PrevValueKnown {
			return true
		}
	}
	return false
}
