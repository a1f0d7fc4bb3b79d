// Package feerate computes sat/vByte fee rates for normalized transactions.
package feerate

import (
	"math"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

// Compute returns the transaction's fee rate. Unknown previous output
// values, a zero virtual size, or a non-positive fee all yield
// model.UnavailableFeeRate.
func Compute(tx model.Transaction) model.FeeRate {
	if len(tx.Inputs) == 0 {
		return model.UnavailableFeeRate
	}

	var in, out uint64
	for _, input := range tx.Inputs {
		if input.IsCoinbase || !input.PrevValueKnown {
			return model.UnavailableFeeRate
		}
		if in > math.MaxInt64-input.PrevValue {
			return model.UnavailableFeeRate
		}
		in += input.PrevValue
	}
	for _, output := range tx.Outputs {
		if out > math.MaxInt64-output.Value {
			return model.UnavailableFeeRate
		}
		out += output.Value
	}
	if in <= out {
		return model.UnavailableFeeRate
	}

	return FromFee(in-out, VirtualSize(tx.VSize, tx.Size, tx.Weight))
}

// Approximate computes the rate of a mempool entry from the node-reported fee
// without fetching the full transaction.
func Approximate(entry model.MempoolEntry) model.FeeRate {
	if !entry.FeeKnown {
		return model.UnavailableFeeRate
	}
	return FromFee(entry.Fee, VirtualSize(entry.VSize, entry.Size, entry.Weight))
}

// FromFee divides a fee in satoshis by a virtual size.
func FromFee(feeSats uint64, vsize uint32) model.FeeRate {
	if feeSats == 0 || vsize == 0 {
		return model.UnavailableFeeRate
	}
	return model.NewFeeRate(float64(feeSats) / float64(vsize))
}

// VirtualSize prefers the reported vsize, then the raw size, then weight/4 rounded up.
func VirtualSize(vsize, size, weight uint32) uint32 {
	switch {
	case vsize > 0:
		return vsize
	case size > 0:
		return size
	default:
		return uint32((uint64(weight) + 3) / 4)
	}
}
