package bitcoin

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

// scriptDecoder extracts addresses and data-carrier payloads from output scripts.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(network model.Network) (*scriptDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// addresses prefers what the node reported and falls back to decoding the script.
func (d *scriptDecoder) addresses(spk btcjson.ScriptPubKeyResult) ([]string, error) {
	if len(spk.Addresses) > 0 {
		return append([]string(nil), spk.Addresses...), nil
	}
	if spk.Address != "" {
		return []string{spk.Address}, nil
	}
	if spk.Hex == "" {
		return nil, nil
	}

	script, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// errTruncatedPayload marks a data carrier whose pushes run past the end of
// the script. The payload returned with it holds the pushes before the break.
var errTruncatedPayload = errors.New("data carrier push runs past end of script")

// payload reports whether the script is a data carrier and returns its
// pushed data with the OP_RETURN marker and push opcodes stripped.
func (d *scriptDecoder) payload(spk btcjson.ScriptPubKeyResult) (model.ScriptKind, string, error) {
	if spk.Hex == "" {
		if spk.Type == "nulldata" {
			return model.ScriptDataCarrier, "", nil
		}
		return model.ScriptOther, "", nil
	}
	script, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return model.ScriptOther, "", err
	}
	// GetScriptClass rejects carriers above the legacy 80 byte relay limit,
	// which nodes no longer enforce.
	if len(script) == 0 || script[0] != txscript.OP_RETURN {
		return model.ScriptOther, "", nil
	}
	var data []byte
	tokenizer := txscript.MakeScriptTokenizer(0, script[1:])
	for tokenizer.Next() {
		data = append(data, tokenizer.Data()...)
	}
	if err := tokenizer.Err(); err != nil {
		return model.ScriptDataCarrier, hex.EncodeToString(data), fmt.Errorf("%w: %w", errTruncatedPayload, err)
	}
	return model.ScriptDataCarrier, hex.EncodeToString(data), nil
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
