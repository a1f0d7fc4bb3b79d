package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

const startHeightLatest = "latest"

// StartHeight is either "latest" or an explicit block height. The zero value is latest.
type StartHeight struct {
	height   uint64
	explicit bool
}

// LatestHeight starts from the ledger tip at start time.
func LatestHeight() StartHeight {
	return StartHeight{}
}

// AtHeight starts from an explicit height.
func AtHeight(h uint64) StartHeight {
	return StartHeight{height: h, explicit: true}
}

// Height returns the explicit height and false for latest.
func (s StartHeight) Height() (uint64, bool) {
	return s.height, s.explicit
}

func (s StartHeight) String() string {
	if !s.explicit {
		return startHeightLatest
	}
	return strconv.FormatUint(s.height, 10)
}

// UnmarshalFlag implements flags.Unmarshaler.
func (s *StartHeight) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, startHeightLatest) {
		*s = LatestHeight()
		return nil
	}
	h, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("start height %q: want %q or a block height", value, startHeightLatest)
	}
	*s = AtHeight(h)
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (s StartHeight) MarshalFlag() (string, error) {
	return s.String(), nil
}

// Config holds the monitor's tuning options.
type Config struct {
	Network model.Network

	MinMempoolFeeRate float64
	WinnerMinFeeRate  float64
	BatchSize         int
	BatchConcurrency  int
	BatchDelay        time.Duration
	TopK              int

	RetryMax         int
	RetryBackoffBase time.Duration
	RetryBackoffMax  time.Duration
	RPCTimeout       time.Duration

	MempoolEntryTTL     time.Duration
	HistoryCapacity     int
	BlockPollInterval   time.Duration
	MempoolPollInterval time.Duration
	StartHeight         StartHeight

	// SubscriberBuffer is the event channel capacity of each subscription.
	SubscriberBuffer int
}

// DefaultConfig returns the defaults used by cmd/mintwatch.
func DefaultConfig() Config {
	return Config{
		Network:             model.Mainnet,
		MinMempoolFeeRate:   1,
		WinnerMinFeeRate:    1,
		BatchSize:           50,
		BatchConcurrency:    4,
		BatchDelay:          100 * time.Millisecond,
		TopK:                10,
		RetryMax:            3,
		RetryBackoffBase:    500 * time.Millisecond,
		RetryBackoffMax:     10 * time.Second,
		RPCTimeout:          15 * time.Second,
		MempoolEntryTTL:     30 * time.Minute,
		HistoryCapacity:     100,
		BlockPollInterval:   30 * time.Second,
		MempoolPollInterval: 10 * time.Second,
		StartHeight:         LatestHeight(),
		SubscriberBuffer:    64,
	}
}

// Validate rejects values the scanners cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.MinMempoolFeeRate < 0 {
		errs = append(errs, errors.New("min mempool fee rate must not be negative"))
	}
	if c.WinnerMinFeeRate < 0 {
		errs = append(errs, errors.New("winner min fee rate must not be negative"))
	}
	if c.BatchSize < 1 {
		errs = append(errs, errors.New("batch size must be positive"))
	}
	if c.BatchConcurrency < 1 {
		errs = append(errs, errors.New("batch concurrency must be positive"))
	}
	if c.BatchDelay < 0 {
		errs = append(errs, errors.New("batch delay must not be negative"))
	}
	if c.RetryMax < 1 {
		errs = append(errs, errors.New("retry max must be at least 1"))
	}
	if c.RetryBackoffBase < 0 {
		errs = append(errs, errors.New("retry backoff base must not be negative"))
	}
	if c.RPCTimeout <= 0 {
		errs = append(errs, errors.New("rpc timeout must be positive"))
	}
	if c.MempoolEntryTTL <= 0 {
		errs = append(errs, errors.New("mempool entry ttl must be positive"))
	}
	if c.HistoryCapacity < 1 {
		errs = append(errs, errors.New("history capacity must be positive"))
	}
	if c.BlockPollInterval <= 0 {
		errs = append(errs, errors.New("block poll interval must be positive"))
	}
	if c.MempoolPollInterval <= 0 {
		errs = append(errs, errors.New("mempool poll interval must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid monitor config: %w", errors.Join(errs...))
	}
	return nil
}
