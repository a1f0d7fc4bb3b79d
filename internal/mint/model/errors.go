package model

import "errors"

var (
	// ErrTransport marks network, timeout, and rate-limit failures. Work failing
	// with it is retried and then deferred to the next tick.
	ErrTransport = errors.New("ledger transport failure")
	// ErrProtocol marks malformed or unexpected ledger responses.
	ErrProtocol = errors.New("ledger protocol failure")
	// ErrNotFound marks a block height past the tip or an unknown txid.
	ErrNotFound = errors.New("not found")
)

// IsTransport reports whether err should be retried.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
