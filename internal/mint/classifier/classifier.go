// Package classifier recognizes mint transactions by their data-carrier payload.
package classifier

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
)

// DefaultSignatureHex is the mint signature used when none is configured.
// It is provisional until checked against the protocol documentation.
const DefaultSignatureHex = "6d696e74"

// Matcher decides whether a stripped data-carrier payload is a mint signal.
type Matcher interface {
	Match(payload []byte) bool
}

// SignatureMatcher matches payloads containing one fixed byte sequence.
type SignatureMatcher struct {
	signature []byte
}

// NewSignatureMatcher builds a matcher for a non-empty signature.
func NewSignatureMatcher(signature []byte) (*SignatureMatcher, error) {
	if len(signature) == 0 {
		return nil, errors.New("mint signature is empty")
	}
	return &SignatureMatcher{signature: bytes.Clone(signature)}, nil
}

// ParseSignatureHex builds a matcher from a hex encoded signature.
func ParseSignatureHex(s string) (*SignatureMatcher, error) {
	signature, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode mint signature %q: %w", s, err)
	}
	return NewSignatureMatcher(signature)
}

// Match reports an exact substring match.
func (m *SignatureMatcher) Match(payload []byte) bool {
	return bytes.Contains(payload, m.signature)
}

// Classifier is a pure predicate over transaction outputs.
type Classifier struct {
	matcher Matcher
}

// New constructs a Classifier.
func New(matcher Matcher) *Classifier {
	return &Classifier{matcher: matcher}
}

// Classify returns the index of the first output carrying the mint signal.
func (c *Classifier) Classify(tx model.Transaction) (uint32, bool) {
	for _, out := range tx.Outputs {
		if !out.IsDataCarrier() || out.PayloadHex == "" {
			continue
		}
		payload, err := hex.DecodeString(out.PayloadHex)
		if err != nil {
			continue
		}
		if c.matcher.Match(payload) {
			return out.Index, true
		}
	}
	return 0, false
}

// IsMintCandidate reports whether any output carries the mint signal.
func (c *Classifier) IsMintCandidate(tx model.Transaction) bool {
	_, ok := c.Classify(tx)
	return ok
}
