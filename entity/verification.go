package entity

import (
	"fmt"
	"time"
)

// LogTimeLayout is the UTC timestamp layout of a verification log line
const LogTimeLayout = "2006-01-02 15:04:05"

type VerificationRequest struct {
	Address      string `json:"address"`
	ExpectedHash string `json:"expectedHash,omitempty"` // Empty means no assertion
	Algorithm    string `json:"algorithm"`
	LogEnabled   bool   `json:"logEnabled"`
}

type VerificationResult struct {
	Address    string  `json:"address"`    // EIP-55 checksummed
	Digest     *string `json:"digest"`     // nil if no code was found
	CodeHash   string  `json:"codeHash"`   // keccak256 of the code, as stored on-chain
	CodeLength int     `json:"codeLength"`
	Matched    bool    `json:"matched"`
	ChainID    uint64  `json:"chainId"`
	Block      uint64  `json:"block"`

	Elapsed time.Duration `json:"elapsed"`
}

func (r *VerificationResult) HasCode() bool {
	return r.Digest != nil
}

// LogEntry is one line of the append-only verification log
type LogEntry struct {
	Time       time.Time
	Address    string
	Digest     string
	ChainID    uint64
	CodeLength int
}

// String renders the entry as a pipe-delimited log line, without the trailing newline
func (e LogEntry) String() string {
	return fmt.Sprintf(
		"%s | %s | %s | chain:%d | len:%d",
		e.Time.UTC().Format(LogTimeLayout),
		e.Address,
		e.Digest,
		e.ChainID,
		e.CodeLength,
	)
}
