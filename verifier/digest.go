package verifier

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/pkg/errors"
)

type Algorithm int

const (
	AlgorithmSHA256 Algorithm = iota
	AlgorithmSHA1
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmSHA256:
		return "sha256"
	case AlgorithmSHA1:
		return "sha1"
	default:
		panic(fmt.Sprintf("bad algorithm: %d", a))
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case AlgorithmSHA1:
		return sha1.New()
	default:
		return sha256.New()
	}
}

// ParseAlgorithm accepts "sha256" or "sha1" in any case. Empty means sha256.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sha256":
		return AlgorithmSHA256, nil
	case "sha1":
		return AlgorithmSHA1, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedAlgorithm, "algorithm %q", s)
	}
}

// Digest returns the lowercase hex digest of code
func Digest(code []byte, algo Algorithm) string {
	h := algo.newHash()
	h.Write(code)

	return hex.EncodeToString(h.Sum(nil))
}

// Matches compares hex digests case-insensitively. An optional 0x prefix on expected is ignored.
func Matches(digest, expected string) bool {
	expected = strings.TrimSpace(expected)
	if strings.HasPrefix(expected, "0x") || strings.HasPrefix(expected, "0X") {
		expected = expected[2:]
	}

	return strings.EqualFold(digest, expected)
}
