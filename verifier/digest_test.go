package verifier

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input    string
		expected Algorithm
		wantErr  bool
	}{
		{input: "", expected: AlgorithmSHA256},
		{input: "sha256", expected: AlgorithmSHA256},
		{input: "SHA256", expected: AlgorithmSHA256},
		{input: "sha1", expected: AlgorithmSHA1},
		{input: " Sha1 ", expected: AlgorithmSHA1},
		{input: "sha512", wantErr: true},
		{input: "md5", wantErr: true},
		{input: "keccak256", wantErr: true},
	}

	for _, tc := range tests {
		algo, err := ParseAlgorithm(tc.input)
		if tc.wantErr {
			require.Error(t, err, "ParseAlgorithm(%q)", tc.input)
			assert.True(t, errors.Is(err, ErrUnsupportedAlgorithm))
			continue
		}

		require.NoError(t, err, "ParseAlgorithm(%q)", tc.input)
		assert.Equal(t, tc.expected, algo)
	}
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "sha256", AlgorithmSHA256.String())
	assert.Equal(t, "sha1", AlgorithmSHA1.String())
	assert.Panics(t, func() { _ = Algorithm(42).String() })
}

func TestDigestVectors(t *testing.T) {
	tests := []struct {
		input    []byte
		algo     Algorithm
		expected string
	}{
		{nil, AlgorithmSHA256, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{[]byte{}, AlgorithmSHA1, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{[]byte("abc"), AlgorithmSHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{[]byte("abc"), AlgorithmSHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}

	for _, tc := range tests {
		got := Digest(tc.input, tc.algo)
		assert.Equal(t, tc.expected, got, "Digest(%q, %s)", tc.input, tc.algo)
		assert.Equal(t, got, Digest(tc.input, tc.algo), "digest must be deterministic")
	}
}

func TestMatches(t *testing.T) {
	digest := Digest([]byte("abc"), AlgorithmSHA256)

	assert.True(t, Matches(digest, digest))
	assert.True(t, Matches(digest, "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD"))
	assert.True(t, Matches(digest, "0xBa7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"))
	assert.False(t, Matches(digest, "ca7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"))
	assert.False(t, Matches(digest, Digest([]byte("abd"), AlgorithmSHA256)))
	assert.False(t, Matches(digest, digest[:10]))
}
