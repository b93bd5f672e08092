package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/soyart/eth-code-verifier/config"
	"github.com/soyart/eth-code-verifier/verifier"
)

func main() {
	rootCmd := newRootCmd(config.Environ(), verifier.DialEthclient)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe turns a fatal error into the one-line message shown to the user
func describe(err error) string {
	switch {
	case errors.Is(err, verifier.ErrConnection):
		return "❌ RPC connection failed. Check RPC_URL/INFURA_API_KEY and network access: " + err.Error()
	case errors.Is(err, verifier.ErrInvalidAddress):
		return "❌ Invalid Ethereum address format: " + err.Error()
	case errors.Is(err, verifier.ErrUnsupportedAlgorithm):
		return "❌ Unsupported hash algorithm (use sha256 or sha1): " + err.Error()
	default:
		return "❌ " + err.Error()
	}
}
