package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soyart/eth-code-verifier/config"
	"github.com/soyart/eth-code-verifier/entity"
	"github.com/soyart/eth-code-verifier/verifier"
	"github.com/soyart/eth-code-verifier/vlog"
)

type options struct {
	expectHash string
	algo       string
	noLog      bool
	timeout    time.Duration
	logFormat  string
	logFile    string
}

func newRootCmd(env map[string]string, dial verifier.DialFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "eth-code-verifier [address]",
		Short: "Snapshot and verify deployed contract bytecode",
		Long: `Fetch the deployed bytecode of a contract from an Ethereum JSON-RPC node,
hash it and optionally compare the digest to an expected value.

The node is taken from RPC_URL, or built from INFURA_API_KEY for mainnet.
Each successful check is appended to a plain-text verification log.

EXAMPLES:
  # Check the default contract
  RPC_URL=http://localhost:8545 eth-code-verifier

  # Assert a known digest
  eth-code-verifier 0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32 --expect-hash=<hex>

  # SHA-1 without touching the log
  eth-code-verifier 0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32 --algo=sha1 --no-log
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			address := verifier.DefaultContract
			if len(args) == 1 {
				address = args[0]
			}

			conf, err := config.From(env)
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}

			if cmd.Flags().Changed("timeout") {
				conf.Timeout = opts.timeout
			}

			if opts.logFile != "" {
				conf.LogFile = opts.logFile
			}

			return run(cmd.Context(), cmd.OutOrStdout(), conf, dial, opts, address)
		},
	}

	cmd.Flags().StringVar(&opts.expectHash, "expect-hash", "", "expected hex digest to compare against")
	cmd.Flags().StringVar(&opts.algo, "algo", "sha256", "hash algorithm (sha256 or sha1)")
	cmd.Flags().BoolVar(&opts.noLog, "no-log", false, "do not append to the verification log")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "network timeout for the whole check")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "progress log format (console or json)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "verification log path (default from LOG_FILE or "+config.DefaultLogFile+")")

	return cmd
}

func newLogger(format, label string) (*zap.Logger, error) {
	fields := zap.Fields(zap.String("serviceLabel", label))

	switch format {
	case "json":
		return zap.NewProduction(fields)
	case "console":
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.DisableStacktrace = true
		return zapConfig.Build(fields)
	default:
		return nil, fmt.Errorf("illegal log format: %s", format)
	}
}

func run(
	ctx context.Context,
	out io.Writer,
	conf *config.Config,
	dial verifier.DialFunc,
	opts options,
	address string,
) error {
	logger, err := newLogger(opts.logFormat, conf.Label)
	if err != nil {
		return errors.Wrap(err, "failed to init logger")
	}
	defer logger.Sync()

	confJson, err := json.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "failed to json marshal conf")
	}

	logger.Debug("config", zap.String("values", string(confJson)))

	journal, err := vlog.New(conf.LogFile)
	if err != nil {
		return errors.Wrap(err, "failed to open verification log")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithTimeout(ctx, conf.Timeout)
	defer cancel()

	req := entity.VerificationRequest{
		Address:      address,
		ExpectedHash: opts.expectHash,
		Algorithm:    opts.algo,
		LogEnabled:   !opts.noLog,
	}

	result, err := verifier.New(logger, dial, journal).Verify(ctx, conf.NodeUrl, req)
	if err != nil {
		return err
	}

	printResult(out, req, result)

	return nil
}

func printResult(out io.Writer, req entity.VerificationRequest, result *entity.VerificationResult) {
	fmt.Fprintf(out, "🔗 Chain ID: %d | Block: %d\n", result.ChainID, result.Block)
	fmt.Fprintf(out, "🧩 Bytecode length: %d bytes\n", result.CodeLength)

	if !result.HasCode() {
		fmt.Fprintln(out, "⚠️ No bytecode found, address may be an EOA or not deployed on this chain.")
		fmt.Fprintf(out, "⏱️ Verification time: %.2fs\n", result.Elapsed.Seconds())
		return
	}

	// Verify already accepted it
	algo, _ := verifier.ParseAlgorithm(req.Algorithm)

	fmt.Fprintf(out, "🔎 Contract: %s\n", result.Address)
	fmt.Fprintf(out, "🛡️ Code %s: %s\n", strings.ToUpper(algo.String()), *result.Digest)
	fmt.Fprintf(out, "#️⃣ Code hash (keccak256): %s\n", result.CodeHash)

	if req.ExpectedHash != "" {
		if result.Matched {
			fmt.Fprintln(out, "✅ Hash matches expected value.")
		} else {
			fmt.Fprintln(out, "❌ Hash does NOT match expected value.")
		}
	}

	fmt.Fprintf(out, "⏱️ Verification time: %.2fs\n", result.Elapsed.Seconds())
}
