package verifier

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soyart/eth-code-verifier/entity"
	"github.com/soyart/eth-code-verifier/vlog"
)

// DefaultContract is checked when no address is given
const DefaultContract = "0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32"

// Backend is the subset of *ethclient.Client the verifier needs
type Backend interface {
	ChainID(context.Context) (*big.Int, error)
	BlockNumber(context.Context) (uint64, error)
	CodeAt(context.Context, common.Address, *big.Int) ([]byte, error)
	Close()
}

type DialFunc func(ctx context.Context, nodeUrl string) (Backend, error)

func DialEthclient(ctx context.Context, nodeUrl string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, nodeUrl)
	if err != nil {
		return nil, err
	}

	return client, nil
}

type Verifier struct {
	logger  *zap.Logger
	dial    DialFunc
	journal vlog.Journal

	now func() time.Time
}

// New returns a Verifier. A nil journal disables the verification log regardless of the request.
func New(logger *zap.Logger, dial DialFunc, journal vlog.Journal) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dial == nil {
		dial = DialEthclient
	}

	return &Verifier{
		logger:  logger,
		dial:    dial,
		journal: journal,
		now:     time.Now,
	}
}

// Verify fetches the code at req.Address from nodeUrl, hashes it and compares it to req.ExpectedHash.
// Bad input is rejected before any network call.
// Empty code and hash mismatch are reported in the result, not as errors.
func (v *Verifier) Verify(ctx context.Context, nodeUrl string, req entity.VerificationRequest) (*entity.VerificationResult, error) {
	start := v.now()

	algo, err := ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}

	address, err := NormalizeAddress(req.Address)
	if err != nil {
		return nil, err
	}

	client, err := v.dial(ctx, nodeUrl)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "dial: %s", err.Error())
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "get chain id: %s", err.Error())
	}

	block, err := client.BlockNumber(ctx)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "get block number: %s", err.Error())
	}

	v.logger.Info("connected", zap.Uint64("chainId", chainID.Uint64()), zap.Uint64("block", block))

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrFetchCode, "address %s: %s", address.Hex(), err.Error())
	}

	v.logger.Info("got bytecode", zap.String("contract", address.Hex()), zap.Int("codeLength", len(code)))

	result := &entity.VerificationResult{
		Address:    address.Hex(),
		CodeLength: len(code),
		ChainID:    chainID.Uint64(),
		Block:      block,
	}

	if len(code) == 0 {
		v.logger.Warn("no bytecode found, address may be an EOA or not deployed on this chain", zap.String("contract", address.Hex()))
		result.Elapsed = v.now().Sub(start)
		return result, nil
	}

	digest := Digest(code, algo)
	result.Digest = &digest
	result.CodeHash = crypto.Keccak256Hash(code).Hex()

	v.logger.Info("computed digest",
		zap.String("contract", address.Hex()),
		zap.String("algorithm", strings.ToUpper(algo.String())),
		zap.String("digest", digest),
		zap.String("codeHash", result.CodeHash),
	)

	result.Matched = true
	if req.ExpectedHash != "" {
		result.Matched = Matches(digest, req.ExpectedHash)
		if result.Matched {
			v.logger.Info("hash matches expected value", zap.String("expected", req.ExpectedHash))
		} else {
			v.logger.Warn("hash does NOT match expected value", zap.String("expected", req.ExpectedHash), zap.String("digest", digest))
		}
	}

	if req.LogEnabled && v.journal != nil {
		entry := entity.LogEntry{
			Time:       v.now(),
			Address:    result.Address,
			Digest:     digest,
			ChainID:    result.ChainID,
			CodeLength: result.CodeLength,
		}

		// Best effort, never fails the verification
		if err := v.journal.Append(entry); err != nil {
			v.logger.Warn("failed to write verification log", zap.Error(err))
		}
	}

	result.Elapsed = v.now().Sub(start)
	v.logger.Info("verification done", zap.String("elapsed", fmt.Sprintf("%.2fs", result.Elapsed.Seconds())))

	return result, nil
}
