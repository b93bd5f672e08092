package verifier

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// NormalizeAddress validates a 20-byte hex address and returns it as common.Address,
// whose Hex() is the EIP-55 checksummed form.
// Mixed-case input must already carry a valid checksum; all-lower or all-upper input is accepted as is.
func NormalizeAddress(addr string) (common.Address, error) {
	trimmed := strings.TrimSpace(addr)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "address %q", addr)
	}

	address := common.HexToAddress(trimmed)

	digits := trimmed[len(trimmed)-2*common.AddressLength:]
	if isMixedCase(digits) && "0x"+digits != address.Hex() {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "bad checksum for address %q", addr)
	}

	return address, nil
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
