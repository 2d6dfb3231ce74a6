package addr

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Normalize validates input as a 20-byte hex address and returns its
// EIP-55 checksummed form. Every downstream field references the
// checksummed form, never the raw input.
func Normalize(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}

// Checksummed returns the canonical mixed-case textual form of an address.
func Checksummed(address common.Address) string {
	return address.Hex()
}
