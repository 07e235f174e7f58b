package manifest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// NormalizeAddress validates a contract address and returns its
// canonical form. The EIP-55 checksummed string is available through
// the returned address's Hex method.
func NormalizeAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid Ethereum address: %s", s)
	}
	return common.HexToAddress(s), nil
}
