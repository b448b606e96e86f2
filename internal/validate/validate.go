package validate

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EthereumAddress validates that addr is a hex encoded Ethereum address,
// with or without the 0x prefix.
func EthereumAddress(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("ethereum address cannot be empty")
	}

	if !common.IsHexAddress(addr) {
		return fmt.Errorf("invalid ethereum address %s", addr)
	}

	return nil
}

// HexHash validates that s is a hex encoded hash of the given byte length.
func HexHash(s string, size int) error {
	bz, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("invalid hex hash %s: %w", s, err)
	}

	if len(bz) != size {
		return fmt.Errorf("expected hash of %d bytes, got %d", size, len(bz))
	}

	return nil
}
