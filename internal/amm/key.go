package amm

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SortAssets returns the pair in canonical ascending byte order.
func SortAssets(a, b common.Address) (common.Address, common.Address) {
	if bytes.Compare(a.Bytes(), b.Bytes()) <= 0 {
		return a, b
	}
	return b, a
}

// PoolKey derives the order-independent pool key for an asset pair by
// hashing the canonically sorted addresses. Self-pairing is rejected.
func PoolKey(a, b common.Address) (common.Hash, error) {
	if a == b {
		return common.Hash{}, fmt.Errorf("derive pool key for %s: %w", a.Hex(), ErrInvalidPair)
	}
	lo, hi := SortAssets(a, b)
	return crypto.Keccak256Hash(lo.Bytes(), hi.Bytes()), nil
}
