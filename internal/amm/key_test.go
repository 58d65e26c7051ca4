package amm

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestPoolKeyCommutative(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")

	keyAB, err := PoolKey(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keyBA, err := PoolKey(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keyAB != keyBA {
		t.Fatalf("keys differ: %s != %s", keyAB.Hex(), keyBA.Hex())
	}
}

func TestPoolKeyDistinctPairs(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")
	c := common.HexToAddress("0x3333333333333333333333333333333333333333")

	keyAB, _ := PoolKey(a, b)
	keyAC, _ := PoolKey(a, c)
	if keyAB == keyAC {
		t.Fatalf("distinct pairs share a key: %s", keyAB.Hex())
	}
}

func TestPoolKeySelfPair(t *testing.T) {
	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	if _, err := PoolKey(a, a); !errors.Is(err, ErrInvalidPair) {
		t.Fatalf("expected ErrInvalidPair, got %v", err)
	}
}

func TestSortAssets(t *testing.T) {
	lo := common.HexToAddress("0x1111111111111111111111111111111111111111")
	hi := common.HexToAddress("0x2222222222222222222222222222222222222222")

	a0, a1 := SortAssets(hi, lo)
	if a0 != lo || a1 != hi {
		t.Fatalf("sort mismatch: %s, %s", a0.Hex(), a1.Hex())
	}
	a0, a1 = SortAssets(lo, hi)
	if a0 != lo || a1 != hi {
		t.Fatalf("sorted input reordered: %s, %s", a0.Hex(), a1.Hex())
	}
}
