package amm

import (
	"math/big"
	"testing"
)

func TestIsqrt(t *testing.T) {
	cases := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{40000, 200},
		{99999, 316},
		{1 << 40, 1 << 20},
	}

	for _, tc := range cases {
		got := Isqrt(big.NewInt(tc.in))
		if got.Int64() != tc.want {
			t.Fatalf("isqrt(%d) = %s, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsqrtLarge(t *testing.T) {
	// (10^30)^2 has no exact float representation; the integer method must
	// still return it exactly.
	root, _ := new(big.Int).SetString("1000000000000000000000000000000", 10)
	n := new(big.Int).Mul(root, root)

	if got := Isqrt(n); got.Cmp(root) != 0 {
		t.Fatalf("isqrt(root^2) = %s, want %s", got, root)
	}

	// One below a perfect square floors to root-1.
	n.Sub(n, big.NewInt(1))
	want := new(big.Int).Sub(root, big.NewInt(1))
	if got := Isqrt(n); got.Cmp(want) != 0 {
		t.Fatalf("isqrt(root^2-1) = %s, want %s", got, want)
	}
}

func TestIsqrtDoesNotMutateInput(t *testing.T) {
	n := big.NewInt(12345)
	Isqrt(n)
	if n.Int64() != 12345 {
		t.Fatalf("input mutated: %s", n)
	}
}

func TestMinBig(t *testing.T) {
	a := big.NewInt(7)
	b := big.NewInt(9)

	if got := MinBig(a, b); got.Cmp(a) != 0 {
		t.Fatalf("min(7,9) = %s", got)
	}
	if got := MinBig(b, a); got.Cmp(a) != 0 {
		t.Fatalf("min(9,7) = %s", got)
	}
	if got := MinBig(a, a); got.Cmp(a) != 0 {
		t.Fatalf("min(7,7) = %s", got)
	}

	// The result must be a copy, not an alias.
	got := MinBig(a, b)
	got.SetInt64(0)
	if a.Int64() != 7 {
		t.Fatalf("min aliased its argument")
	}
}
