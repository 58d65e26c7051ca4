package amm

import "math/big"

var (
	one  = big.NewInt(1)
	four = big.NewInt(4)
)

// Isqrt returns floor(sqrt(n)) for non-negative n using Newton's method.
// Small inputs short-circuit: 0 -> 0, 1..3 -> 1.
func Isqrt(n *big.Int) *big.Int {
	if n.Sign() == 0 {
		return new(big.Int)
	}
	if n.Cmp(four) < 0 {
		return new(big.Int).Set(one)
	}

	z := new(big.Int).Set(n)
	x := new(big.Int).Rsh(n, 1)
	x.Add(x, one)
	for x.Cmp(z) < 0 {
		z.Set(x)
		// x = (n/x + x) / 2
		x.Quo(n, z)
		x.Add(x, z)
		x.Rsh(x, 1)
	}
	return z
}

// MinBig returns the smaller of a and b as a fresh value.
func MinBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}
