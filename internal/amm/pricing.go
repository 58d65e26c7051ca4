package amm

import "math/big"

// Trading fee retained by the pool: FeeNumerator/FeeDenominator of every input.
const (
	FeeNumerator   = 3
	FeeDenominator = 1000
)

var (
	feeMul = big.NewInt(FeeDenominator - FeeNumerator)
	feeDen = big.NewInt(FeeDenominator)

	// PriceScale is the fixed-point scale for PriceOf results.
	PriceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// GetAmountOut solves the constant-product formula for the output amount,
// with the fee deducted from the input side:
//
//	out = (in*997 * reserveOut) / (reserveIn*1000 + in*997)
//
// Division is floored, so the invariant product never decreases.
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrInvalidInput
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, ErrInsufficientLiquidity
	}

	amountInWithFee := new(big.Int).Mul(amountIn, feeMul)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, feeDen)
	denominator.Add(denominator, amountInWithFee)
	return numerator.Quo(numerator, denominator), nil
}

// PriceOf quotes asset X in terms of asset Y as reserveY * 1e18 / reserveX.
func PriceOf(reserveX, reserveY *big.Int) (*big.Int, error) {
	if reserveX.Sign() == 0 {
		return nil, ErrNoLiquidity
	}
	price := new(big.Int).Mul(reserveY, PriceScale)
	return price.Quo(price, reserveX), nil
}
