package amm

import "math/big"

// SharesForDeposit computes the shares minted for depositing
// (amount0, amount1) into a pool holding (reserve0, reserve1) with
// totalShares outstanding.
//
// An empty pool mints isqrt(amount0*amount1). Otherwise issuance is
// proportional on the limiting side, min(amount0*S/r0, amount1*S/r1) floored:
// a depositor off the reserve ratio is credited only for the limiting asset
// and the excess of the other stays in the pool.
func SharesForDeposit(reserve0, reserve1, totalShares, amount0, amount1 *big.Int) (*big.Int, error) {
	if amount0 == nil || amount1 == nil || amount0.Sign() <= 0 || amount1.Sign() <= 0 {
		return nil, ErrInvalidInput
	}

	var minted *big.Int
	if totalShares.Sign() == 0 {
		minted = Isqrt(new(big.Int).Mul(amount0, amount1))
	} else {
		share0 := new(big.Int).Mul(amount0, totalShares)
		share0.Quo(share0, reserve0)
		share1 := new(big.Int).Mul(amount1, totalShares)
		share1.Quo(share1, reserve1)
		minted = MinBig(share0, share1)
	}

	if minted.Sign() == 0 {
		return nil, ErrInsufficientLiquidityMinted
	}
	return minted, nil
}

// AmountsForRedeem computes the assets returned for burning shares against a
// pool holding (reserve0, reserve1) with totalShares outstanding. Both sides
// are floored; dust stays with the remaining shareholders.
func AmountsForRedeem(reserve0, reserve1, totalShares, shares *big.Int) (*big.Int, *big.Int, error) {
	if shares == nil || shares.Sign() <= 0 {
		return nil, nil, ErrInvalidInput
	}
	if totalShares.Sign() == 0 || shares.Cmp(totalShares) > 0 {
		return nil, nil, ErrInsufficientShares
	}

	amount0 := new(big.Int).Mul(shares, reserve0)
	amount0.Quo(amount0, totalShares)
	amount1 := new(big.Int).Mul(shares, reserve1)
	amount1.Quo(amount1, totalShares)

	if amount0.Sign() == 0 || amount1.Sign() == 0 {
		return nil, nil, ErrInsufficientAmounts
	}
	return amount0, amount1, nil
}
