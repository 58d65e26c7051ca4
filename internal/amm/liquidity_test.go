package amm

import (
	"errors"
	"math/big"
	"testing"
)

func TestSharesForDepositBootstrap(t *testing.T) {
	minted, err := SharesForDeposit(new(big.Int), new(big.Int), new(big.Int), big.NewInt(100), big.NewInt(400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted.Int64() != 200 {
		t.Fatalf("bootstrap minted %s, want 200", minted)
	}
}

func TestSharesForDepositBootstrapTooSmall(t *testing.T) {
	// isqrt(0) can't happen with positive amounts; the smallest positive
	// deposit still mints isqrt(1)=1, so bootstrap never floors to zero.
	minted, err := SharesForDeposit(new(big.Int), new(big.Int), new(big.Int), big.NewInt(1), big.NewInt(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted.Int64() != 1 {
		t.Fatalf("minted %s, want 1", minted)
	}
}

func TestSharesForDepositProportional(t *testing.T) {
	reserve0 := big.NewInt(1000)
	reserve1 := big.NewInt(2000)
	total := big.NewInt(1414)

	// Exact ratio: both sides agree, no rounding loss.
	minted, err := SharesForDeposit(reserve0, reserve1, total, big.NewInt(50), big.NewInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := new(big.Int).Mul(big.NewInt(50), total)
	want.Quo(want, reserve0)
	if minted.Cmp(want) != 0 {
		t.Fatalf("minted %s, want %s", minted, want)
	}
}

func TestSharesForDepositLimitingSide(t *testing.T) {
	reserve0 := big.NewInt(1000)
	reserve1 := big.NewInt(2000)
	total := big.NewInt(1000)

	// Excess of asset1 earns nothing: only the limiting asset0 side counts.
	minted, err := SharesForDeposit(reserve0, reserve1, total, big.NewInt(50), big.NewInt(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted.Int64() != 50 {
		t.Fatalf("minted %s, want 50", minted)
	}
}

func TestSharesForDepositZeroMint(t *testing.T) {
	// Deposit too small to represent as one share against a large pool.
	reserve0 := big.NewInt(1_000_000)
	reserve1 := big.NewInt(1_000_000)
	total := big.NewInt(100)

	_, err := SharesForDeposit(reserve0, reserve1, total, big.NewInt(1), big.NewInt(1))
	if !errors.Is(err, ErrInsufficientLiquidityMinted) {
		t.Fatalf("expected ErrInsufficientLiquidityMinted, got %v", err)
	}
}

func TestSharesForDepositInvalid(t *testing.T) {
	if _, err := SharesForDeposit(new(big.Int), new(big.Int), new(big.Int), new(big.Int), big.NewInt(1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := SharesForDeposit(new(big.Int), new(big.Int), new(big.Int), big.NewInt(1), new(big.Int)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAmountsForRedeem(t *testing.T) {
	amount0, amount1, err := AmountsForRedeem(big.NewInt(1000), big.NewInt(2000), big.NewInt(200), big.NewInt(50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount0.Int64() != 250 || amount1.Int64() != 500 {
		t.Fatalf("redeemed (%s, %s), want (250, 500)", amount0, amount1)
	}
}

func TestAmountsForRedeemFloorsToZero(t *testing.T) {
	// 1 share of 1000 against reserve 500 floors to zero on one side.
	_, _, err := AmountsForRedeem(big.NewInt(500), big.NewInt(2000), big.NewInt(1000), big.NewInt(1))
	if !errors.Is(err, ErrInsufficientAmounts) {
		t.Fatalf("expected ErrInsufficientAmounts, got %v", err)
	}
}

func TestAmountsForRedeemOverdraw(t *testing.T) {
	_, _, err := AmountsForRedeem(big.NewInt(1000), big.NewInt(2000), big.NewInt(200), big.NewInt(201))
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestDepositRedeemRoundTrip(t *testing.T) {
	// Depositing then redeeming the same shares never returns more than
	// deposited, for a spread of reserve states.
	cases := []struct {
		reserve0, reserve1, total int64
		amount0, amount1          int64
	}{
		{1000, 2000, 1414, 50, 100},
		{1000, 2000, 1414, 33, 77},
		{7919, 104729, 28657, 991, 12345},
		{3, 5, 3, 2, 9},
	}

	for _, tc := range cases {
		reserve0 := big.NewInt(tc.reserve0)
		reserve1 := big.NewInt(tc.reserve1)
		total := big.NewInt(tc.total)
		amount0 := big.NewInt(tc.amount0)
		amount1 := big.NewInt(tc.amount1)

		minted, err := SharesForDeposit(reserve0, reserve1, total, amount0, amount1)
		if err != nil {
			t.Fatalf("deposit %+v: %v", tc, err)
		}

		newReserve0 := new(big.Int).Add(reserve0, amount0)
		newReserve1 := new(big.Int).Add(reserve1, amount1)
		newTotal := new(big.Int).Add(total, minted)

		out0, out1, err := AmountsForRedeem(newReserve0, newReserve1, newTotal, minted)
		if err != nil {
			t.Fatalf("redeem %+v: %v", tc, err)
		}
		if out0.Cmp(amount0) > 0 || out1.Cmp(amount1) > 0 {
			t.Fatalf("round trip profited: in (%s, %s), out (%s, %s)", amount0, amount1, out0, out1)
		}
	}
}
