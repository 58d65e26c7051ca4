package amm

import "errors"

var (
	// ErrInvalidInput is returned for zero or negative amounts.
	ErrInvalidInput = errors.New("invalid input amount")
	// ErrInvalidPair is returned when both sides of a pair are the same asset.
	ErrInvalidPair = errors.New("assets must be distinct")
	// ErrPoolNotFound is returned when no pool exists for the asset pair.
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPoolExists is returned by CreatePool for a duplicate pair.
	ErrPoolExists = errors.New("pool already exists")
	// ErrInsufficientLiquidityMinted is returned when a deposit floors to zero shares.
	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	// ErrInsufficientAmounts is returned when a redemption floors to zero on either side.
	ErrInsufficientAmounts = errors.New("insufficient redemption amounts")
	// ErrSlippageExceeded is returned when the computed output is below the caller's floor.
	ErrSlippageExceeded = errors.New("slippage exceeded")
	// ErrInsufficientLiquidity is returned when reserves are empty or a swap would drain one side.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrInsufficientShares is returned when redeeming more shares than the provider owns.
	ErrInsufficientShares = errors.New("insufficient share balance")
	// ErrTransferFailed is returned when the external asset transfer collaborator fails.
	ErrTransferFailed = errors.New("asset transfer failed")
	// ErrReentrant is returned when a mutating call finds its pool already busy.
	ErrReentrant = errors.New("reentrant call")
	// ErrNoLiquidity is returned by price queries against an empty reserve.
	ErrNoLiquidity = errors.New("no liquidity")
	// ErrUnauthorized is returned for administrative actions by a non-owner.
	ErrUnauthorized = errors.New("unauthorized")
)
