package engine

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/amm"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/events"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/model"
)

// Transferor moves asset balances between external custody and the engine.
// Each call is atomic: it either fully applies or reports an error.
type Transferor interface {
	TransferIn(ctx context.Context, asset, from common.Address, amount *big.Int) error
	TransferOut(ctx context.Context, asset, to common.Address, amount *big.Int) error
}

// Engine owns the pool registry and coordinates all state transitions.
type Engine struct {
	registryMu sync.RWMutex
	pools      map[common.Hash]*pool
	transfer   Transferor
	sink       events.Sink
	logger     *zap.Logger
	clock      func() time.Time
}

// NewEngine builds an Engine with its collaborators.
func NewEngine(transfer Transferor, sink events.Sink, logger *zap.Logger) *Engine {
	if sink == nil {
		sink = events.NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		pools:    make(map[common.Hash]*pool),
		transfer: transfer,
		sink:     sink,
		logger:   logger,
		clock:    time.Now,
	}
}

// WithClock overrides the event timestamp clock for deterministic tests.
func (e *Engine) WithClock(clock func() time.Time) {
	if clock != nil {
		e.clock = clock
	}
}

// CreatePool registers an empty pool for the asset pair. Pool creation is
// explicit: referencing a pair before CreatePool fails with a not-found
// error, and a duplicate CreatePool fails rather than resetting state.
func (e *Engine) CreatePool(assetA, assetB common.Address) (common.Hash, error) {
	key, err := amm.PoolKey(assetA, assetB)
	if err != nil {
		return common.Hash{}, err
	}
	asset0, asset1 := amm.SortAssets(assetA, assetB)

	e.registryMu.Lock()
	if _, ok := e.pools[key]; ok {
		e.registryMu.Unlock()
		return common.Hash{}, fmt.Errorf("create pool %s/%s: %w", asset0.Hex(), asset1.Hex(), amm.ErrPoolExists)
	}
	e.pools[key] = newPool(asset0, asset1)
	e.registryMu.Unlock()

	e.emit(key, model.EventPoolCreated, model.PoolCreatedData{
		Asset0: asset0.Hex(),
		Asset1: asset1.Hex(),
	})
	e.logger.Info("pool created",
		zap.String("pool_key", key.Hex()),
		zap.String("asset0", asset0.Hex()),
		zap.String("asset1", asset1.Hex()),
	)
	return key, nil
}

// AddLiquidity deposits both assets into the pair's pool and mints shares to
// the provider. The whole transition is all-or-nothing.
func (e *Engine) AddLiquidity(ctx context.Context, provider, assetA, assetB common.Address, amountA, amountB *big.Int) (*big.Int, error) {
	if amountA == nil || amountB == nil || amountA.Sign() <= 0 || amountB.Sign() <= 0 {
		return nil, amm.ErrInvalidInput
	}
	amount0, amount1 := amountA, amountB
	if asset0, _ := amm.SortAssets(assetA, assetB); asset0 != assetA {
		amount0, amount1 = amountB, amountA
	}

	p, key, unlock, err := e.acquire(assetA, assetB)
	if err != nil {
		return nil, err
	}
	defer unlock()

	minted, err := amm.SharesForDeposit(p.reserve0, p.reserve1, p.totalShares, amount0, amount1)
	if err != nil {
		return nil, err
	}

	if err := e.transfer.TransferIn(ctx, p.asset0, provider, amount0); err != nil {
		return nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}
	if err := e.transfer.TransferIn(ctx, p.asset1, provider, amount1); err != nil {
		e.refund(ctx, p.asset0, provider, amount0)
		return nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}

	p.stateMu.Lock()
	p.reserve0.Add(p.reserve0, amount0)
	p.reserve1.Add(p.reserve1, amount1)
	p.totalShares.Add(p.totalShares, minted)
	shares := p.positions[provider]
	if shares == nil {
		shares = new(big.Int)
		p.positions[provider] = shares
	}
	shares.Add(shares, minted)
	p.stateMu.Unlock()

	e.emit(key, model.EventLiquidityAdded, model.LiquidityAddedData{
		Provider:     provider.Hex(),
		Amount0:      amount0.String(),
		Amount1:      amount1.String(),
		SharesMinted: minted.String(),
	})
	return new(big.Int).Set(minted), nil
}

// RemoveLiquidity burns the provider's shares and pays out the proportional
// reserves, floored. Dust stays with the remaining shareholders.
func (e *Engine) RemoveLiquidity(ctx context.Context, provider, assetA, assetB common.Address, shares *big.Int) (*big.Int, *big.Int, error) {
	if shares == nil || shares.Sign() <= 0 {
		return nil, nil, amm.ErrInvalidInput
	}

	p, key, unlock, err := e.acquire(assetA, assetB)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	owned := p.position(provider)
	if owned.Cmp(shares) < 0 {
		return nil, nil, fmt.Errorf("own %s, redeem %s: %w", owned, shares, amm.ErrInsufficientShares)
	}

	amount0, amount1, err := amm.AmountsForRedeem(p.reserve0, p.reserve1, p.totalShares, shares)
	if err != nil {
		return nil, nil, err
	}

	if err := e.transfer.TransferOut(ctx, p.asset0, provider, amount0); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}
	if err := e.transfer.TransferOut(ctx, p.asset1, provider, amount1); err != nil {
		e.reclaim(ctx, p.asset0, provider, amount0)
		return nil, nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}

	p.stateMu.Lock()
	p.reserve0.Sub(p.reserve0, amount0)
	p.reserve1.Sub(p.reserve1, amount1)
	p.totalShares.Sub(p.totalShares, shares)
	remaining := p.positions[provider]
	remaining.Sub(remaining, shares)
	if remaining.Sign() == 0 {
		delete(p.positions, provider)
	}
	p.stateMu.Unlock()

	e.emit(key, model.EventLiquidityRemoved, model.LiquidityRemovedData{
		Provider:     provider.Hex(),
		Amount0:      amount0.String(),
		Amount1:      amount1.String(),
		SharesBurned: shares.String(),
	})
	return amount0, amount1, nil
}

// Swap trades amountIn of assetIn for assetOut against the pair's pool under
// the constant-product rule. The computed output must meet the caller's
// minAmountOut floor and must leave the output reserve non-empty.
func (e *Engine) Swap(ctx context.Context, caller, assetIn, assetOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, amm.ErrInvalidInput
	}
	if minAmountOut == nil {
		minAmountOut = new(big.Int)
	}

	p, key, unlock, err := e.acquire(assetIn, assetOut)
	if err != nil {
		return nil, err
	}
	defer unlock()

	reserveIn, reserveOut := p.reserve0, p.reserve1
	if assetIn == p.asset1 {
		reserveIn, reserveOut = p.reserve1, p.reserve0
	}

	amountOut, err := amm.GetAmountOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut.Cmp(minAmountOut) < 0 {
		return nil, fmt.Errorf("out %s below floor %s: %w", amountOut, minAmountOut, amm.ErrSlippageExceeded)
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("out %s would drain reserve %s: %w", amountOut, reserveOut, amm.ErrInsufficientLiquidity)
	}

	if err := e.transfer.TransferIn(ctx, assetIn, caller, amountIn); err != nil {
		return nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}
	if err := e.transfer.TransferOut(ctx, assetOut, caller, amountOut); err != nil {
		e.refund(ctx, assetIn, caller, amountIn)
		return nil, fmt.Errorf("%w: %w", amm.ErrTransferFailed, err)
	}

	p.stateMu.Lock()
	reserveIn.Add(reserveIn, amountIn)
	reserveOut.Sub(reserveOut, amountOut)
	p.stateMu.Unlock()

	e.emit(key, model.EventSwap, model.SwapData{
		Caller:    caller.Hex(),
		AssetIn:   assetIn.Hex(),
		AssetOut:  assetOut.Hex(),
		AmountIn:  amountIn.String(),
		AmountOut: amountOut.String(),
	})
	return amountOut, nil
}

// acquire looks up the pair's pool and takes its operation lock. A busy pool
// means a mutating call is already in flight, either a genuine nested call
// from the transfer collaborator or a concurrent caller; both are rejected.
func (e *Engine) acquire(assetA, assetB common.Address) (*pool, common.Hash, func(), error) {
	key, err := amm.PoolKey(assetA, assetB)
	if err != nil {
		return nil, common.Hash{}, nil, err
	}

	e.registryMu.RLock()
	p, ok := e.pools[key]
	e.registryMu.RUnlock()
	if !ok {
		return nil, common.Hash{}, nil, fmt.Errorf("pair %s/%s: %w", assetA.Hex(), assetB.Hex(), amm.ErrPoolNotFound)
	}

	if !p.opMu.TryLock() {
		return nil, common.Hash{}, nil, fmt.Errorf("pool %s busy: %w", key.Hex(), amm.ErrReentrant)
	}
	return p, key, p.opMu.Unlock, nil
}

// refund returns already-collected input to the caller after a later step
// failed. Failure here is logged; the engine's own accounting was never
// touched, so pool state stays consistent either way.
func (e *Engine) refund(ctx context.Context, asset, to common.Address, amount *big.Int) {
	if err := e.transfer.TransferOut(ctx, asset, to, amount); err != nil {
		e.logger.Error("refund failed",
			zap.String("asset", asset.Hex()),
			zap.String("to", to.Hex()),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
	}
}

// reclaim pulls back an already-paid-out amount after a later payout failed.
func (e *Engine) reclaim(ctx context.Context, asset, from common.Address, amount *big.Int) {
	if err := e.transfer.TransferIn(ctx, asset, from, amount); err != nil {
		e.logger.Error("reclaim failed",
			zap.String("asset", asset.Hex()),
			zap.String("from", from.Hex()),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
	}
}

func (e *Engine) emit(key common.Hash, name string, decoded interface{}) {
	event := model.Event{
		Name:      name,
		PoolKey:   key.Hex(),
		Timestamp: e.clock().UTC().Format(time.RFC3339Nano),
		Decoded:   decoded,
	}
	if err := e.sink.Publish(event); err != nil {
		e.logger.Warn("event publish failed", zap.String("name", name), zap.Error(err))
	}
}
