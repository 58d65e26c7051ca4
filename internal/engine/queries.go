package engine

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/amm"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/model"
)

// Reserves is a read-only view of one pool's reserves in canonical order.
type Reserves struct {
	Asset0   common.Address
	Asset1   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// GetReserves returns a copy of the pair's reserves.
func (e *Engine) GetReserves(assetA, assetB common.Address) (Reserves, error) {
	p, err := e.lookup(assetA, assetB)
	if err != nil {
		return Reserves{}, err
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return Reserves{
		Asset0:   p.asset0,
		Asset1:   p.asset1,
		Reserve0: new(big.Int).Set(p.reserve0),
		Reserve1: new(big.Int).Set(p.reserve1),
	}, nil
}

// Quote computes the swap output for the given input and reserves without
// touching any pool. It is the pure pricing formula.
func (e *Engine) Quote(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return amm.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// PriceOf quotes assetX in terms of assetY at 1e18 fixed-point scale.
func (e *Engine) PriceOf(assetX, assetY common.Address) (*big.Int, error) {
	p, err := e.lookup(assetX, assetY)
	if err != nil {
		return nil, err
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	reserveX, reserveY := p.reserve0, p.reserve1
	if assetX == p.asset1 {
		reserveX, reserveY = p.reserve1, p.reserve0
	}
	return amm.PriceOf(reserveX, reserveY)
}

// Position returns the provider's share balance in the pair's pool.
func (e *Engine) Position(assetA, assetB, provider common.Address) (*big.Int, error) {
	p, err := e.lookup(assetA, assetB)
	if err != nil {
		return nil, err
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.position(provider), nil
}

// TotalShares returns the pair's outstanding share supply.
func (e *Engine) TotalShares(assetA, assetB common.Address) (*big.Int, error) {
	p, err := e.lookup(assetA, assetB)
	if err != nil {
		return nil, err
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return new(big.Int).Set(p.totalShares), nil
}

// Pool returns the pair's pool as a storage record.
func (e *Engine) Pool(assetA, assetB common.Address) (model.Pool, error) {
	key, err := amm.PoolKey(assetA, assetB)
	if err != nil {
		return model.Pool{}, err
	}
	p, err := e.lookup(assetA, assetB)
	if err != nil {
		return model.Pool{}, err
	}
	return p.record(key), nil
}

// Export snapshots every pool with its positions, sorted by key for
// deterministic output.
func (e *Engine) Export() []model.PoolRecord {
	e.registryMu.RLock()
	defer e.registryMu.RUnlock()

	records := make([]model.PoolRecord, 0, len(e.pools))
	for key, p := range e.pools {
		p.stateMu.RLock()
		positions := make(map[string]string, len(p.positions))
		for provider, shares := range p.positions {
			positions[provider.Hex()] = shares.String()
		}
		records = append(records, model.PoolRecord{
			Pool:      p.record(key),
			Positions: positions,
		})
		p.stateMu.RUnlock()
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records
}

// Restore replaces the registry contents with a previously exported snapshot.
func (e *Engine) Restore(records []model.PoolRecord) error {
	pools := make(map[common.Hash]*pool, len(records))
	for _, rec := range records {
		asset0 := common.HexToAddress(rec.Asset0)
		asset1 := common.HexToAddress(rec.Asset1)
		key, err := amm.PoolKey(asset0, asset1)
		if err != nil {
			return fmt.Errorf("restore pool %s: %w", rec.Key, err)
		}
		if key.Hex() != rec.Key {
			return fmt.Errorf("restore pool %s: key mismatch for %s/%s", rec.Key, rec.Asset0, rec.Asset1)
		}

		p := newPool(asset0, asset1)
		if err := setBig(p.reserve0, rec.Reserve0); err != nil {
			return fmt.Errorf("restore pool %s reserve0: %w", rec.Key, err)
		}
		if err := setBig(p.reserve1, rec.Reserve1); err != nil {
			return fmt.Errorf("restore pool %s reserve1: %w", rec.Key, err)
		}
		if err := setBig(p.totalShares, rec.TotalShares); err != nil {
			return fmt.Errorf("restore pool %s total shares: %w", rec.Key, err)
		}
		positionSum := new(big.Int)
		for provider, shares := range rec.Positions {
			balance := new(big.Int)
			if err := setBig(balance, shares); err != nil {
				return fmt.Errorf("restore pool %s position %s: %w", rec.Key, provider, err)
			}
			p.positions[common.HexToAddress(provider)] = balance
			positionSum.Add(positionSum, balance)
		}

		emptyReserves := p.reserve0.Sign() == 0 && p.reserve1.Sign() == 0
		if emptyReserves != (p.totalShares.Sign() == 0) {
			return fmt.Errorf("restore pool %s: reserves (%s, %s) inconsistent with total shares %s",
				rec.Key, p.reserve0, p.reserve1, p.totalShares)
		}
		if positionSum.Cmp(p.totalShares) != 0 {
			return fmt.Errorf("restore pool %s: positions sum %s does not match total shares %s",
				rec.Key, positionSum, p.totalShares)
		}
		pools[key] = p
	}

	e.registryMu.Lock()
	e.pools = pools
	e.registryMu.Unlock()
	return nil
}

func (e *Engine) lookup(assetA, assetB common.Address) (*pool, error) {
	key, err := amm.PoolKey(assetA, assetB)
	if err != nil {
		return nil, err
	}
	e.registryMu.RLock()
	p, ok := e.pools[key]
	e.registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pair %s/%s: %w", assetA.Hex(), assetB.Hex(), amm.ErrPoolNotFound)
	}
	return p, nil
}

func setBig(dst *big.Int, value string) error {
	if value == "" {
		dst.SetInt64(0)
		return nil
	}
	if _, ok := dst.SetString(value, 10); !ok {
		return fmt.Errorf("invalid integer %q", value)
	}
	if dst.Sign() < 0 {
		return fmt.Errorf("negative amount %q", value)
	}
	return nil
}
