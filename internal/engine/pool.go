package engine

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/model"
)

// pool holds the authoritative state for one trading pair.
//
// opMu serializes mutating operations and doubles as the re-entrancy guard:
// it is acquired with TryLock and held across the external transfer calls, so
// a nested call from the transfer collaborator finds it taken and is rejected.
// stateMu guards the fields themselves and is only held for in-memory reads
// and commits, never across an external call.
type pool struct {
	opMu    sync.Mutex
	stateMu sync.RWMutex

	asset0      common.Address
	asset1      common.Address
	reserve0    *big.Int
	reserve1    *big.Int
	totalShares *big.Int
	positions   map[common.Address]*big.Int
}

func newPool(asset0, asset1 common.Address) *pool {
	return &pool{
		asset0:      asset0,
		asset1:      asset1,
		reserve0:    new(big.Int),
		reserve1:    new(big.Int),
		totalShares: new(big.Int),
		positions:   make(map[common.Address]*big.Int),
	}
}

func (p *pool) position(provider common.Address) *big.Int {
	if shares, ok := p.positions[provider]; ok {
		return new(big.Int).Set(shares)
	}
	return new(big.Int)
}

func (p *pool) record(key common.Hash) model.Pool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return model.Pool{
		Key:         key.Hex(),
		Asset0:      p.asset0.Hex(),
		Asset1:      p.asset1.Hex(),
		Reserve0:    p.reserve0.String(),
		Reserve1:    p.reserve1.String(),
		TotalShares: p.totalShares.String(),
	}
}
