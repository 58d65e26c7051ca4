package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/amm"
)

// Token describes a registered project token.
type Token struct {
	Asset  common.Address
	Symbol string
	Name   string
	Owner  common.Address
}

// TokenRegistry tracks registered tokens and their owners. Lookups return an
// explicit found flag rather than a zero sentinel.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[common.Address]Token
	ledger *Ledger
}

func NewTokenRegistry(ledger *Ledger) *TokenRegistry {
	return &TokenRegistry{
		tokens: make(map[common.Address]Token),
		ledger: ledger,
	}
}

// Register creates a token owned by owner. The asset address is derived from
// the symbol, so re-registering a symbol fails.
func (r *TokenRegistry) Register(symbol, name string, owner common.Address) (Token, error) {
	if symbol == "" {
		return Token{}, fmt.Errorf("token symbol required: %w", amm.ErrInvalidInput)
	}
	asset := common.BytesToAddress(crypto.Keccak256([]byte(symbol))[12:])

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[asset]; ok {
		return Token{}, fmt.Errorf("token %s already registered", symbol)
	}
	token := Token{Asset: asset, Symbol: symbol, Name: name, Owner: owner}
	r.tokens[asset] = token
	return token, nil
}

// TokenByAsset looks up a token by its asset address.
func (r *TokenRegistry) TokenByAsset(asset common.Address) (Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[asset]
	return token, ok
}

// Mint credits newly issued tokens to an account. Only the token owner may mint.
func (r *TokenRegistry) Mint(asset, caller, to common.Address, amount *big.Int) error {
	r.mu.RLock()
	token, ok := r.tokens[asset]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("token %s not registered", asset.Hex())
	}
	if token.Owner != caller {
		return fmt.Errorf("mint %s by %s: %w", token.Symbol, caller.Hex(), amm.ErrUnauthorized)
	}
	return r.ledger.Credit(asset, to, amount)
}
