// Package ledger provides the in-memory asset ledger the engine settles
// against: externally-held balances, the transfer collaborator contract, and
// a small token registry for project tokens.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/amm"
)

// ErrInsufficientFunds reports a transfer the sender's balance cannot cover.
var ErrInsufficientFunds = errors.New("insufficient funds")

// custodyAccount holds every balance transferred into the engine.
var custodyAccount = common.HexToAddress("0x00000000000000000000000000000000000dEx")

// Ledger tracks asset balances per account. All mutations are atomic.
type Ledger struct {
	mu       sync.RWMutex
	balances map[common.Address]map[common.Address]*big.Int
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[common.Address]map[common.Address]*big.Int),
	}
}

// Balance returns the account's balance of asset.
func (l *Ledger) Balance(asset, account common.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if accounts, ok := l.balances[asset]; ok {
		if balance, ok := accounts[account]; ok {
			return new(big.Int).Set(balance)
		}
	}
	return new(big.Int)
}

// Credit adds amount to the account's balance of asset.
func (l *Ledger) Credit(asset, account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return amm.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(asset, account, amount)
	return nil
}

// TransferIn debits the sender's external balance into engine custody.
func (l *Ledger) TransferIn(ctx context.Context, asset, from common.Address, amount *big.Int) error {
	return l.move(ctx, asset, from, custodyAccount, amount)
}

// TransferOut credits the recipient from engine custody.
func (l *Ledger) TransferOut(ctx context.Context, asset, to common.Address, amount *big.Int) error {
	return l.move(ctx, asset, custodyAccount, to, amount)
}

func (l *Ledger) move(ctx context.Context, asset, from, to common.Address, amount *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return amm.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balance(asset, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("asset %s account %s: balance %s below %s: %w", asset.Hex(), from.Hex(), balance, amount, ErrInsufficientFunds)
	}
	balance.Sub(balance, amount)
	l.credit(asset, to, amount)
	return nil
}

// balance returns the live balance entry, creating it at zero.
func (l *Ledger) balance(asset, account common.Address) *big.Int {
	accounts := l.balances[asset]
	if accounts == nil {
		accounts = make(map[common.Address]*big.Int)
		l.balances[asset] = accounts
	}
	balance := accounts[account]
	if balance == nil {
		balance = new(big.Int)
		accounts[account] = balance
	}
	return balance
}

func (l *Ledger) credit(asset, account common.Address, amount *big.Int) {
	balance := l.balance(asset, account)
	balance.Add(balance, amount)
}
