package model

// Event names emitted by the pool registry.
const (
	EventPoolCreated      = "pool_created"
	EventLiquidityAdded   = "liquidity_added"
	EventLiquidityRemoved = "liquidity_removed"
	EventSwap             = "swap"
)

// Event is an emitted domain event with its decoded payload.
type Event struct {
	Name      string      `json:"name"`
	PoolKey   string      `json:"pool_key"`
	Timestamp string      `json:"timestamp"`
	Decoded   interface{} `json:"decoded"`
}

// PoolCreatedData is the pool_created payload.
type PoolCreatedData struct {
	Asset0 string `json:"asset0"`
	Asset1 string `json:"asset1"`
}

// LiquidityAddedData is the liquidity_added payload.
type LiquidityAddedData struct {
	Provider     string `json:"provider"`
	Amount0      string `json:"amount0"`
	Amount1      string `json:"amount1"`
	SharesMinted string `json:"shares_minted"`
}

// LiquidityRemovedData is the liquidity_removed payload.
type LiquidityRemovedData struct {
	Provider     string `json:"provider"`
	Amount0      string `json:"amount0"`
	Amount1      string `json:"amount1"`
	SharesBurned string `json:"shares_burned"`
}

// SwapData is the swap payload.
type SwapData struct {
	Caller    string `json:"caller"`
	AssetIn   string `json:"asset_in"`
	AssetOut  string `json:"asset_out"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}
