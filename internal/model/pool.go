package model

// Pool is the externally visible state of one trading pair. Reserve and
// share amounts are decimal strings so arbitrary-precision values survive
// JSON encoding.
type Pool struct {
	Key         string `json:"key"`
	Asset0      string `json:"asset0"`
	Asset1      string `json:"asset1"`
	Reserve0    string `json:"reserve0"`
	Reserve1    string `json:"reserve1"`
	TotalShares string `json:"total_shares"`
}

// PoolRecord is a pool together with every provider position, as persisted
// in snapshots.
type PoolRecord struct {
	Pool
	Positions map[string]string `json:"positions"`
}

// Position is a provider's share balance in one pool.
type Position struct {
	Key      string `json:"key"`
	Provider string `json:"provider"`
	Shares   string `json:"shares"`
}
