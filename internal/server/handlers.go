package server

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type createPoolRequest struct {
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var req createPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	assetA, err := parseAddress("asset_a", req.AssetA)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetB, err := parseAddress("asset_b", req.AssetB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.engine.CreatePool(assetA, assetB); err != nil {
		s.fail(c, err)
		return
	}
	pool, err := s.engine.Pool(assetA, assetB)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

func (s *Server) handleGetPool(c *gin.Context) {
	assetA, err := parseAddress("assetA", c.Param("assetA"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetB, err := parseAddress("assetB", c.Param("assetB"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pool, err := s.engine.Pool(assetA, assetB)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

type liquidityRequest struct {
	Provider string `json:"provider"`
	AssetA   string `json:"asset_a"`
	AssetB   string `json:"asset_b"`
	AmountA  string `json:"amount_a"`
	AmountB  string `json:"amount_b"`
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var req liquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	provider, err := parseAddress("provider", req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetA, err := parseAddress("asset_a", req.AssetA)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetB, err := parseAddress("asset_b", req.AssetB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amountA, err := parseAmount("amount_a", req.AmountA)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amountB, err := parseAmount("amount_b", req.AmountB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	minted, err := s.engine.AddLiquidity(c.Request.Context(), provider, assetA, assetB, amountA, amountB)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares_minted": minted.String()})
}

type removeLiquidityRequest struct {
	Provider string `json:"provider"`
	AssetA   string `json:"asset_a"`
	AssetB   string `json:"asset_b"`
	Shares   string `json:"shares"`
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var req removeLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	provider, err := parseAddress("provider", req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetA, err := parseAddress("asset_a", req.AssetA)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetB, err := parseAddress("asset_b", req.AssetB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shares, err := parseAmount("shares", req.Shares)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount0, amount1, err := s.engine.RemoveLiquidity(c.Request.Context(), provider, assetA, assetB, shares)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount0": amount0.String(), "amount1": amount1.String()})
}

type swapRequest struct {
	Caller       string `json:"caller"`
	AssetIn      string `json:"asset_in"`
	AssetOut     string `json:"asset_out"`
	AmountIn     string `json:"amount_in"`
	MinAmountOut string `json:"min_amount_out"`
}

func (s *Server) handleSwap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetIn, err := parseAddress("asset_in", req.AssetIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetOut, err := parseAddress("asset_out", req.AssetOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amountIn, err := parseAmount("amount_in", req.AmountIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minAmountOut := new(big.Int)
	if req.MinAmountOut != "" {
		minAmountOut, err = parseAmountAllowZero("min_amount_out", req.MinAmountOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	amountOut, err := s.engine.Swap(c.Request.Context(), caller, assetIn, assetOut, amountIn, minAmountOut)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount_out": amountOut.String()})
}

func (s *Server) handleQuote(c *gin.Context) {
	amountIn, err := parseAmount("amount_in", c.Query("amount_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reserveIn, err := parseAmount("reserve_in", c.Query("reserve_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reserveOut, err := parseAmount("reserve_out", c.Query("reserve_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountOut, err := s.engine.Quote(amountIn, reserveIn, reserveOut)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount_out": amountOut.String()})
}

func (s *Server) handlePrice(c *gin.Context) {
	assetX, err := parseAddress("asset_x", c.Query("asset_x"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetY, err := parseAddress("asset_y", c.Query("asset_y"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := s.engine.PriceOf(assetX, assetY)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price.String(), "scale": "1000000000000000000"})
}

func (s *Server) handlePosition(c *gin.Context) {
	assetA, err := parseAddress("asset_a", c.Query("asset_a"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assetB, err := parseAddress("asset_b", c.Query("asset_b"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	provider, err := parseAddress("provider", c.Query("provider"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shares, err := s.engine.Position(assetA, assetB, provider)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares.String()})
}

type registerTokenRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Owner  string `json:"owner"`
}

func (s *Server) handleRegisterToken(c *gin.Context) {
	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.tokens.Register(req.Symbol, req.Name, owner)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"asset":  token.Asset.Hex(),
		"symbol": token.Symbol,
		"name":   token.Name,
		"owner":  token.Owner.Hex(),
	})
}

type mintRequest struct {
	Asset  string `json:"asset"`
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (s *Server) handleMint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	asset, err := parseAddress("asset", req.Asset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.tokens.Mint(asset, caller, to, amount); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": s.ledger.Balance(asset, to).String()})
}

func (s *Server) handleBalance(c *gin.Context) {
	asset, err := parseAddress("asset", c.Query("asset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account, err := parseAddress("account", c.Query("account"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": s.ledger.Balance(asset, account).String()})
}

func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("%s address is required", field)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address", field)
	}
	return common.HexToAddress(value), nil
}

func parseAmount(field, value string) (*big.Int, error) {
	amount, err := parseAmountAllowZero(field, value)
	if err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%s must be greater than zero", field)
	}
	return amount, nil
}

func parseAmountAllowZero(field, value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is required", field)
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s format", field)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%s must not be negative", field)
	}
	return amount, nil
}
