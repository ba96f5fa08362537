package controllers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
)

// WalletController exposes balance reads and the raw balance overwrite
type WalletController struct {
	players repositories.PlayerStore
}

// NewWalletController creates a new wallet controller
func NewWalletController(players repositories.PlayerStore) *WalletController {
	return &WalletController{players: players}
}

// GetWallet returns the player's balance, creating the wallet on first contact
func (wc *WalletController) GetWallet(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	player, err := wc.players.Resolve(ctx, c.QueryParam("player"))
	if err != nil {
		c.Logger().Errorf("failed to resolve player: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to load wallet",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"player":  player.Name,
		"balance": player.Balance,
	})
}

// SetBalance overwrites a player's balance with a non-negative coin amount
func (wc *WalletController) SetBalance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SetBalanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Balance == nil || math.IsNaN(*req.Balance) || *req.Balance < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Balance must be a non-negative number",
		})
	}
	// Values past this bound would overflow the int64 conversion below.
	if *req.Balance > float64(models.MaxBalanceCoins) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Balance exceeds the maximum",
		})
	}

	name := models.NormalizePlayerName(req.Player)
	balance, err := wc.players.SetBalance(ctx, name, int64(math.Round(*req.Balance)))
	if err != nil {
		c.Logger().Errorf("failed to set balance: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to update balance",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"player":  name,
		"balance": balance,
	})
}
