package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
	"github.com/adnankas/coinrush_backend/utils"
)

// WithdrawalController handles player-side payout requests and history
type WithdrawalController struct {
	players repositories.PlayerStore
}

// NewWithdrawalController creates a new withdrawal controller
func NewWithdrawalController(players repositories.PlayerStore) *WithdrawalController {
	return &WithdrawalController{players: players}
}

// RequestWithdrawal debits coins immediately and appends a pending payout record
func (wc *WithdrawalController) RequestWithdrawal(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil || !strings.Contains(req.UpiID, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "A valid UPI ID is required",
		})
	}

	if req.Coins < models.MinWithdrawalCoins {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Minimum withdrawal is 1000 coins",
		})
	}

	name := models.NormalizePlayerName(req.Player)
	rec := models.WithdrawalRecord{
		Coins:          req.Coins,
		AmountInRupees: utils.CoinsToRupees(req.Coins),
		UpiID:          req.UpiID,
		Status:         models.WithdrawalStatusPending,
		CreatedAt:      time.Now(),
	}

	balance, history, err := wc.players.Withdraw(ctx, name, rec)
	if err != nil {
		if err == repositories.ErrInsufficientBalance {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Insufficient balance",
			})
		}
		c.Logger().Errorf("failed to create withdrawal: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to create withdrawal request",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"player":      name,
		"balance":     balance,
		"withdrawals": history,
	})
}

// GetHistory returns the player's own withdrawal records
func (wc *WithdrawalController) GetHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := models.NormalizePlayerName(c.QueryParam("player"))
	history, err := wc.players.History(ctx, name)
	if err != nil {
		c.Logger().Errorf("failed to load withdrawal history: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to load withdrawal history",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"player":      name,
		"withdrawals": history,
	})
}
