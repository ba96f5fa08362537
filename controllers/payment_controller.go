package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
	"github.com/adnankas/coinrush_backend/services"
	"github.com/adnankas/coinrush_backend/utils"
)

// PaymentController handles coin purchases through the payment gateway
type PaymentController struct {
	players repositories.PlayerStore
	gateway services.PaymentGateway
	ledger  services.OrderLedger
}

// NewPaymentController creates a new payment controller
func NewPaymentController(players repositories.PlayerStore, gateway services.PaymentGateway, ledger services.OrderLedger) *PaymentController {
	return &PaymentController{players: players, gateway: gateway, ledger: ledger}
}

// CreateOrder asks the gateway for a coin purchase order
func (pc *PaymentController) CreateOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Coins <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Coins must be a positive number",
		})
	}

	name := models.NormalizePlayerName(req.Player)
	if _, err := pc.players.Resolve(ctx, name); err != nil {
		c.Logger().Errorf("failed to resolve player: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to load wallet",
		})
	}

	// Player and coin count ride along as opaque order metadata.
	order, err := pc.gateway.CreateOrder(utils.CoinsToPaise(req.Coins), "INR", uuid.New().String(), map[string]string{
		"player": name,
		"coins":  strconv.FormatInt(req.Coins, 10),
	})
	if err != nil {
		c.Logger().Errorf("gateway order creation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to create payment order",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key":      pc.gateway.KeyID(),
	})
}

// VerifyPayment checks the gateway signature and credits the purchased coins.
// A captured order cannot credit twice.
func (pc *PaymentController) VerifyPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Missing payment verification fields",
		})
	}

	if !pc.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Payment signature mismatch",
		})
	}

	first, err := pc.ledger.MarkCaptured(ctx, req.OrderID)
	if err != nil {
		c.Logger().Errorf("order ledger failure: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to record payment",
		})
	}
	if !first {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Payment already captured",
		})
	}

	name := models.NormalizePlayerName(req.Player)
	balance, err := pc.players.Credit(ctx, name, utils.ParseCoins(req.Coins))
	if err != nil {
		c.Logger().Errorf("failed to credit coins: %v", err)
		// Give the capture back so a retry of the same order can credit.
		if rerr := pc.ledger.Release(ctx, req.OrderID); rerr != nil {
			c.Logger().Errorf("failed to release captured order %s: %v", req.OrderID, rerr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to credit coins",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"player":  name,
		"balance": balance,
	})
}
