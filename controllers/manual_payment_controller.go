package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
)

// ManualPaymentController accepts player-reported bank transfer claims
type ManualPaymentController struct {
	claims repositories.ManualPaymentStore
}

// NewManualPaymentController creates a new manual payment controller
func NewManualPaymentController(claims repositories.ManualPaymentStore) *ManualPaymentController {
	return &ManualPaymentController{claims: claims}
}

// SubmitClaim files a pending claim for admin review. txnIds are not
// deduplicated; the admin verifies them against the real channel.
func (mc *ManualPaymentController) SubmitClaim(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ManualAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil || strings.TrimSpace(req.Player) == "" || strings.TrimSpace(req.TxnID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Player, amount and txnId are required",
		})
	}

	// The cap keeps the rupee-to-coin conversion at approval inside int64.
	if req.Amount > models.MaxManualClaimRupees {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Amount exceeds the maximum claim",
		})
	}

	claim, err := mc.claims.Append(ctx, models.ManualPayment{
		Player: strings.TrimSpace(req.Player),
		Amount: req.Amount,
		TxnID:  strings.TrimSpace(req.TxnID),
	})
	if err != nil {
		c.Logger().Errorf("failed to store manual payment claim: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to submit claim",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Payment claim submitted for review",
		"claim":   claim,
	})
}
