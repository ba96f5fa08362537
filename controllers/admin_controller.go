package controllers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/middleware"
	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
	"github.com/adnankas/coinrush_backend/utils"
)

// AdminController reviews withdrawal requests and manual payment claims
type AdminController struct {
	players repositories.PlayerStore
	claims  repositories.ManualPaymentStore
	jwtAuth *middleware.JWTAuthorizer
}

// NewAdminController creates a new admin controller. jwtAuth may be nil when
// the static token gate is in use.
func NewAdminController(players repositories.PlayerStore, claims repositories.ManualPaymentStore, jwtAuth *middleware.JWTAuthorizer) *AdminController {
	return &AdminController{players: players, claims: claims, jwtAuth: jwtAuth}
}

// Login exchanges the shared admin secret for a signed token (JWT mode only)
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil || req.Secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Secret is required",
		})
	}

	adminSecret := os.Getenv("ADMIN_SECRET")
	if adminSecret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(adminSecret)) != 1 {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "not authorized",
		})
	}

	token, err := ac.jwtAuth.IssueToken()
	if err != nil {
		c.Logger().Errorf("failed to issue admin token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to issue token",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
	})
}

// ListWithdrawals returns every withdrawal across all players, newest first
func (ac *AdminController) ListWithdrawals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	withdrawals, err := ac.players.AllWithdrawals(ctx)
	if err != nil {
		c.Logger().Errorf("failed to list withdrawals: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to list withdrawals",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"withdrawals": withdrawals,
	})
}

// UpdateWithdrawal changes a record's status; txnId and note stick only when
// non-empty. Rejecting a pending record refunds the debited coins.
func (ac *AdminController) UpdateWithdrawal(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdateWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Player == "" || req.Index == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Player and index are required",
		})
	}

	if !models.ValidWithdrawalStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Status must be Pending, Approved or Rejected",
		})
	}

	history, err := ac.players.UpdateWithdrawal(ctx, req.Player, *req.Index, req.Status, req.TxnID, req.Note)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Withdrawal record not found",
			})
		}
		if err == repositories.ErrAlreadyProcessed {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Withdrawal was already processed",
			})
		}
		c.Logger().Errorf("failed to update withdrawal: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to update withdrawal",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"player":      models.NormalizePlayerName(req.Player),
		"withdrawals": history,
	})
}

// ListManualPayments returns all claims in insertion order
func (ac *AdminController) ListManualPayments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims, err := ac.claims.List(ctx)
	if err != nil {
		c.Logger().Errorf("failed to list manual payments: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to list manual payments",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"payments": claims,
	})
}

// ApproveManualPayment marks a pending claim approved and credits the coins.
// The pending-status guard makes a second approval of the same index fail.
func (ac *AdminController) ApproveManualPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ManualDecisionRequest
	if err := c.Bind(&req); err != nil || req.Index == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Index is required",
		})
	}

	claim, err := ac.claims.Decide(ctx, *req.Index, models.ManualPaymentStatusApproved, req.Note)
	if err != nil {
		if err == repositories.ErrNotFound || err == repositories.ErrAlreadyProcessed {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "No pending claim at that index",
			})
		}
		c.Logger().Errorf("failed to approve manual payment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to approve claim",
		})
	}

	balance, err := ac.players.Credit(ctx, claim.Player, utils.RupeesToCoins(claim.Amount))
	if err != nil {
		c.Logger().Errorf("failed to credit approved claim: %v", err)
		// Put the claim back so the approval can be retried.
		if rerr := ac.claims.Reopen(ctx, *req.Index); rerr != nil {
			c.Logger().Errorf("failed to reopen claim %d: %v", *req.Index, rerr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to credit coins",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"player":  claim.Player,
		"balance": balance,
		"claim":   claim,
	})
}

// RejectManualPayment marks a pending claim rejected; no coins move
func (ac *AdminController) RejectManualPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ManualDecisionRequest
	if err := c.Bind(&req); err != nil || req.Index == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Index is required",
		})
	}

	claim, err := ac.claims.Decide(ctx, *req.Index, models.ManualPaymentStatusRejected, req.Note)
	if err != nil {
		if err == repositories.ErrNotFound || err == repositories.ErrAlreadyProcessed {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "No pending claim at that index",
			})
		}
		c.Logger().Errorf("failed to reject manual payment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to reject claim",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"claim":   claim,
	})
}
