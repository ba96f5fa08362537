package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/controllers"
)

// RegisterMainRoutes sets up the player-facing API
func RegisterMainRoutes(e *echo.Echo, wallet *controllers.WalletController, payment *controllers.PaymentController, withdrawal *controllers.WithdrawalController, manual *controllers.ManualPaymentController) {
	api := e.Group("/api")

	// Wallet
	api.GET("/wallet", wallet.GetWallet)
	api.POST("/wallet/set-balance", wallet.SetBalance)

	// Coin purchase through the gateway
	api.POST("/create-order", payment.CreateOrder)
	api.POST("/payment/verify", payment.VerifyPayment)

	// Withdrawals
	api.POST("/withdraw-request", withdrawal.RequestWithdrawal)
	api.GET("/withdraw-history", withdrawal.GetHistory)

	// Manual transfer claims
	api.POST("/manual-add", manual.SubmitClaim)
}
