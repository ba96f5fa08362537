package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/adnankas/coinrush_backend/controllers"
	"github.com/adnankas/coinrush_backend/middleware"
)

// RegisterAdminRoutes sets up the admin review endpoints behind the admin gate
func RegisterAdminRoutes(e *echo.Echo, admin *controllers.AdminController, auth middleware.Authorizer) {
	group := e.Group("/api/admin")

	// Login is only meaningful when the JWT gate is configured; with the
	// static token gate the shared secret goes straight into the header.
	if _, ok := auth.(*middleware.JWTAuthorizer); ok {
		group.POST("/login", admin.Login)
	}

	protected := group.Group("")
	protected.Use(middleware.RequireAdmin(auth))

	protected.GET("/withdrawals", admin.ListWithdrawals)
	protected.POST("/withdrawals/update", admin.UpdateWithdrawal)

	protected.GET("/manual-payments", admin.ListManualPayments)
	protected.POST("/manual-approve", admin.ApproveManualPayment)
	protected.POST("/manual-reject", admin.RejectManualPayment)
}
