package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/adnankas/coinrush_backend/config"
	"github.com/adnankas/coinrush_backend/controllers"
	"github.com/adnankas/coinrush_backend/middleware"
	"github.com/adnankas/coinrush_backend/repositories"
	"github.com/adnankas/coinrush_backend/routes"
	"github.com/adnankas/coinrush_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Pick the store backend; memory is the default and loses everything on
	// restart, mongo survives.
	var (
		players repositories.PlayerStore
		claims  repositories.ManualPaymentStore
	)
	if os.Getenv("STORE_BACKEND") == "mongo" {
		db := config.GetDatabase(config.ConnectDB())
		players = repositories.NewMongoPlayerStore(db)
		claims = repositories.NewMongoManualPaymentStore(db)
	} else {
		players = repositories.NewMemoryPlayerStore()
		claims = repositories.NewMemoryManualPaymentStore()
	}

	// The capture ledger moves to Redis when one is reachable so a replayed
	// payment proof stays blocked across restarts.
	var ledger services.OrderLedger
	if redisClient := config.ConnectRedis(); redisClient != nil {
		ledger = services.NewRedisOrderLedger(redisClient)
	} else {
		ledger = services.NewMemoryOrderLedger()
	}

	gateway := services.NewRazorpayService()
	authorizer := middleware.NewAuthorizerFromEnv()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Coinrush backend is running",
			"version": "1.0",
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	// Initialize controllers
	walletController := controllers.NewWalletController(players)
	paymentController := controllers.NewPaymentController(players, gateway, ledger)
	withdrawalController := controllers.NewWithdrawalController(players)
	manualPaymentController := controllers.NewManualPaymentController(claims)

	var jwtAuth *middleware.JWTAuthorizer
	if a, ok := authorizer.(*middleware.JWTAuthorizer); ok {
		jwtAuth = a
	}
	adminController := controllers.NewAdminController(players, claims, jwtAuth)

	routes.RegisterMainRoutes(e, walletController, paymentController, withdrawalController, manualPaymentController)
	routes.RegisterAdminRoutes(e, adminController, authorizer)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
