package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/config"
	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/handler"
	"github.com/stock-ahora/truestock-api/internal/middleware"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/notify"
	"github.com/stock-ahora/truestock-api/internal/state"
	"github.com/stock-ahora/truestock-api/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	if err := database.DB.AutoMigrate(&models.ClientState{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 4. Build the stores and the gateway client
	kv := state.NewDatabaseKV(database.DB)
	notifications := notify.NewStore(kv, logger)
	drafts := state.NewDraftStore(kv,
		time.Duration(config.AppConfig.App.DraftFlushMs)*time.Millisecond, logger)
	upstream := gateway.New(config.AppConfig.Gateway.BaseURL, config.AppConfig.Gateway.APIKey, logger)

	// 5. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "client-account-id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. Setup Routes

	// Passthrough proxy routes used directly by the dashboard
	proxyHandler := &handler.StockProxyHandler{Gateway: upstream, Notifications: notifications, Log: logger}
	r.GET("/api/stock/products", proxyHandler.ListProducts)
	r.POST("/api/stock/request", proxyHandler.CreateRequest)

	dashboardHandler := &handler.DashboardHandler{Gateway: upstream, Notifications: notifications, Log: logger}
	r.GET("/api/v1/dashboard", middleware.AuthMiddleware(), dashboardHandler.GetDashboard)

	inventoryHandler := &handler.InventoryHandler{Gateway: upstream, Notifications: notifications, Log: logger}
	invRoutes := r.Group("/api/v1/inventory")
	invRoutes.Use(middleware.AuthMiddleware())
	{
		invRoutes.GET("/products", inventoryHandler.ListProducts)
		invRoutes.GET("/summary", inventoryHandler.GetSummary)
		invRoutes.GET("/alerts", inventoryHandler.GetLowStockAlerts)
		invRoutes.POST("/alerts/scan", inventoryHandler.ScanLowStock)
	}

	requestsHandler := &handler.RequestsHandler{Gateway: upstream, Log: logger}
	requestRoutes := r.Group("/api/v1/requests")
	requestRoutes.Use(middleware.AuthMiddleware())
	{
		requestRoutes.GET("", requestsHandler.List)
		requestRoutes.GET("/:id", requestsHandler.Get)
	}

	reportsHandler := &handler.ReportsHandler{Gateway: upstream, Log: logger}
	forecastHandler := &handler.ForecastHandler{Gateway: upstream, Log: logger}
	r.GET("/api/v1/reports/requests", middleware.AuthMiddleware(), reportsHandler.GetRequestsReport)
	r.GET("/api/v1/forecast", middleware.AuthMiddleware(), forecastHandler.GetForecast)

	notificationHandler := &handler.NotificationHandler{Store: notifications, Gateway: upstream, Log: logger}
	notificationRoutes := r.Group("/api/v1/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware())
	{
		notificationRoutes.GET("", notificationHandler.List)
		notificationRoutes.POST("", notificationHandler.Add)
		notificationRoutes.POST("/sync", notificationHandler.Sync)
		notificationRoutes.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notificationRoutes.PUT("/:id/read", notificationHandler.MarkAsRead)
		notificationRoutes.DELETE("/:id", notificationHandler.Remove)
		notificationRoutes.DELETE("", notificationHandler.ClearAll)
	}

	settingsHandler := &handler.SettingsHandler{KV: kv, Notifications: notifications, Log: logger}
	draftsHandler := &handler.DraftsHandler{Drafts: drafts}
	stateRoutes := r.Group("/api/v1")
	stateRoutes.Use(middleware.AuthMiddleware())
	{
		stateRoutes.GET("/settings", settingsHandler.Get)
		stateRoutes.PUT("/settings", settingsHandler.Update)
		stateRoutes.GET("/drafts/:key", draftsHandler.Get)
		stateRoutes.PUT("/drafts/:key", draftsHandler.Put)
		stateRoutes.DELETE("/drafts/:key", draftsHandler.Delete)
	}

	metaHandler := &handler.MetaHandler{Gateway: upstream}
	r.GET("/api/v1/public/config", metaHandler.GetPublicConfig)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server with graceful shutdown so pending draft writes flush
	port := config.AppConfig.Server.Port
	srv := &http.Server{Addr: ":" + port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	drafts.Close()
	log.Println("Server stopped")
}
