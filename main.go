// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-bet-tips/controllers"
	"go-bet-tips/logger"
	"go-bet-tips/middleware"
	"go-bet-tips/services"
	"go-bet-tips/store"
	"go-bet-tips/websocket"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("main: no .env file found, using process environment")
	}

	appEnv := os.Getenv("APP_ENV")
	logger.SetLogLevel(appEnv)
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Durable storage surface
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	fileStore, err := store.NewFileStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory %s: %v", dataDir, err)
	}

	// Entity repositories
	users := store.NewUserRepo(fileStore)
	predictions := store.NewPredictionRepo(fileStore)
	comments := store.NewCommentRepo(fileStore)
	settings := store.NewSettingsRepo(fileStore)

	// Session manager and ingestion
	sessionManager := services.NewSessionManager(users, settings, fileStore)
	generator := services.NewGeminiGenerator(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	ingestion := services.NewIngestionService(predictions, generator)
	services.SetIngestionLatencyPublisher(websocket.PublishIngestionLatency)

	// Controllers
	authController := controllers.NewAuthController(sessionManager)
	tipsController := controllers.NewTipsController(predictions, authController, ingestion)
	adminController := controllers.NewAdminController(sessionManager, users, predictions, comments, settings, ingestion)
	contactController := controllers.NewContactController(comments, settings)

	// Router
	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "bet-tips-dev-secret"
	}
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   appEnv == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("bettips", cookieStore))

	router.GET("/health", controllers.Health)
	router.GET("/live", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/register", authController.Register)
		api.POST("/admin-register", authController.AdminRegister)
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)

		api.GET("/home", tipsController.Home)
		api.GET("/tips/free", tipsController.Free)
		api.GET("/tips/vip", tipsController.Vip)
		api.GET("/tips/history", tipsController.History)

		api.GET("/settings", contactController.PublicSettings)
		api.POST("/contact", contactController.AddComment)
		api.GET("/contact/qrcode", contactController.ContactQRCode)
	}

	// Authenticated routes
	profile := api.Group("/profile", middleware.AuthRequired)
	{
		profile.GET("", authController.Profile)
		profile.PUT("", authController.UpdateProfile)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired, middleware.AdminRequired(users))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users/:email/toggle-vip", adminController.ToggleVip)
		admin.POST("/users/:email/promote", adminController.PromoteUser)
		admin.POST("/users/:email/demote", adminController.DemoteUser)
		admin.PUT("/users/:email", adminController.UpdateUser)
		admin.DELETE("/users/:email", adminController.DeleteUser)

		admin.POST("/predictions", adminController.AddPrediction)
		admin.PUT("/predictions/:id", adminController.UpdatePrediction)
		admin.DELETE("/predictions/:id", adminController.DeletePrediction)

		admin.GET("/comments", adminController.ListComments)
		admin.DELETE("/comments/:id", adminController.DeleteComment)

		admin.GET("/settings", adminController.GetSettings)
		admin.PUT("/settings", adminController.UpdateSettings)

		admin.POST("/ingestion/retry", adminController.RetryIngestion)
	}

	// Start the broadcast fan-out
	go websocket.HandleMessages()

	// One-shot catalog bootstrap; a failure is surfaced by the tips routes
	// and can be retried from the admin panel
	go func() {
		if err := ingestion.Run(context.Background()); err != nil {
			logger.Error.Printf("main: prediction bootstrap failed: %v", err)
		} else {
			websocket.BroadcastCatalogChanged("ingestion-completed")
			websocket.PublishCatalogSize(predictions.Count())
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info.Printf("main: listening on :%s (data dir %s)", port, dataDir)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
