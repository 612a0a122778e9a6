package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dramoir/dramoir-backend/internal/codes"
	"github.com/dramoir/dramoir-backend/internal/database"
	"github.com/dramoir/dramoir-backend/internal/handlers"
	"github.com/dramoir/dramoir-backend/internal/middleware"
	"github.com/dramoir/dramoir-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// One-time code manager and background mailer
	codeMgr := codes.NewManager(db)
	mailer := services.NewMailer()
	go mailer.Run()
	defer mailer.Close()

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "/app/uploads"
	}
	r.Static("/uploads", uploadDir)

	// Routes
	api := r.Group("/api")
	{
		api.GET("/", handlers.HomePage(db))

		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db, codeMgr, mailer))
			auth.POST("/verify-email", handlers.VerifyEmail(db, codeMgr))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/token/refresh", handlers.RefreshToken(db))
			auth.POST("/forgot-password", handlers.ForgotPassword(db, codeMgr, mailer))
			auth.POST("/reset-password", handlers.ResetPassword(db, codeMgr))
		}

		// Catalog browsing
		catalog := api.Group("/main")
		{
			catalog.GET("/search", handlers.Search(db))
			catalog.GET("/movies", handlers.ListMovies(db))
			catalog.GET("/movies/:id", handlers.GetMovie(db))
			catalog.GET("/series", handlers.ListSeries(db))
			catalog.GET("/series/:id", handlers.GetSeries(db))
			catalog.GET("/genres/:name", handlers.GetGenre(db))
			catalog.GET("/countries/:name", handlers.GetCountry(db))
			catalog.GET("/languages/:name", handlers.GetLanguage(db))
			catalog.GET("/schedule", handlers.GetSchedule(db))
			catalog.GET("/short-descriptions/:id", handlers.GetShortDescription(db))
		}

		// Support tickets and content requests
		ticket := api.Group("/ticket")
		{
			ticket.POST("/tickets", handlers.CreateTicket(db))
			ticket.GET("/tickets", handlers.ListTickets(db))
			ticket.GET("/tickets/:id", handlers.GetTicket(db))
			ticket.DELETE("/tickets/:id", handlers.DeleteTicket(db))
			ticket.POST("/tickets/:id/replies", handlers.ReplyToTicket(db))

			ticket.POST("/requests", handlers.CreateRequest(db))
			ticket.GET("/requests", handlers.ListRequests(db))
			ticket.GET("/requests/:id", handlers.GetRequest(db))
			ticket.DELETE("/requests/:id", handlers.DeleteRequest(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/profile/picture", handlers.UploadProfilePicture(db))
			}

			favorites := protected.Group("/favorites")
			{
				favorites.GET("", handlers.GetFavorites(db))
				favorites.POST("", handlers.AddFavorite(db))
				favorites.DELETE("/:contentId", handlers.RemoveFavorite(db))
			}

			watch := protected.Group("/watch-history")
			{
				watch.GET("", handlers.GetWatchHistory(db))
				watch.POST("", handlers.RecordWatch(db))
				watch.GET("/stats", handlers.GetWatchHistoryStats(db))
				watch.DELETE("/:contentId", handlers.DeleteWatchHistory(db))
			}

			staff := protected.Group("/ticket")
			{
				staff.POST("/tickets/:id/staff-replies", handlers.StaffReplyToTicket(db, hub))
				staff.PATCH("/tickets/:id/status", handlers.UpdateTicketStatus(db, hub))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
