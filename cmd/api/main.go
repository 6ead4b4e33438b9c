package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smartjanseva/janseva-api/internal/config"
	"github.com/smartjanseva/janseva-api/internal/handler"
	"github.com/smartjanseva/janseva-api/internal/middleware"
	pgRepo "github.com/smartjanseva/janseva-api/internal/repository/postgres"
	redisRepo "github.com/smartjanseva/janseva-api/internal/repository/redis"
	"github.com/smartjanseva/janseva-api/internal/service"
	"github.com/smartjanseva/janseva-api/pkg/auth"
	"github.com/smartjanseva/janseva-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	otpRepo := pgRepo.NewOTPRepo(db)
	complaintRepo := pgRepo.NewComplaintRepo(db)
	billRepo := pgRepo.NewBillRepo(db)
	applicationRepo := pgRepo.NewApplicationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Outbound gateways. Missing credentials fall back to noop services that
	// report dispatch failures, so the API still serves everything else.
	var smsService service.SMSService = &service.NoopSMSService{}
	if cfg.SMS.APIKey != "" {
		smsService, err = service.NewGatewaySMSService(cfg.SMS.APIKey, cfg.SMS.BaseURL, cfg.SMS.SenderID)
		if err != nil {
			log.Printf("Failed to initialize SMS gateway: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("SMS_API_KEY not set; phone OTP dispatch disabled")
	}

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY not set; email OTP dispatch disabled")
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Services
	otpService, err := service.NewOTPService(otpRepo, userRepo, smsService, emailService, cfg.OTP.TTL, cfg.OTP.MaxAttempts)
	if err != nil {
		log.Printf("Failed to initialize OTPService: %v", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(userRepo, jwtService, int(cfg.JWT.AccessExpiry.Seconds()))
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	complaintService, err := service.NewComplaintService(complaintRepo, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize ComplaintService: %v", err)
		os.Exit(1)
	}
	billService, err := service.NewBillService(billRepo, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize BillService: %v", err)
		os.Exit(1)
	}
	applicationService, err := service.NewApplicationService(applicationRepo)
	if err != nil {
		log.Printf("Failed to initialize ApplicationService: %v", err)
		os.Exit(1)
	}
	reportService := service.NewReportService(complaintRepo, billRepo)

	// Handlers
	otpHandler := handler.NewOTPHandler(otpService)
	authHandler := handler.NewAuthHandler(authService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	billHandler := handler.NewBillHandler(billService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	reportHandler := handler.NewReportHandler(reportService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Do not trust proxy headers unless a load balancer IP is configured.
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://smartjanseva.gov.in", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		// OTP issuance and verification, tightly rate limited per IP.
		otpGroup := api.Group("/otp")
		otpGroup.Use(rateLimiter.Limit(middleware.StrictOTPRateLimitConfig()))
		{
			otpGroup.POST("/send", otpHandler.Send)
			otpGroup.POST("/verify", otpHandler.Verify)
		}

		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
		}

		complaints := api.Group("/complaints")
		{
			complaints.GET("/track/:reference", complaintHandler.Track)

			authedComplaints := complaints.Group("")
			authedComplaints.Use(authMiddleware.RequireAuth())
			{
				authedComplaints.POST("", complaintHandler.File)
				authedComplaints.GET("/mine", complaintHandler.ListMine)
			}
		}

		bills := api.Group("/bills")
		{
			bills.GET("/due/:consumer", billHandler.Due)
			bills.GET("/receipt/:receipt", billHandler.Receipt)

			authedBills := bills.Group("")
			authedBills.Use(authMiddleware.RequireAuth())
			{
				authedBills.POST("/pay", billHandler.Pay)
				authedBills.GET("/payments/mine", billHandler.MyPayments)
			}
		}

		applications := api.Group("/applications")
		{
			applications.GET("/track/:reference", applicationHandler.Track)

			authedApplications := applications.Group("")
			authedApplications.Use(authMiddleware.RequireAuth())
			{
				authedApplications.POST("", applicationHandler.Apply)
				authedApplications.GET("/mine", applicationHandler.ListMine)
			}
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/complaints", complaintHandler.List)
			admin.GET("/complaints/stats", complaintHandler.Stats)

			complaintWithID := admin.Group("/complaints/:id")
			complaintWithID.Use(middleware.ExtractUintParam("id", "complaint_id"))
			{
				complaintWithID.PATCH("/status", complaintHandler.UpdateStatus)
			}

			applicationWithID := admin.Group("/applications/:id")
			applicationWithID.Use(middleware.ExtractUintParam("id", "application_id"))
			{
				applicationWithID.PATCH("/status", applicationHandler.UpdateStatus)
			}

			admin.GET("/reports/complaints", reportHandler.Complaints)
			admin.GET("/reports/payments", reportHandler.Payments)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
