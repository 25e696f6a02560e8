package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"usherhub/api/handler"
	apiMiddleware "usherhub/api/middleware"
	"usherhub/api/routes"
	"usherhub/config"
	"usherhub/internal/repository"
	"usherhub/internal/service"
	"usherhub/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if len(cfg.JWTSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	db := config.ConnectionDb(cfg)

	jwtManager := utils.JWTManager{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	}
	tokenIssuer := service.JWTTokenIssuer{Manager: &jwtManager}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewSignupCodeRepository(db)
	eventRepo := repository.NewEventRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	var emailSender service.EmailSender
	if sender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AdminNotifyEmail); sender != nil {
		emailSender = sender
	} else {
		logger.Warn("RESEND_API_KEY not set, email notifications disabled")
	}

	var blobStore service.BlobStore
	if cfg.S3Bucket != "" {
		store, err := service.NewS3BlobStore(context.Background(), service.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			logger.WithError(err).Fatal("object store init failed")
		}
		blobStore = store
	} else {
		logger.Warn("S3_BUCKET not set, using placeholder image URLs")
		blobStore = service.PlaceholderBlobStore{}
	}

	hasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	authService := service.NewAuthService(userRepo, codeRepo, hasher, tokenIssuer, emailSender, blobStore, clock, logger)
	adminService := service.NewAdminService(userRepo, codeRepo, eventRepo, requestRepo, clock, logger)
	usherService := service.NewUsherService(userRepo)
	eventService := service.NewEventService(eventRepo)
	requestService := service.NewRequestService(requestRepo, userRepo, emailSender, logger)

	authHandler := handler.NewAuthHandler(authService, validate)
	adminHandler := handler.NewAdminHandler(adminService, validate)
	eventHandler := handler.NewEventHandler(eventService, validate)
	requestHandler := handler.NewRequestHandler(requestService, validate)
	usherHandler := handler.NewUsherHandler(usherService, authService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager, Users: userRepo}
	router := routes.NewRouter(app, authHandler, adminHandler, eventHandler, requestHandler, usherHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
