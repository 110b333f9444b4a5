package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecotrack/internal/config"
	"ecotrack/internal/database"
	"ecotrack/internal/identity"
	"ecotrack/internal/middleware"
	"ecotrack/internal/modules/company"
	"ecotrack/internal/modules/registration"
	"ecotrack/internal/pkg/codes"
	"ecotrack/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	masterCodeRepo := repository.NewMasterCodeRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	wasteTypeRepo := repository.NewWasteTypeRepository(db)

	gen := codes.NewGenerator(rand.NewSource(time.Now().UnixNano()))
	companyService := company.NewService(companyRepo, masterCodeRepo, regionRepo, wasteTypeRepo, gen, logger)

	provider, err := newIdentityProvider(cfg, db, logger)
	if err != nil {
		log.Fatal(err)
	}

	registrationService := registration.NewService(userRepo, companyService, provider, cfg.AuthHandleDomain, logger)
	registrationHandler := registration.NewHandler(registrationService)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	v1 := r.Group("/api/v1")
	{
		registrationHandler.RegisterRoutes(v1)
	}

	logger.Info("starting onboarding service", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProd() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newIdentityProvider picks the Supabase admin client when an auth API is
// configured, or the gorm-backed local store for development.
func newIdentityProvider(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (identity.Provider, error) {
	if cfg.AuthAPIURL == "" {
		logger.Info("AUTH_API_URL not set, using local identity store")
		return identity.NewLocalProvider(db)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "identity",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})

	httpClient := &http.Client{Timeout: cfg.AuthTimeout}
	return identity.NewClient(httpClient, cfg.AuthAPIURL, cfg.AuthServiceKey, cb, logger), nil
}
