package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"

	"github.com/mixtapemassey/site/internal/auth"
	"github.com/mixtapemassey/site/internal/config"
	"github.com/mixtapemassey/site/internal/database"
	"github.com/mixtapemassey/site/internal/email"
	"github.com/mixtapemassey/site/internal/handler"
	"github.com/mixtapemassey/site/internal/middleware"
	"github.com/mixtapemassey/site/internal/queue"
	"github.com/mixtapemassey/site/internal/repository"
	"github.com/mixtapemassey/site/internal/router"
	queue_publisher "github.com/mixtapemassey/site/internal/service"
	"github.com/mixtapemassey/site/internal/spam"
	"github.com/mixtapemassey/site/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()
	rateCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unavailable

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	authRepo := repository.NewAuthRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	mixRepo := repository.NewMixRepo(db)
	mediaRepo := repository.NewMediaRepo(db)
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	songRepo := repository.NewSongRepo(db)
	dashboard := repository.NewDashboard(bookingRepo, songRepo, eventRepo)

	// Session service and outbound email.
	svc := auth.NewService(cfg, userRepo, authRepo, rdb, queue_publisher.PublishSignInLink)
	sender := email.NewSender(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotifyEmail)
	go queue.StartNotificationConsumer(sender)

	prod := cfg.IsProd()
	refreshTTL := time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour

	// Handlers.
	publicH := &handler.PublicHandler{
		SettingsRepo: settingsRepo,
		MixRepo:      mixRepo,
		MediaRepo:    mediaRepo,
		EventRepo:    eventRepo,
		Prod:         prod,
	}
	bookingH := &handler.BookingHandler{
		Repo:    bookingRepo,
		Spam:    spam.NewVerifier(cfg.TurnstileSecret),
		Publish: queue_publisher.PublishBookingReceived,
		Prod:    prod,
	}
	songH := &handler.SongHandler{
		Repo: songRepo,
		Spam: spam.NewVerifier(cfg.TurnstileSecret),
		Prod: prod,
	}
	authH := &handler.AuthHandler{Svc: svc, Secure: prod, RefreshTTL: refreshTTL}
	adminH := &handler.AdminHandler{
		SettingsRepo: settingsRepo,
		MixRepo:      mixRepo,
		MediaRepo:    mediaRepo,
		EventRepo:    eventRepo,
		BookingRepo:  bookingRepo,
		SongRepo:     songRepo,
		Dashboard:    dashboard,
		Prod:         prod,
	}
	uploadH := &handler.UploadHandler{Store: storage.NewStore(cfg), Prod: prod}
	pages := &handler.PageHandler{Svc: svc}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.PageGuard(svc, prod, refreshTTL))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicH, bookingH, songH, rateCfg, cacheCfg, rdb)
	router.RegisterAuth(e, authH)
	router.RegisterAdmin(e, svc, adminH, uploadH, pages, prod, refreshTTL)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if prod && cfg.TLSDomain != "" {
		e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.TLSDomain)
		e.AutoTLSManager.Cache = autocert.DirCache(cfg.TLSCacheDir)
		e.AutoTLSManager.Prompt = autocert.AcceptTOS
		if err := e.StartAutoTLS(":443"); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
