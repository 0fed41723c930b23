package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"motormarket/internal/cache"
	"motormarket/internal/config"
	cronrunner "motormarket/internal/cron"
	"motormarket/internal/db"
	"motormarket/internal/handler"
	"motormarket/internal/logger"
	"motormarket/internal/notify"
	gormrepository "motormarket/internal/repository/gorm"
	"motormarket/internal/service"
)

func main() {
	cfgPath := os.Getenv("MM_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("MM_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default system switches failed", zap.Error(err))
	}

	var reportCache cache.Store
	if strings.EqualFold(cfg.Cache.Backend, "redis") {
		reportCache = cache.NewRedisStore(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
	} else {
		reportCache = cache.NewMemoryStore()
	}

	webhookTimeout := cfg.Webhook.Timeout
	if webhookTimeout <= 0 {
		webhookTimeout = 5 * time.Second
	}
	resolutionSvc := &service.ResolutionService{
		Repo:       store,
		Logger:     logger,
		Config:     cfg.Resolution,
		Flags:      settingsSvc,
		Webhook:    &notify.WebhookSender{HTTP: &http.Client{Timeout: webhookTimeout}},
		WebhookURL: cfg.Webhook.URL,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	leagueHandler := &handler.LeagueHandler{Repo: store}
	leagueHandler.Register(engine)
	marketHandler := &handler.MarketHandler{
		Repo:   store,
		MinBid: decimal.NewFromFloat(cfg.Market.MinBid),
	}
	marketHandler.Register(engine)
	resolutionHandler := &handler.ResolutionHandler{
		Service:   resolutionSvc,
		Cache:     reportCache,
		Logger:    logger,
		ReportTTL: cfg.Cache.ReportTTL,
	}
	resolutionHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Repo: store}
	settingsHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		if _, err := cronRunner.Add(cfg.Cron.Resolution, resolutionSvc.RunScheduled); err != nil {
			logger.Warn("cron register resolution failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
