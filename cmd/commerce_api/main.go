package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	brandApi "github.com/loopers/commerce-api/internal/brand/api"
	brandRepo "github.com/loopers/commerce-api/internal/brand/repository"
	brandService "github.com/loopers/commerce-api/internal/brand/service"
	likeApi "github.com/loopers/commerce-api/internal/like/api"
	likeRepo "github.com/loopers/commerce-api/internal/like/repository"
	likeService "github.com/loopers/commerce-api/internal/like/service"
	memberApi "github.com/loopers/commerce-api/internal/member/api"
	memberRepo "github.com/loopers/commerce-api/internal/member/repository"
	memberService "github.com/loopers/commerce-api/internal/member/service"
	orderApi "github.com/loopers/commerce-api/internal/order/api"
	orderRepo "github.com/loopers/commerce-api/internal/order/repository"
	orderService "github.com/loopers/commerce-api/internal/order/service"
	"github.com/loopers/commerce-api/internal/platform/cache"
	"github.com/loopers/commerce-api/internal/platform/config"
	"github.com/loopers/commerce-api/internal/platform/database"
	"github.com/loopers/commerce-api/internal/platform/events"
	"github.com/loopers/commerce-api/internal/platform/logger"
	"github.com/loopers/commerce-api/internal/platform/web"
	productApi "github.com/loopers/commerce-api/internal/product/api"
	productRepo "github.com/loopers/commerce-api/internal/product/repository"
	productService "github.com/loopers/commerce-api/internal/product/service"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintln(os.Stderr, "invalid log configuration:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting commerce-api...")

	db, err := database.Connect(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.ApplySchema(context.Background(), db); err != nil {
			logger.Fatal("Failed to apply schema", err)
		}
	}

	productCache := openCache(cfg.Cache)
	publisher, err := openPublisher(cfg.Events)
	if err != nil {
		logger.Fatal("Failed to open event sink", err, "sink", cfg.Events.Sink)
	}
	defer publisher.Close()

	txs := database.NewTxStarter(db)

	// Setup Dependencies
	mbrService := memberService.NewMemberService(memberRepo.NewPostgresMemberRepository(db), publisher, cfg.Auth)
	brdService := brandService.NewBrandService(brandRepo.NewPostgresBrandRepository(db))
	productRepository := productRepo.NewPostgresProductRepository(db)
	prdService := productService.NewProductService(productRepository, productService.NewBrandClient(brdService), productCache, cfg.Cache.ProductTTL)
	ordService := orderService.NewOrderService(txs, orderRepo.NewPostgresOrderRepository(db), productRepository, prdService, publisher)
	likeRepository := likeRepo.NewPostgresLikeRepository(db)
	lkService := likeService.NewLikeService(txs, likeRepository, productRepository, prdService)

	if cfg.Scheduler.LikeReconcileSpec != "" {
		reconciler := likeService.NewReconciler(txs, likeRepository, productRepository, prdService, cfg.Scheduler.LikeReconcileSpec)
		if err := reconciler.Start(); err != nil {
			logger.Fatal("Failed to start like reconciler", err)
		}
		defer reconciler.Stop()
	}

	auth := memberApi.RequireMember(mbrService)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery(), web.RequestID(), web.AccessLog())
	apiV1 := router.Group("/api/v1")
	memberApi.NewMemberHandler(mbrService, auth).RegisterRoutes(apiV1)
	brandApi.NewBrandHandler(brdService).RegisterRoutes(apiV1)
	productApi.NewProductHandler(prdService).RegisterRoutes(apiV1)
	likeApi.NewLikeHandler(lkService, auth).RegisterRoutes(apiV1)
	orderApi.NewOrderHandler(ordService, auth).RegisterRoutes(apiV1)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("commerce-api running on port " + cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down commerce-api...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
}

func openCache(cfg config.CacheConfig) cache.Cache {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, product cache disabled")
		return cache.NewNop()
	}
	c := cache.NewRedisCache(cfg.RedisAddr, "commerce-api")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx, c); err != nil {
		// The cache is optional; reads fall through to the database.
		logger.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "error", err)
	}
	return c
}

func openPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Sink {
	case "", "none":
		return events.NewNop(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return nil, err
		}
		return events.OpenSQLiteLog(cfg.LogPath)
	case "kafka":
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unknown EVENT_SINK %q", cfg.Sink)
	}
}
