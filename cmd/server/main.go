package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/rl1809/smart-pos/internal/adapter/handler"
	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
	"github.com/rl1809/smart-pos/internal/adapter/notice"
	"github.com/rl1809/smart-pos/internal/adapter/remote"
	"github.com/rl1809/smart-pos/internal/adapter/storage"
	"github.com/rl1809/smart-pos/internal/config"
	"github.com/rl1809/smart-pos/internal/core/service"
	"github.com/rl1809/smart-pos/internal/logger"
	"github.com/rl1809/smart-pos/internal/port"
)

type backend interface {
	port.LocalStore
	port.AssetStore
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	defer closeStore()

	// Wire core
	settings := service.NewSettingsService(store, log, cfg.API.BaseURL)
	client := remote.NewClient(settings, &http.Client{Timeout: cfg.API.Timeout}, log)

	var hub *handler.DisplayHub
	var publisher port.CartPublisher
	var forward []port.Notifier
	if cfg.Server.Display {
		hub = handler.NewDisplayHub(log)
		go hub.Run(ctx)
		publisher = hub
		forward = append(forward, hub)
	}
	inbox := notice.NewInbox(log, cfg.Notice.Capacity, forward...)

	pos := service.NewPOSService(service.POSDeps{
		Settings:      settings,
		Store:         store,
		API:           client,
		Notifier:      inbox,
		Publisher:     publisher,
		Log:           log,
		Cashier:       cfg.API.Cashier,
		ScanQueueSize: cfg.Scan.QueueSize,
	})
	pos.Init(ctx)

	var assets *service.AssetCacheService
	if cfg.Assets.Origin != "" {
		origin := remote.NewAssetOrigin(cfg.Assets.Origin, &http.Client{Timeout: cfg.API.Timeout})
		assets = service.NewAssetCacheService(store, origin, log, cfg.Assets.CacheName, cfg.Assets.Files)
		if cfg.Assets.Install {
			if err := assets.Install(ctx); err != nil {
				log.WithError(err).Warn("asset install failed")
			} else if err := assets.Activate(ctx); err != nil {
				log.WithError(err).Warn("asset activate failed")
			}
		}
	}

	// Initialize gRPC server
	var grpcServer *grpc.Server
	if cfg.Server.GRPCAddr != "" {
		grpcServer = grpc.NewServer()
		pb.RegisterPOSServer(grpcServer, handler.NewGRPCHandler(pos))

		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			log.WithError(err).Fatal("failed to listen")
		}
		go func() {
			log.WithField("addr", cfg.Server.GRPCAddr).Info("gRPC server listening")
			if err := grpcServer.Serve(lis); err != nil {
				log.WithError(err).Error("gRPC server error")
			}
		}()
	}

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(pos, inbox, assets, hub, log)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           httpHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Server.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Info("HTTP server stopped")

	if grpcServer != nil {
		grpcServer.GracefulStop()
		log.Info("gRPC server stopped")
	}

	// Drain the scan log queue
	pos.Close()
	cancel()
	log.Info("scan log drained")
}

func openStore(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (backend, func(), error) {
	switch cfg.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
		return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping mysql: %w", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("connected to mysql")
		return adapter, func() { db.Close() }, nil

	default:
		log.Warn("using in-memory storage, nothing persists across restarts")
		return storage.NewMemoryAdapter(), func() {}, nil
	}
}
