package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/university-backend/internal/data/db"
	"github.com/yungbote/university-backend/internal/data/uow"
	"github.com/yungbote/university-backend/internal/http"
	"github.com/yungbote/university-backend/internal/observability"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	database     *dbpkg.Service
	shutdownOTel func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.LogMode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Otel.Environment,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     cfg.Otel.Headers,
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})

	database, err := dbpkg.Open(cfg.DB.database(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	theDB := database.DB()
	if err := dbpkg.AutoMigrateAll(theDB); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if cfg.DB.Seed {
		if err := dbpkg.Seed(ctx, theDB, log); err != nil {
			_ = database.Close()
			log.Sync()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	isolation, err := uow.ParseIsolationLevel(cfg.Tx.Isolation)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	if database.Driver() == dbpkg.DriverSQLite && isolation != uow.IsolationDefault {
		log.Info("sqlite transactions are serializable, ignoring TX_ISOLATION", "isolation", isolation)
		isolation = uow.IsolationDefault
	}

	metrics := observability.New()
	metrics.RegisterDBStats(ctx, log, theDB, database.Driver())

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg.Tx, isolation, reposet, metrics)
	if err != nil {
		_ = database.Close()
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, theDB, serviceset)
	router := wireRouter(cfg, log, handlerset, serviceset, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		database:     database,
		shutdownOTel: shutdownOTel,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	servers := []*http.Server{http.NewServer(a.Cfg.HTTPAddr, a.Router, a.Log)}
	if addr := strings.TrimSpace(a.Cfg.MetricsAddr); addr != "" && a.Metrics != nil {
		servers = append(servers, http.NewServer(addr, a.Metrics.Handler(), a.Log))
	}
	for _, s := range servers {
		g.Go(func() error {
			return s.Run(gctx, a.Cfg.ShutdownGrace)
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownGrace)
		if err := a.shutdownOTel(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.shutdownOTel = nil
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
		a.database = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
