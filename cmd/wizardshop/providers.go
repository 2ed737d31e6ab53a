package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/infrastructure/messaging"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/file"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/redis"
	grpcserver "github.com/xiebiao/wizardshop/internal/interface/grpc/server"
	"github.com/xiebiao/wizardshop/pkg/jwt"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明:
// 这些Provider需要根据配置选择实现(内置/文件/MySQL、内存/Redis、RabbitMQ/不发布),
// Wire无法自动决定,所以手动编写
// 返回cleanup函数的Provider,Wire会按创建的逆序串起来

// provideCatalogRepository 按catalog.source选择目录数据源
func provideCatalogRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (book.Repository, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return file.NewCatalogRepository(cfg.Catalog.File), func() {}, nil

	case config.CatalogSourceMySQL:
		db, err := mysql.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return mysql.NewBookRepository(db, mysql.NewTxManager(db)), cleanup, nil

	default:
		return memory.NewCatalogRepository(), func() {}, nil
	}
}

// provideCatalog 启动时加载并校验目录,数据有问题时拒绝启动
func provideCatalog(ctx context.Context, repo book.Repository, logger *zap.Logger) (*book.Catalog, error) {
	catalog, err := book.LoadCatalog(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("加载目录失败: %w", err)
	}
	metrics.InitMetrics()
	metrics.SetGauge(metrics.CatalogSize, float64(catalog.Len()))
	logger.Info("目录加载完成", zap.Int("books", catalog.Len()))
	return catalog, nil
}

func provideBookService(catalog *book.Catalog, cfg *config.Config) book.Service {
	return book.NewService(catalog, book.ServiceOptions{ShuffleTies: cfg.Catalog.ShuffleTies})
}

// provideJWTManager 会话令牌的有效期与会话TTL一致
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Session.TTL)
}

// sessionStores 会话存储和令牌黑名单
// Redis实现同时满足两个接口,内存实现是两个独立的结构
type sessionStores struct {
	repo      session.Repository
	blacklist session.TokenBlacklist
}

// provideSessionStores 按session.store选择会话存储
func provideSessionStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sessionStores, func(), error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return &sessionStores{
			repo:      memory.NewSessionStore(cfg.Session.TTL),
			blacklist: memory.NewBlacklist(),
		}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store := redis.NewSessionStore(client, cfg.Session.TTL)
	cleanup := func() {
		_ = client.Close()
	}
	return &sessionStores{repo: store, blacklist: store}, cleanup, nil
}

func provideSessionRepository(s *sessionStores) session.Repository {
	return s.repo
}

func provideTokenBlacklist(s *sessionStores) session.TokenBlacklist {
	return s.blacklist
}

// provideEventPublisher mq.enabled=false时事件直接丢弃
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (session.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := p.Close(); err != nil {
			logger.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return messaging.NewEventPublisher(p, logger), cleanup, nil
}

// provideHTTPServer 包装gin引擎,读写超时来自配置
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// App serve命令运行的全部组件
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	http   *http.Server
	grpc   *grpcserver.Server
}

func newApp(cfg *config.Config, logger *zap.Logger, httpServer *http.Server, grpcServer *grpcserver.Server) *App {
	return &App{cfg: cfg, logger: logger, http: httpServer, grpc: grpcServer}
}
