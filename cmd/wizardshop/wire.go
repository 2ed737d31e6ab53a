//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明:
// 1. 本文件只在运行wire时参与编译(wireinject构建标签)
// 2. 修改Provider后运行 `wire gen ./cmd/wizardshop` 重新生成wire_gen.go
// 3. ctx、cfg、logger由调用方传入,Wire把它们当作已知依赖

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	appsession "github.com/xiebiao/wizardshop/internal/application/session"
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/catalogv1"
	grpchandler "github.com/xiebiao/wizardshop/internal/interface/grpc/handler"
	grpcserver "github.com/xiebiao/wizardshop/internal/interface/grpc/server"
	"github.com/xiebiao/wizardshop/internal/interface/http/handler"
	"github.com/xiebiao/wizardshop/internal/interface/http/middleware"
	"github.com/xiebiao/wizardshop/internal/interface/http/router"
)

// infrastructureSet 基础设施层:目录数据源、会话存储、事件发布、JWT
var infrastructureSet = wire.NewSet(
	provideCatalogRepository,
	provideCatalog,
	provideSessionStores,
	provideSessionRepository,
	provideTokenBlacklist,
	provideEventPublisher,
	provideJWTManager,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	provideBookService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListFacetsUseCase,
	appsession.NewCreateSessionUseCase,
	appsession.NewGetSessionUseCase,
	appsession.NewGetCartUseCase,
	appsession.NewUpdateSessionUseCase,
	appsession.NewEndSessionUseCase,
)

// httpSet HTTP接口层
var httpSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewSessionHandler,
	middleware.NewSessionMiddleware,
	router.New,
	provideHTTPServer,
)

// grpcSet gRPC接口层
var grpcSet = wire.NewSet(
	grpchandler.NewCatalogServiceServer,
	wire.Bind(new(catalogv1.CatalogServiceServer), new(*grpchandler.CatalogServiceServer)),
	grpcserver.New,
)

// InitializeApp 组装serve命令需要的全部组件
// cleanup按创建的逆序关闭事件发布者、Redis连接、数据库连接
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		httpSet,
		grpcSet,
		newApp,
	)
	return nil, nil, nil
}
