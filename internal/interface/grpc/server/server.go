package server

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/catalogv1"
)

// Server gRPC服务器
//
// 教学要点:
// 1. 注册目录服务、健康检查服务,开发环境注册反射服务(grpcurl调试)
// 2. 拦截器负责日志、指标、追踪、错误转换,Handler只做协议转换
// 3. 关闭时先把健康状态置为NOT_SERVING,再GracefulStop等待进行中的请求
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger *zap.Logger
}

// New 创建gRPC服务器
func New(cfg *config.Config, catalog catalogv1.CatalogServiceServer, logger *zap.Logger) *Server {
	interceptors := []grpc.UnaryServerInterceptor{recoveryInterceptor(logger)}
	if cfg.Tracing.Enabled {
		interceptors = append(interceptors, tracingInterceptor())
	}
	interceptors = append(interceptors, loggingInterceptor(logger), errorInterceptor(logger))

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
		grpc.MaxRecvMsgSize(4*1024*1024),
	)

	catalogv1.RegisterCatalogServiceServer(srv, catalog)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(catalogv1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.GRPC.Reflection {
		reflection.Register(srv)
	}

	return &Server{grpc: srv, health: hs, logger: logger}
}

// Serve 在lis上提供服务,直到Stop/GracefulStop
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC服务启动", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// GracefulStop 优雅关闭
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	s.logger.Info("gRPC服务已关闭")
}

// Stop 立即关闭(优雅关闭超时后使用)
func (s *Server) Stop() {
	s.grpc.Stop()
}
