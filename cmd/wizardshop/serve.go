package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP和gRPC服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

// runServe 启动服务直到收到SIGINT/SIGTERM
//
// 启动流程:
// 1. 加载配置、初始化日志
// 2. 初始化链路追踪(可选)
// 3. Wire组装全部组件
// 4. errgroup同时运行HTTP和gRPC,任意一个失败时整体退出
// 5. 收到信号后优雅关闭,超时后强制关闭
func runServe(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. 配置和日志
	cfg, logger, err := bootstrap(flags)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Mode == "release" && cfg.JWT.Secret == config.DefaultJWTSecret {
		return errors.New("release模式必须通过WIZARDSHOP_JWT_SECRET配置会话令牌密钥")
	}

	// 2. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    true,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("关闭TracerProvider失败", zap.Error(err))
			}
		}()
	}

	// 3. 依赖注入
	app, cleanup, err := InitializeApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

// Run 运行HTTP和gRPC服务,ctx取消后优雅关闭
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	httpLis, err := net.Listen("tcp", a.http.Addr)
	if err != nil {
		return fmt.Errorf("监听HTTP端口失败: %w", err)
	}
	g.Go(func() error {
		a.logger.Info("HTTP服务启动", zap.String("addr", httpLis.Addr().String()), zap.String("mode", a.cfg.Server.Mode))
		if err := a.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	})

	if a.cfg.GRPC.Enabled {
		grpcLis, err := net.Listen("tcp", a.cfg.GRPC.Addr())
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("监听gRPC端口失败: %w", err)
		}
		g.Go(func() error {
			return a.grpc.Serve(grpcLis)
		})
	}

	// 关闭协程:ctx取消(收到信号或某个服务失败)后关闭所有服务
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("开始优雅关闭", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		if a.cfg.GRPC.Enabled {
			done := make(chan struct{})
			go func() {
				a.grpc.GracefulStop()
				close(done)
			}()
			select {
			case <-done:
			case <-shutdownCtx.Done():
				a.grpc.Stop()
			}
		}

		if err := a.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP服务关闭失败: %w", err)
		}
		a.logger.Info("HTTP服务已关闭")
		return nil
	})

	return g.Wait()
}
