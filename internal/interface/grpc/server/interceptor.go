package server

import (
	"context"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/logger"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// 拦截器链(由外到内):
//
//	recovery → tracing → logging(含指标) → errors → handler
//
// errors在最内层,外层看到的都是gRPC状态

// recoveryInterceptor panic恢复
func recoveryInterceptor(l *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				l.Error("gRPC处理panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, apperrors.ErrInternal.Message)
			}
		}()
		return handler(ctx, req)
	}
}

// metadataCarrier 让OpenTelemetry传播器读写gRPC metadata
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	v := metadata.MD(c).Get(key)
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func (c metadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// tracingInterceptor 从metadata提取上游Trace并创建服务端Span
func tracingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		ctx = otel.GetTextMapPropagator().Extract(ctx, metadataCarrier(md.Copy()))

		ctx, span := tracing.StartSpan(ctx, info.FullMethod, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		resp, err := handler(ctx, req)
		tracing.RecordError(span, err)
		return resp, err
	}
}

// loggingInterceptor 记录method、code、latency,同时写入请求指标
func loggingInterceptor(l *zap.Logger) grpc.UnaryServerInterceptor {
	metrics.InitMetrics()

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		metrics.IncCounterVec(metrics.GRPCRequestsTotal, map[string]string{
			"method": info.FullMethod,
			"code":   code.String(),
		})

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		}
		rl := logger.WithTrace(ctx, l)
		switch code {
		case codes.OK:
			rl.Info("gRPC请求", fields...)
		case codes.Internal, codes.Unknown, codes.Unavailable:
			rl.Error("gRPC请求", append(fields, zap.Error(err))...)
		default:
			rl.Warn("gRPC请求", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// errorInterceptor 把应用层错误转换为gRPC状态
func errorInterceptor(l *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if appErr := apperrors.GetAppError(err); appErr.Err != nil {
			logger.WithTrace(ctx, l).Error(appErr.Message, zap.Int("code", appErr.Code), zap.Error(appErr.Err))
		}
		return nil, toStatus(err).Err()
	}
}
