package server

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/catalogv1"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/handler"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// startServer 在bufconn上启动服务器,返回客户端连接
func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	log := zaptest.NewLogger(t)
	svc := book.NewService(book.MustCatalog(book.SampleBooks()), book.ServiceOptions{})
	catalog := handler.NewCatalogServiceServer(
		appbook.NewListBooksUseCase(svc, log),
		appbook.NewGetBookUseCase(svc),
		appbook.NewListFacetsUseCase(svc),
	)

	cfg := &config.Config{}
	cfg.GRPC.Reflection = true
	cfg.Tracing.Enabled = true
	srv := New(cfg, catalog, log)

	lis := bufconn.Listen(1024 * 1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.GracefulStop()
		<-done
	})
	return conn
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func itemIDs(s *structpb.Struct) []string {
	var ids []string
	for _, v := range s.GetFields()["items"].GetListValue().GetValues() {
		ids = append(ids, v.GetStructValue().GetFields()["id"].GetStringValue())
	}
	return ids
}

func TestCatalogService_QueryBooks(t *testing.T) {
	client := catalogv1.NewCatalogServiceClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		name string
		req  map[string]interface{}
		want []string
	}{
		{"默认", map[string]interface{}{}, []string{"bk2", "bk9"}},
		{"分区加学院", map[string]interface{}{"section": "rare", "house": "Slytherin"}, []string{"bk6"}},
		{"关键词", map[string]interface{}{"section": "school", "q": "N.E.W.T"}, []string{"bk3"}},
		{"按年份", map[string]interface{}{"section": "school", "sort": "year", "nonce": 3}, []string{"bk3", "bk5"}},
		{"空结果", map[string]interface{}{"section": "restricted"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.QueryBooks(ctx, mustStruct(t, tt.req))
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemIDs(resp))
			assert.Equal(t, len(tt.want) == 0, resp.GetFields()["empty"].GetBoolValue())
		})
	}

	t.Run("nonce用十进制字符串传输不丢精度", func(t *testing.T) {
		for _, nonce := range []string{"9007199254740993", "18446744073709551615"} {
			resp, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{
				"section": "school", "sort": "year", "nonce": nonce,
			}))
			require.NoError(t, err)
			assert.Equal(t, []string{"bk3", "bk5"}, itemIDs(resp))
			query := resp.GetFields()["query"].GetStructValue()
			assert.Equal(t, nonce, query.GetFields()["shuffle_nonce"].GetStringValue())
		}
	})
}

func TestCatalogService_Errors(t *testing.T) {
	client := catalogv1.NewCatalogServiceClient(startServer(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		grpcCode codes.Code
		bizCode  int
	}{
		{
			name: "未知排序",
			call: func() error {
				_, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{"sort": "title"}))
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeInvalidSortKey,
		},
		{
			name: "nonce不是整数",
			call: func() error {
				_, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{"nonce": 1.5}))
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeInvalidParams,
		},
		{
			name: "nonce数字超过2^53",
			call: func() error {
				_, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{"nonce": float64(1 << 60)}))
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeInvalidParams,
		},
		{
			name: "nonce字符串不是整数",
			call: func() error {
				_, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{"nonce": "-1"}))
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeInvalidParams,
		},
		{
			name: "关键词过长",
			call: func() error {
				_, err := client.QueryBooks(ctx, mustStruct(t, map[string]interface{}{"q": strings.Repeat("x", 101)}))
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeSearchTooLong,
		},
		{
			name: "图书不存在",
			call: func() error {
				_, err := client.GetBook(ctx, mustStruct(t, map[string]interface{}{"id": "bk404"}))
				return err
			},
			grpcCode: codes.NotFound,
			bizCode:  apperrors.ErrCodeBookNotFound,
		},
		{
			name: "缺少ID",
			call: func() error {
				_, err := client.GetBook(ctx, nil)
				return err
			},
			grpcCode: codes.InvalidArgument,
			bizCode:  apperrors.ErrCodeInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.grpcCode, status.Code(err))
			assert.Equal(t, tt.bizCode, BusinessCode(err))
		})
	}
}

func TestCatalogService_GetBookAndFacets(t *testing.T) {
	conn := startServer(t)
	client := catalogv1.NewCatalogServiceClient(conn)
	ctx := context.Background()

	b, err := client.GetBook(ctx, mustStruct(t, map[string]interface{}{"id": "bk8"}))
	require.NoError(t, err)
	assert.Equal(t, "Beedle der Barde", b.GetFields()["author"].GetStringValue())
	assert.Equal(t, float64(1405), b.GetFields()["year"].GetNumberValue())

	facets, err := client.ListFacets(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, facets.GetFields()["sections"].GetListValue().GetValues(), 4)
	assert.Equal(t, "new", facets.GetFields()["default_section"].GetStringValue())

	t.Run("健康检查", func(t *testing.T) {
		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: catalogv1.ServiceName})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	})
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"会话令牌", apperrors.ErrTokenExpired, codes.Unauthenticated},
		{"目录数据", book.ErrDuplicateID, codes.FailedPrecondition},
		{"普通错误", errors.New("boom"), codes.Internal},
		{"取消", context.Canceled, codes.Canceled},
		{"已经是状态", status.Error(codes.Unavailable, "down"), codes.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toStatus(tt.err).Code())
		})
	}

	t.Run("内部错误不外泄", func(t *testing.T) {
		st := toStatus(apperrors.WrapCode(errors.New("dial tcp 10.0.0.1:3306"), apperrors.ErrCodeDatabaseError, "数据库错误"))
		assert.Equal(t, "数据库错误", st.Message())
		assert.Equal(t, apperrors.ErrCodeDatabaseError, BusinessCode(st.Err()))
	})
}
