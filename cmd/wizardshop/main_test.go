package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/infrastructure/messaging"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/file"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/wizardshop/pkg/mq"
)

// execute 执行命令并返回标准输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Log.Output = "stderr"
	return cfg
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "query", "seed", "browse", "events"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestQueryCmd(t *testing.T) {
	t.Run("JSON输出", func(t *testing.T) {
		out, err := execute(t, "query", "--section", "rare", "--json")
		require.NoError(t, err)

		var resp appbook.ListBooksResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "bk6", resp.Items[0].ID)
		assert.Equal(t, "bk8", resp.Items[1].ID)
	})

	t.Run("表格输出", func(t *testing.T) {
		out, err := execute(t, "query", "--section", "school", "--sort", "price")
		require.NoError(t, err)
		assert.Contains(t, out, "Schulbücher · sort=price")
		assert.Contains(t, out, "Das Standard-Zauberwerk (Band 6)")
		assert.Contains(t, out, "★★☆☆☆")
	})

	t.Run("表格行按价格排序", func(t *testing.T) {
		out, err := execute(t, "query", "--section", "rare", "--sort", "price")
		require.NoError(t, err)

		var header, first, second int
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			switch {
			case strings.Contains(line, "TITLE"):
				header = i
			case strings.Contains(line, "bk6"):
				first = i
				assert.Contains(t, line, "Rezepturen & Tränke für Fortgeschrittene")
				assert.Contains(t, line, "Slytherin")
				assert.Contains(t, line, "1946")
				assert.Contains(t, line, "★★★★☆")
				assert.Contains(t, line, "28.00")
			case strings.Contains(line, "bk8"):
				second = i
				assert.Contains(t, line, "Die Märchen von Beedle dem Barden")
				assert.Contains(t, line, "Hufflepuff")
				assert.Contains(t, line, "32.00")
			}
		}
		require.NotZero(t, header, out)
		assert.Less(t, header, first, "表头在数据行之前")
		assert.Less(t, first, second, "价格升序")
		assert.Contains(t, lines[header], "PRICE")
		assert.Contains(t, out, "╭", "圆角边框")
	})

	t.Run("无结果提示", func(t *testing.T) {
		out, err := execute(t, "query", "--section", "restricted")
		require.NoError(t, err)
		assert.Contains(t, out, "没有找到匹配的图书")
	})

	t.Run("未知排序", func(t *testing.T) {
		_, err := execute(t, "query", "--sort", "title")
		assert.ErrorIs(t, err, book.ErrInvalidSortKey)
	})
}

func TestSeedCmd(t *testing.T) {
	t.Run("dry-run校验YAML目录", func(t *testing.T) {
		out, err := execute(t, "seed", "--from", "file", "--file", "../../config/catalog.yaml", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "校验通过,共6本")
	})

	t.Run("不支持的来源", func(t *testing.T) {
		_, err := execute(t, "seed", "--from", "mysql", "--dry-run")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "不支持的来源")
	})
}

func TestProviders(t *testing.T) {
	ctx := context.Background()
	cfg := defaultConfig(t)
	log := zaptest.NewLogger(t)

	t.Run("目录数据源", func(t *testing.T) {
		repo, cleanup, err := provideCatalogRepository(ctx, cfg, log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &memory.CatalogRepository{}, repo)

		fileCfg := *cfg
		fileCfg.Catalog.Source = config.CatalogSourceFile
		repo, cleanup, err = provideCatalogRepository(ctx, &fileCfg, log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &file.CatalogRepository{}, repo)
	})

	t.Run("内存会话存储", func(t *testing.T) {
		stores, cleanup, err := provideSessionStores(ctx, cfg, log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &memory.SessionStore{}, provideSessionRepository(stores))
		assert.IsType(t, &memory.Blacklist{}, provideTokenBlacklist(stores))
	})

	t.Run("未启用MQ时不发布", func(t *testing.T) {
		p, cleanup, err := provideEventPublisher(cfg, log)
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, messaging.NoopPublisher{}, p)
	})

	t.Run("令牌有效期等于会话TTL", func(t *testing.T) {
		token, err := provideJWTManager(cfg).GenerateSessionToken("s1")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(cfg.Session.TTL), token.ExpiresAt, 5*time.Second)
	})
}

func TestInitializeApp(t *testing.T) {
	cfg := defaultConfig(t)
	app, cleanup, err := InitializeApp(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	t.Run("HTTP路由已注册", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books?section=rare", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bk6")
	})

	t.Run("Run在ctx取消后退出", func(t *testing.T) {
		app.http.Addr = "127.0.0.1:0"
		app.cfg.GRPC.Port = 0
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- app.Run(ctx) }()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("服务没有在超时内关闭")
		}
	})
}

func TestQueryRemote(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.GRPC.Reflection = false
	app, cleanup, err := InitializeApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.grpc.Serve(lis) }()
	defer app.grpc.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := queryRemote(ctx, lis.Addr().String(), appbook.QueryParams{Section: "school", Sort: "year"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "bk3", resp.Items[0].ID)
	assert.Equal(t, 1996, resp.Items[0].Year)
	assert.Equal(t, "Schulbücher", resp.Query.SectionLabel)

	resp, err = queryRemote(ctx, lis.Addr().String(), appbook.QueryParams{Section: "school", Sort: "year", Nonce: math.MaxUint64})
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), resp.Query.ShuffleNonce, "nonce往返不丢精度")
	assert.Equal(t, "bk3", resp.Items[0].ID)

	_, err = queryRemote(ctx, lis.Addr().String(), appbook.QueryParams{Section: "attic"})
	assert.Error(t, err)
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	handle := printEvent(&out, zaptest.NewLogger(t))

	body, err := json.Marshal(session.Event{
		Type:       session.EventCartToggled,
		SessionID:  "s1",
		BookID:     "bk6",
		InCart:     true,
		OccurredAt: time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, handle(context.Background(), mq.Message{RoutingKey: "cart.toggled", Body: body}))
	assert.Contains(t, out.String(), "cart.toggled")
	assert.Contains(t, out.String(), "session=s1 book=bk6 in_cart=true")

	assert.NoError(t, handle(context.Background(), mq.Message{Body: []byte("not json")}), "无法解析的消息不重新入队")
}
