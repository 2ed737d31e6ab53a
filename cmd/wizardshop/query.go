package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/catalogv1"
	"github.com/xiebiao/wizardshop/internal/interface/tui"
)

type queryFlags struct {
	appbook.QueryParams
	asJSON   bool
	grpcAddr string
	timeout  time.Duration
}

func newQueryCmd(root *rootFlags) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "查询目录(本地目录或远程gRPC服务)",
		Example: `  wizardshop query --section rare --sort price
  wizardshop query --section school --search "n.e.w.t" --json
  wizardshop query --grpc localhost:9090 --house Hufflepuff`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			var (
				resp *appbook.ListBooksResponse
				err  error
			)
			if flags.grpcAddr != "" {
				resp, err = queryRemote(ctx, flags.grpcAddr, flags.QueryParams)
			} else {
				resp, err = queryLocal(ctx, root, flags.QueryParams)
			}
			if err != nil {
				return err
			}

			if flags.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writeTable(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&flags.Section, "section", "", "分区(new、rare、school、restricted,默认new)")
	cmd.Flags().StringVar(&flags.House, "house", "", "学院(Gryffindor、Slytherin、Ravenclaw、Hufflepuff)")
	cmd.Flags().StringVarP(&flags.Search, "search", "q", "", "关键词(书名、作者、简介)")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "排序方式(popular、price、year、rarity)")
	cmd.Flags().Uint64Var(&flags.Nonce, "nonce", 0, "随机序号")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "输出JSON")
	cmd.Flags().StringVar(&flags.grpcAddr, "grpc", "", "远程gRPC地址,为空时查询本地目录")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 10*time.Second, "查询超时")

	return cmd
}

// queryLocal 按配置加载目录后直接调用用例
func queryLocal(ctx context.Context, root *rootFlags, params appbook.QueryParams) (*appbook.ListBooksResponse, error) {
	svc, cleanup, err := loadBookService(ctx, root, zap.NewNop())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return appbook.NewListBooksUseCase(svc, zap.NewNop()).Execute(ctx, params)
}

// loadBookService 加载配置和目录,创建领域服务(query、browse命令共用)
func loadBookService(ctx context.Context, root *rootFlags, logger *zap.Logger) (book.Service, func(), error) {
	cfg, _, err := bootstrap(root)
	if err != nil {
		return nil, nil, err
	}

	repo, cleanup, err := provideCatalogRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := provideCatalog(ctx, repo, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return provideBookService(catalog, cfg), cleanup, nil
}

// queryRemote 通过gRPC查询,响应字段与本地查询一致
// nonce双向都用十进制字符串传输,避免double舍入导致与本地查询结果不一致
func queryRemote(ctx context.Context, addr string, params appbook.QueryParams) (*appbook.ListBooksResponse, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("连接gRPC服务失败: %w", err)
	}
	defer conn.Close()

	req, err := structpb.NewStruct(map[string]interface{}{
		"section": params.Section,
		"house":   params.House,
		"search":  params.Search,
		"sort":    params.Sort,
		"nonce":   strconv.FormatUint(params.Nonce, 10),
	})
	if err != nil {
		return nil, err
	}

	out, err := catalogv1.NewCatalogServiceClient(conn).QueryBooks(ctx, req)
	if err != nil {
		return nil, err
	}

	query := out.GetFields()["query"].GetStructValue()
	nonce := query.GetFields()["shuffle_nonce"].GetStringValue()
	delete(query.GetFields(), "shuffle_nonce")

	data, err := protojson.Marshal(out)
	if err != nil {
		return nil, err
	}
	var resp appbook.ListBooksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("解析gRPC响应失败: %w", err)
	}
	if nonce != "" {
		if resp.Query.ShuffleNonce, err = strconv.ParseUint(nonce, 10, 64); err != nil {
			return nil, fmt.Errorf("解析gRPC响应失败: %w", err)
		}
	}
	return &resp, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable 表格输出,没有结果时给出提示
func writeTable(w io.Writer, resp *appbook.ListBooksResponse) error {
	fmt.Fprintf(w, "%s · sort=%s", resp.Query.SectionLabel, resp.Query.Sort)
	if resp.Query.House != "" {
		fmt.Fprintf(w, " · house=%s", resp.Query.House)
	}
	if resp.Query.Search != "" {
		fmt.Fprintf(w, " · q=%q", resp.Query.Search)
	}
	fmt.Fprintln(w)

	if resp.Empty {
		_, err := fmt.Fprintln(w, "没有找到匹配的图书,换个关键词或分区试试")
		return err
	}

	rows := make([][]string, 0, len(resp.Items))
	for _, b := range resp.Items {
		rows = append(rows, []string{
			b.ID, b.Title, b.Author, b.House, strconv.Itoa(b.Year), b.Stars, fmt.Sprintf("%.2f", b.Price),
		})
	}
	t := tui.NewResultTable(lipgloss.HasDarkBackground()).
		Headers("ID", "TITLE", "AUTHOR", "HOUSE", "YEAR", "RARITY", "PRICE").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
