package handler

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/interface/grpc/catalogv1"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// CatalogServiceServer 目录gRPC实现
//
// 教学要点:
// 1. gRPC Handler的职责
//   - 协议转换(Struct ↔ 应用层DTO)
//   - 错误处理(AppError → gRPC状态码,由server包的拦截器统一转换)
//   - 不包含业务逻辑,复用HTTP接口的同一组用例
//
// 2. 响应字段与HTTP接口的data完全一致
type CatalogServiceServer struct {
	listBooks  *appbook.ListBooksUseCase
	getBook    *appbook.GetBookUseCase
	listFacets *appbook.ListFacetsUseCase
}

var _ catalogv1.CatalogServiceServer = (*CatalogServiceServer)(nil)

// NewCatalogServiceServer 创建gRPC服务实例
func NewCatalogServiceServer(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	listFacets *appbook.ListFacetsUseCase,
) *CatalogServiceServer {
	return &CatalogServiceServer{
		listBooks:  listBooks,
		getBook:    getBook,
		listFacets: listFacets,
	}
}

// QueryBooks 查询目录
// 请求字段:section、house、search(或q)、sort、nonce
// nonce可以是十进制字符串或数字,响应中的query.shuffle_nonce总是十进制字符串
func (s *CatalogServiceServer) QueryBooks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 步骤1:参数转换
	fields := req.GetFields()
	search := stringField(fields, "search")
	if search == "" {
		search = stringField(fields, "q")
	}
	nonce, err := uintField(fields, "nonce")
	if err != nil {
		return nil, err
	}

	// 步骤2:调用用例
	resp, err := s.listBooks.Execute(ctx, appbook.QueryParams{
		Section: stringField(fields, "section"),
		House:   stringField(fields, "house"),
		Search:  search,
		Sort:    stringField(fields, "sort"),
		Nonce:   nonce,
	})
	if err != nil {
		return nil, err
	}

	// 步骤3:结果转换
	out, err := toStruct(resp)
	if err != nil {
		return nil, err
	}
	if q := out.GetFields()["query"].GetStructValue(); q != nil {
		q.Fields["shuffle_nonce"] = structpb.NewStringValue(strconv.FormatUint(resp.Query.ShuffleNonce, 10))
	}
	return out, nil
}

// GetBook 图书详情,请求字段:id
func (s *CatalogServiceServer) GetBook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req.GetFields(), "id")
	if id == "" {
		return nil, apperrors.ErrInvalidParams.WithMessage("图书ID不能为空")
	}

	item, err := s.getBook.Execute(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStruct(item)
}

// ListFacets 过滤条件元数据,请求为空Struct
func (s *CatalogServiceServer) ListFacets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(s.listFacets.Execute(ctx))
}

func stringField(fields map[string]*structpb.Value, key string) string {
	return fields[key].GetStringValue()
}

// maxExactNonce double能精确表示的最大整数,更大的nonce必须用字符串传
const maxExactNonce = 1 << 53

// uintField 读取非负整数字段
// Struct中的数字都是double,超过2^53的值会被舍入,这种情况要求改用十进制字符串
func uintField(fields map[string]*structpb.Value, key string) (uint64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		n, err := strconv.ParseUint(kind.StringValue, 10, 64)
		if err != nil {
			return 0, apperrors.ErrInvalidParams.WithMessage(key + "必须是非负整数")
		}
		return n, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n < 0 || n != math.Trunc(n) {
			return 0, apperrors.ErrInvalidParams.WithMessage(key + "必须是非负整数")
		}
		if n > maxExactNonce {
			return 0, apperrors.ErrInvalidParams.WithMessage(key + "超过2^53,请使用十进制字符串")
		}
		return uint64(n), nil
	default:
		return 0, apperrors.ErrInvalidParams.WithMessage(key + "必须是数字或十进制字符串")
	}
}

// toStruct DTO → Struct(经过JSON,字段名与HTTP接口一致)
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(err, "响应序列化失败")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(err, "响应序列化失败")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, apperrors.Wrap(err, "响应序列化失败")
	}
	return s, nil
}
