// Package catalogv1 目录gRPC服务定义
//
// 消息统一使用google.protobuf.Struct,字段与HTTP接口的JSON一致:
//
//	service wizardshop.catalog.v1.CatalogService {
//	  rpc QueryBooks(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc GetBook(google.protobuf.Struct)    returns (google.protobuf.Struct);
//	  rpc ListFacets(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
//
// 服务描述手写而不是由protoc生成,客户端用grpcurl或本包的Client调用:
//
//	grpcurl -plaintext -d '{"section":"rare"}' localhost:9090 wizardshop.catalog.v1.CatalogService/QueryBooks
package catalogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName 完整服务名(健康检查也使用它)
const ServiceName = "wizardshop.catalog.v1.CatalogService"

const (
	QueryBooksFullMethodName = "/" + ServiceName + "/QueryBooks"
	GetBookFullMethodName    = "/" + ServiceName + "/GetBook"
	ListFacetsFullMethodName = "/" + ServiceName + "/ListFacets"
)

// CatalogServiceServer 服务端接口
type CatalogServiceServer interface {
	QueryBooks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBook(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListFacets(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCatalogServiceServer 注册服务实现
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

type unaryMethod func(srv CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// handler 把类型化的方法适配成grpc.MethodHandler
func handler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

// CatalogService_ServiceDesc 服务描述
var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "QueryBooks",
			Handler: handler(QueryBooksFullMethodName, func(srv CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.QueryBooks(ctx, in)
			}),
		},
		{
			MethodName: "GetBook",
			Handler: handler(GetBookFullMethodName, func(srv CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetBook(ctx, in)
			}),
		},
		{
			MethodName: "ListFacets",
			Handler: handler(ListFacetsFullMethodName, func(srv CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListFacets(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wizardshop/catalog/v1/catalog.proto",
}

// CatalogServiceClient 客户端
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient 创建客户端
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

// QueryBooks 查询目录
func (c *CatalogServiceClient) QueryBooks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, QueryBooksFullMethodName, in, opts...)
}

// GetBook 图书详情
func (c *CatalogServiceClient) GetBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetBookFullMethodName, in, opts...)
}

// ListFacets 过滤条件元数据
func (c *CatalogServiceClient) ListFacets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListFacetsFullMethodName, in, opts...)
}

func (c *CatalogServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
