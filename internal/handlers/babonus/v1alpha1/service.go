package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "babonus.v1alpha1.BonusService"

// BonusServiceServer is the server API for the bonus service. Every payload
// is a google.protobuf.Struct.
type BonusServiceServer interface {
	EvaluateRoll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	TokensInRange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MinimumDistance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ResolveProficiencyPath(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListBonuses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ToggleBonus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteBonus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RecoverPanic turns a panic inside a handler into an Internal status.
// Install it with the recovery interceptor's WithRecoveryHandlerContext.
func RecoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "recovered from panic in gRPC handler", "panic", p)
	return status.Error(codes.Internal, "internal error")
}

type unaryCall func(srv BonusServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BonusServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BonusServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BonusServiceDesc describes the bonus service for grpc.Server registration
var BonusServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BonusServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("EvaluateRoll", BonusServiceServer.EvaluateRoll),
		unary("TokensInRange", BonusServiceServer.TokensInRange),
		unary("MinimumDistance", BonusServiceServer.MinimumDistance),
		unary("ResolveProficiencyPath", BonusServiceServer.ResolveProficiencyPath),
		unary("ListBonuses", BonusServiceServer.ListBonuses),
		unary("ToggleBonus", BonusServiceServer.ToggleBonus),
		unary("DeleteBonus", BonusServiceServer.DeleteBonus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "babonus/v1alpha1/bonus_service.proto",
}

// RegisterBonusServiceServer registers the handler with a gRPC server
func RegisterBonusServiceServer(s grpc.ServiceRegistrar, srv BonusServiceServer) {
	s.RegisterService(&BonusServiceDesc, srv)
}

// BonusServiceClient calls the bonus service
type BonusServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBonusServiceClient creates a client over an existing connection
func NewBonusServiceClient(cc grpc.ClientConnInterface) *BonusServiceClient {
	return &BonusServiceClient{cc: cc}
}

// Call invokes a unary method by name
func (c *BonusServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
