package assistantv1

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/pkg/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "omnipos.assistant.v1.AssistantService"

const (
	AssistantService_Plan_FullMethodName    = "/" + ServiceName + "/Plan"
	AssistantService_Execute_FullMethodName = "/" + ServiceName + "/Execute"
	AssistantService_GetRun_FullMethodName  = "/" + ServiceName + "/GetRun"
)

// AssistantServiceClient is the client API for AssistantService. Every call
// requests the JSON content-subtype.
type AssistantServiceClient interface {
	Plan(ctx context.Context, in *PlanRequest, opts ...grpc.CallOption) (*PlanResponse, error)
	Execute(ctx context.Context, in *ExecuteRequest, opts ...grpc.CallOption) (*ExecuteResponse, error)
	GetRun(ctx context.Context, in *GetRunRequest, opts ...grpc.CallOption) (*GetRunResponse, error)
}

type assistantServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAssistantServiceClient(cc grpc.ClientConnInterface) AssistantServiceClient {
	return &assistantServiceClient{cc}
}

func (c *assistantServiceClient) Plan(ctx context.Context, in *PlanRequest, opts ...grpc.CallOption) (*PlanResponse, error) {
	out := new(PlanResponse)
	if err := c.cc.Invoke(ctx, AssistantService_Plan_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *assistantServiceClient) Execute(ctx context.Context, in *ExecuteRequest, opts ...grpc.CallOption) (*ExecuteResponse, error) {
	out := new(ExecuteResponse)
	if err := c.cc.Invoke(ctx, AssistantService_Execute_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *assistantServiceClient) GetRun(ctx context.Context, in *GetRunRequest, opts ...grpc.CallOption) (*GetRunResponse, error) {
	out := new(GetRunResponse)
	if err := c.cc.Invoke(ctx, AssistantService_GetRun_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

// AssistantServiceServer is the server API for AssistantService.
type AssistantServiceServer interface {
	Plan(context.Context, *PlanRequest) (*PlanResponse, error)
	Execute(context.Context, *ExecuteRequest) (*ExecuteResponse, error)
	GetRun(context.Context, *GetRunRequest) (*GetRunResponse, error)
}

// UnimplementedAssistantServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedAssistantServiceServer struct{}

func (UnimplementedAssistantServiceServer) Plan(context.Context, *PlanRequest) (*PlanResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Plan not implemented")
}

func (UnimplementedAssistantServiceServer) Execute(context.Context, *ExecuteRequest) (*ExecuteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Execute not implemented")
}

func (UnimplementedAssistantServiceServer) GetRun(context.Context, *GetRunRequest) (*GetRunResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRun not implemented")
}

func RegisterAssistantServiceServer(s grpc.ServiceRegistrar, srv AssistantServiceServer) {
	s.RegisterService(&AssistantService_ServiceDesc, srv)
}

func _AssistantService_Plan_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssistantServiceServer).Plan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AssistantService_Plan_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssistantServiceServer).Plan(ctx, req.(*PlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AssistantService_Execute_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExecuteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssistantServiceServer).Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AssistantService_Execute_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssistantServiceServer).Execute(ctx, req.(*ExecuteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _AssistantService_GetRun_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRunRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssistantServiceServer).GetRun(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AssistantService_GetRun_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssistantServiceServer).GetRun(ctx, req.(*GetRunRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var AssistantService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssistantServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Plan", Handler: _AssistantService_Plan_Handler},
		{MethodName: "Execute", Handler: _AssistantService_Execute_Handler},
		{MethodName: "GetRun", Handler: _AssistantService_GetRun_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/assistant/v1/assistant.proto",
}
