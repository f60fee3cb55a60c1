package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
)

const ServiceName = "liftright.v1.DataService"

// DataServiceServer mirrors the HTTP surface. Messages are protobuf well-known
// types carrying the same JSON shapes the HTTP endpoints accept.
type DataServiceServer interface {
	Heartbeat(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	AddRepetition(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RtfbStatus(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	SubmitSurvey(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	AddImuRecords(context.Context, *structpb.ListValue) (*emptypb.Empty, error)
}

type DataServer struct {
	Gateway            *liftright.Gateway
	PersistSubmissions bool
	Clock              func() time.Time
}

func (s *DataServer) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp any](name string, call func(DataServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DataServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DataServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var DataServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DataServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Heartbeat", DataServiceServer.Heartbeat),
		unary("AddRepetition", DataServiceServer.AddRepetition),
		unary("RtfbStatus", DataServiceServer.RtfbStatus),
		unary("SubmitSurvey", DataServiceServer.SubmitSurvey),
		unary("AddImuRecords", DataServiceServer.AddImuRecords),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "liftright/v1/data_service.proto",
}

func RegisterDataServiceServer(s grpc.ServiceRegistrar, srv DataServiceServer) {
	s.RegisterService(&DataServiceDesc, srv)
}

// NewServer returns a traced grpc server serving ds. Requests are capped at
// the HTTP body limit; heartbeats are logged at debug level.
func NewServer(ds *DataServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.MaxRecvMsgSize(int(common.MaxBodyBytes)),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			CreateRecoveryInterceptor(),
			CreateAccessLogInterceptor([]string{"Heartbeat"}),
		),
	}, opts...)

	s := grpc.NewServer(opts...)
	RegisterDataServiceServer(s, ds)
	return s
}

type DataServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDataServiceClient(cc grpc.ClientConnInterface) *DataServiceClient {
	return &DataServiceClient{cc: cc}
}

func (c *DataServiceClient) Heartbeat(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, fullMethod("Heartbeat"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DataServiceClient) AddRepetition(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("AddRepetition"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DataServiceClient) RtfbStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, fullMethod("RtfbStatus"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DataServiceClient) SubmitSurvey(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("SubmitSurvey"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DataServiceClient) AddImuRecords(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("AddImuRecords"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
