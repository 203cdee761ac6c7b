package productform

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "productform.v1.ProductFormService"

// Every method takes and returns a google.protobuf.Struct, so the service
// needs no generated message types.
type ProductFormServiceServer interface {
	Open(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Edit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddOffer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteOffer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetTab(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Discard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Retry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Close(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ProductFormServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(ProductFormServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes ProductFormService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductFormServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Open", ProductFormServiceServer.Open),
		unaryHandler("GetState", ProductFormServiceServer.GetState),
		unaryHandler("Edit", ProductFormServiceServer.Edit),
		unaryHandler("AddOffer", ProductFormServiceServer.AddOffer),
		unaryHandler("DeleteOffer", ProductFormServiceServer.DeleteOffer),
		unaryHandler("SetTab", ProductFormServiceServer.SetTab),
		unaryHandler("SaveAll", ProductFormServiceServer.SaveAll),
		unaryHandler("Discard", ProductFormServiceServer.Discard),
		unaryHandler("Retry", ProductFormServiceServer.Retry),
		unaryHandler("Close", ProductFormServiceServer.Close),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "productform/v1/product_form.proto",
}

func RegisterProductFormServiceServer(s grpc.ServiceRegistrar, srv ProductFormServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is a minimal client for ProductFormService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with in and returns the response payload.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
