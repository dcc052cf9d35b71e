package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	POS_GetCart_FullMethodName        = "/smartpos.POS/GetCart"
	POS_AddToCart_FullMethodName      = "/smartpos.POS/AddToCart"
	POS_AdjustQuantity_FullMethodName = "/smartpos.POS/AdjustQuantity"
	POS_Scan_FullMethodName           = "/smartpos.POS/Scan"
	POS_CreateItem_FullMethodName     = "/smartpos.POS/CreateItem"
	POS_Checkout_FullMethodName       = "/smartpos.POS/Checkout"
)

type POSClient interface {
	GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*Cart, error)
	AddToCart(ctx context.Context, in *AddToCartRequest, opts ...grpc.CallOption) (*Cart, error)
	AdjustQuantity(ctx context.Context, in *AdjustQuantityRequest, opts ...grpc.CallOption) (*Cart, error)
	Scan(ctx context.Context, in *ScanRequest, opts ...grpc.CallOption) (*ScanResponse, error)
	CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*CreateItemResponse, error)
	Checkout(ctx context.Context, in *CheckoutRequest, opts ...grpc.CallOption) (*CheckoutResponse, error)
}

type posClient struct {
	cc grpc.ClientConnInterface
}

// NewPOSClient returns a client that always speaks the JSON codec.
func NewPOSClient(cc grpc.ClientConnInterface) POSClient {
	return &posClient{cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *posClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*Cart, error) {
	out := new(Cart)
	if err := c.cc.Invoke(ctx, POS_GetCart_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posClient) AddToCart(ctx context.Context, in *AddToCartRequest, opts ...grpc.CallOption) (*Cart, error) {
	out := new(Cart)
	if err := c.cc.Invoke(ctx, POS_AddToCart_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posClient) AdjustQuantity(ctx context.Context, in *AdjustQuantityRequest, opts ...grpc.CallOption) (*Cart, error) {
	out := new(Cart)
	if err := c.cc.Invoke(ctx, POS_AdjustQuantity_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posClient) Scan(ctx context.Context, in *ScanRequest, opts ...grpc.CallOption) (*ScanResponse, error) {
	out := new(ScanResponse)
	if err := c.cc.Invoke(ctx, POS_Scan_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*CreateItemResponse, error) {
	out := new(CreateItemResponse)
	if err := c.cc.Invoke(ctx, POS_CreateItem_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posClient) Checkout(ctx context.Context, in *CheckoutRequest, opts ...grpc.CallOption) (*CheckoutResponse, error) {
	out := new(CheckoutResponse)
	if err := c.cc.Invoke(ctx, POS_Checkout_FullMethodName, in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

type POSServer interface {
	GetCart(context.Context, *GetCartRequest) (*Cart, error)
	AddToCart(context.Context, *AddToCartRequest) (*Cart, error)
	AdjustQuantity(context.Context, *AdjustQuantityRequest) (*Cart, error)
	Scan(context.Context, *ScanRequest) (*ScanResponse, error)
	CreateItem(context.Context, *CreateItemRequest) (*CreateItemResponse, error)
	Checkout(context.Context, *CheckoutRequest) (*CheckoutResponse, error)
	mustEmbedUnimplementedPOSServer()
}

type UnimplementedPOSServer struct{}

func (UnimplementedPOSServer) GetCart(context.Context, *GetCartRequest) (*Cart, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCart not implemented")
}
func (UnimplementedPOSServer) AddToCart(context.Context, *AddToCartRequest) (*Cart, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddToCart not implemented")
}
func (UnimplementedPOSServer) AdjustQuantity(context.Context, *AdjustQuantityRequest) (*Cart, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AdjustQuantity not implemented")
}
func (UnimplementedPOSServer) Scan(context.Context, *ScanRequest) (*ScanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Scan not implemented")
}
func (UnimplementedPOSServer) CreateItem(context.Context, *CreateItemRequest) (*CreateItemResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateItem not implemented")
}
func (UnimplementedPOSServer) Checkout(context.Context, *CheckoutRequest) (*CheckoutResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Checkout not implemented")
}
func (UnimplementedPOSServer) mustEmbedUnimplementedPOSServer() {}

func RegisterPOSServer(s grpc.ServiceRegistrar, srv POSServer) {
	s.RegisterService(&POS_ServiceDesc, srv)
}

func _POS_GetCart_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).GetCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_GetCart_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).GetCart(ctx, req.(*GetCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _POS_AddToCart_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddToCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).AddToCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_AddToCart_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).AddToCart(ctx, req.(*AddToCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _POS_AdjustQuantity_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AdjustQuantityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).AdjustQuantity(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_AdjustQuantity_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).AdjustQuantity(ctx, req.(*AdjustQuantityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _POS_Scan_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ScanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).Scan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_Scan_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).Scan(ctx, req.(*ScanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _POS_CreateItem_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).CreateItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_CreateItem_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).CreateItem(ctx, req.(*CreateItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _POS_Checkout_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckoutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).Checkout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: POS_Checkout_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).Checkout(ctx, req.(*CheckoutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var POS_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "smartpos.POS",
	HandlerType: (*POSServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: _POS_GetCart_Handler},
		{MethodName: "AddToCart", Handler: _POS_AddToCart_Handler},
		{MethodName: "AdjustQuantity", Handler: _POS_AdjustQuantity_Handler},
		{MethodName: "Scan", Handler: _POS_Scan_Handler},
		{MethodName: "CreateItem", Handler: _POS_CreateItem_Handler},
		{MethodName: "Checkout", Handler: _POS_Checkout_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smartpos/pos.proto",
}
