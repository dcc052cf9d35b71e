package handler

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/core/service"
)

type GRPCHandler struct {
	pb.UnimplementedPOSServer
	pos *service.POSService
}

func NewGRPCHandler(pos *service.POSService) *GRPCHandler {
	return &GRPCHandler{pos: pos}
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *pb.GetCartRequest) (*pb.Cart, error) {
	return toCart(h.pos.Cart()), nil
}

func (h *GRPCHandler) AddToCart(ctx context.Context, req *pb.AddToCartRequest) (*pb.Cart, error) {
	if req.GetItemId() == "" {
		return nil, status.Error(codes.InvalidArgument, "item_id is required")
	}
	if _, err := h.pos.AddToCart(req.GetItemId()); err != nil {
		return nil, grpcError(err)
	}
	return toCart(h.pos.Cart()), nil
}

func (h *GRPCHandler) AdjustQuantity(ctx context.Context, req *pb.AdjustQuantityRequest) (*pb.Cart, error) {
	if req.GetDelta() == 0 {
		return nil, status.Error(codes.InvalidArgument, "non-zero delta is required")
	}
	view, err := h.pos.AdjustQuantity(req.GetItemId(), int(req.GetDelta()))
	if err != nil {
		return nil, grpcError(err)
	}
	return toCart(view), nil
}

func (h *GRPCHandler) Scan(ctx context.Context, req *pb.ScanRequest) (*pb.ScanResponse, error) {
	outcome, err := h.pos.Scan(ctx, strings.TrimSpace(req.GetBarcode()))
	if err != nil {
		return nil, grpcError(err)
	}
	return toScanResponse(outcome, h.pos.Cart()), nil
}

// CreateItem registers the item remotely and puts it in the cart. A scan
// miss candidate can be sent back as is once name and price are filled.
func (h *GRPCHandler) CreateItem(ctx context.Context, req *pb.CreateItemRequest) (*pb.CreateItemResponse, error) {
	in := req.GetItem()
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "item is required")
	}
	price, err := parsePriceText(in.GetPrice())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid price")
	}

	item, err := h.pos.CreateItem(ctx, domain.NewItem{
		Name:     in.GetName(),
		Price:    price,
		SKU:      in.GetSku(),
		Category: in.GetCategory(),
	})
	if err != nil {
		return nil, grpcError(err)
	}

	view := h.pos.Cart()
	out := &pb.CreateItemResponse{ItemId: item.ID, Cart: toCart(view)}
	for _, l := range view.Lines {
		if l.ID == item.ID {
			out.Line = toCartLine(l)
			break
		}
	}
	return out, nil
}

func (h *GRPCHandler) Checkout(ctx context.Context, req *pb.CheckoutRequest) (*pb.CheckoutResponse, error) {
	result, err := h.pos.Checkout(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	return toCheckoutResponse(result), nil
}
