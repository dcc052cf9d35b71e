package handler

import (
	"time"

	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/core/service"
)

func toCartLine(l domain.CartLine) *pb.CartLine {
	return &pb.CartLine{
		ItemId:   l.ID,
		Name:     l.Name,
		Price:    l.Price.String(),
		Qty:      int32(l.Qty),
		Subtotal: l.Subtotal().String(),
	}
}

func toCart(v domain.CartView) *pb.Cart {
	out := &pb.Cart{
		Lines:     make([]*pb.CartLine, 0, len(v.Lines)),
		Count:     int32(v.Count),
		Total:     v.Total.String(),
		TotalText: domain.FormatMoney(v.Total),
	}
	for _, l := range v.Lines {
		out.Lines = append(out.Lines, toCartLine(l))
	}
	return out
}

func toReceipt(r domain.Receipt) *pb.Receipt {
	out := &pb.Receipt{
		InvoiceId: r.InvoiceID,
		Date:      r.Date,
		Total:     r.Total.String(),
		TotalText: domain.FormatMoney(r.Total),
		Lines:     make([]*pb.ReceiptLine, 0, len(r.Lines)),
		ShopName:  r.ShopName,
		ShopPhone: r.ShopPhone,
		Thanks:    r.Thanks,
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, &pb.ReceiptLine{
			Name:   l.Name,
			Qty:    int32(l.Qty),
			Amount: l.Amount().String(),
		})
	}
	return out
}

func toScanResponse(o domain.ScanOutcome, cart domain.CartView) *pb.ScanResponse {
	out := &pb.ScanResponse{Code: o.Code, Hit: o.Hit, Cart: toCart(cart)}
	if o.Hit {
		out.Line = toCartLine(o.Line)
	}
	if o.Candidate != nil {
		out.Candidate = &pb.NewItem{
			Name:     o.Candidate.Name,
			Price:    o.Candidate.Price.String(),
			Sku:      o.Candidate.SKU,
			Category: o.Candidate.Category,
		}
	}
	return out
}

func toCheckoutResponse(r service.CheckoutResult) *pb.CheckoutResponse {
	out := &pb.CheckoutResponse{RequestId: r.RequestID, InvoiceId: r.InvoiceID}
	if r.Receipt != nil {
		out.Receipt = toReceipt(*r.Receipt)
	}
	if r.ReceiptErr != nil {
		out.ReceiptError = r.ReceiptErr.Error()
	}
	return out
}

type itemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	PriceText string `json:"price_text"`
	SKU       string `json:"sku,omitempty"`
	Category  string `json:"category,omitempty"`
}

func toItems(items []domain.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItem(it))
	}
	return out
}

func toItem(it domain.Item) itemDTO {
	return itemDTO{
		ID:        it.ID,
		Name:      it.Name,
		Price:     it.Price.String(),
		PriceText: domain.FormatMoney(it.Price),
		SKU:       it.SKU,
		Category:  it.Category,
	}
}

type noticeDTO struct {
	Level   domain.NoticeLevel `json:"level"`
	Message string             `json:"message"`
	Time    time.Time          `json:"time"`
}

func toNotice(n domain.Notice) noticeDTO {
	return noticeDTO{Level: n.Level, Message: n.Message, Time: n.Time}
}
