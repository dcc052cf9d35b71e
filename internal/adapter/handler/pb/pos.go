package pb

type CartLine struct {
	ItemId   string `json:"item_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Qty      int32  `json:"qty"`
	Subtotal string `json:"subtotal"`
}

type Cart struct {
	Lines     []*CartLine `json:"lines"`
	Count     int32       `json:"count"`
	Total     string      `json:"total"`
	TotalText string      `json:"total_text"`
}

func (x *Cart) GetLines() []*CartLine {
	if x != nil {
		return x.Lines
	}
	return nil
}

func (x *Cart) GetCount() int32 {
	if x != nil {
		return x.Count
	}
	return 0
}

func (x *Cart) GetTotalText() string {
	if x != nil {
		return x.TotalText
	}
	return ""
}

type GetCartRequest struct{}

type AddToCartRequest struct {
	ItemId string `json:"item_id"`
}

func (x *AddToCartRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

type AdjustQuantityRequest struct {
	ItemId string `json:"item_id"`
	Delta  int32  `json:"delta"`
}

func (x *AdjustQuantityRequest) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

func (x *AdjustQuantityRequest) GetDelta() int32 {
	if x != nil {
		return x.Delta
	}
	return 0
}

type ScanRequest struct {
	Barcode string `json:"barcode"`
}

func (x *ScanRequest) GetBarcode() string {
	if x != nil {
		return x.Barcode
	}
	return ""
}

type NewItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Sku      string `json:"sku"`
	Category string `json:"category"`
}

func (x *NewItem) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *NewItem) GetPrice() string {
	if x != nil {
		return x.Price
	}
	return ""
}

func (x *NewItem) GetSku() string {
	if x != nil {
		return x.Sku
	}
	return ""
}

func (x *NewItem) GetCategory() string {
	if x != nil {
		return x.Category
	}
	return ""
}

type CreateItemRequest struct {
	Item *NewItem `json:"item"`
}

func (x *CreateItemRequest) GetItem() *NewItem {
	if x != nil {
		return x.Item
	}
	return nil
}

type CreateItemResponse struct {
	ItemId string    `json:"item_id"`
	Line   *CartLine `json:"line"`
	Cart   *Cart     `json:"cart"`
}

func (x *CreateItemResponse) GetItemId() string {
	if x != nil {
		return x.ItemId
	}
	return ""
}

func (x *CreateItemResponse) GetLine() *CartLine {
	if x != nil {
		return x.Line
	}
	return nil
}

func (x *CreateItemResponse) GetCart() *Cart {
	if x != nil {
		return x.Cart
	}
	return nil
}

type ScanResponse struct {
	Code      string    `json:"code"`
	Hit       bool      `json:"hit"`
	Line      *CartLine `json:"line,omitempty"`
	Candidate *NewItem  `json:"candidate,omitempty"`
	Cart      *Cart     `json:"cart"`
}

func (x *ScanResponse) GetHit() bool {
	if x != nil {
		return x.Hit
	}
	return false
}

func (x *ScanResponse) GetLine() *CartLine {
	if x != nil {
		return x.Line
	}
	return nil
}

func (x *ScanResponse) GetCandidate() *NewItem {
	if x != nil {
		return x.Candidate
	}
	return nil
}

func (x *ScanResponse) GetCart() *Cart {
	if x != nil {
		return x.Cart
	}
	return nil
}

type CheckoutRequest struct{}

type ReceiptLine struct {
	Name   string `json:"name"`
	Qty    int32  `json:"qty"`
	Amount string `json:"amount"`
}

type Receipt struct {
	InvoiceId string         `json:"invoice_id"`
	Date      string         `json:"date"`
	Total     string         `json:"total"`
	TotalText string         `json:"total_text"`
	Lines     []*ReceiptLine `json:"lines"`
	ShopName  string         `json:"shop_name"`
	ShopPhone string         `json:"shop_phone"`
	Thanks    string         `json:"thanks"`
}

type CheckoutResponse struct {
	RequestId    string   `json:"request_id"`
	InvoiceId    string   `json:"invoice_id"`
	Receipt      *Receipt `json:"receipt,omitempty"`
	ReceiptError string   `json:"receipt_error,omitempty"`
}

func (x *CheckoutResponse) GetInvoiceId() string {
	if x != nil {
		return x.InvoiceId
	}
	return ""
}

func (x *CheckoutResponse) GetReceipt() *Receipt {
	if x != nil {
		return x.Receipt
	}
	return nil
}
