package handler

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
)

func newGRPCClient(t *testing.T, env *testEnv) pb.POSClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterPOSServer(srv, NewGRPCHandler(env.pos))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewPOSClient(conn)
}

func TestGRPC_ScanAndCheckout(t *testing.T) {
	env := newTestEnv(t, true)
	client := newGRPCClient(t, env)
	ctx := context.Background()

	cart, err := client.AddToCart(ctx, &pb.AddToCartRequest{ItemId: "1"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), cart.GetCount())

	scan, err := client.Scan(ctx, &pb.ScanRequest{Barcode: "111"})
	require.NoError(t, err)
	assert.True(t, scan.GetHit())
	assert.Equal(t, int32(2), scan.GetLine().Qty)

	scan, err = client.Scan(ctx, &pb.ScanRequest{Barcode: "222"})
	require.NoError(t, err)
	assert.Equal(t, "Ks 2,200", scan.GetCart().GetTotalText())

	cart, err = client.AdjustQuantity(ctx, &pb.AdjustQuantityRequest{ItemId: "1", Delta: -1})
	require.NoError(t, err)
	assert.Equal(t, int32(2), cart.GetCount())

	out, err := client.Checkout(ctx, &pb.CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV1", out.GetInvoiceId())
	require.NotNil(t, out.GetReceipt())

	cart, err = client.GetCart(ctx, &pb.GetCartRequest{})
	require.NoError(t, err)
	assert.Empty(t, cart.GetLines())
}

func TestGRPC_ErrorCodes(t *testing.T) {
	env := newTestEnv(t, true)
	client := newGRPCClient(t, env)
	ctx := context.Background()

	_, err := client.AddToCart(ctx, &pb.AddToCartRequest{ItemId: "404"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.AddToCart(ctx, &pb.AddToCartRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.AdjustQuantity(ctx, &pb.AdjustQuantityRequest{ItemId: "1", Delta: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Checkout(ctx, &pb.CheckoutRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Scan(ctx, &pb.ScanRequest{Barcode: "  "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_CheckoutUnavailableKeepsCart(t *testing.T) {
	env := newTestEnv(t, true)
	client := newGRPCClient(t, env)
	ctx := context.Background()

	_, err := client.AddToCart(ctx, &pb.AddToCartRequest{ItemId: "2"})
	require.NoError(t, err)

	require.NoError(t, env.pos.Settings.SetAPIBase(ctx, "http://127.0.0.1:1/exec"))
	_, err = client.Checkout(ctx, &pb.CheckoutRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, 1, env.pos.Cart().Count)
}

func TestGRPC_CreateItemFromScanMiss(t *testing.T) {
	env := newTestEnv(t, true)
	client := newGRPCClient(t, env)
	ctx := context.Background()

	scan, err := client.Scan(ctx, &pb.ScanRequest{Barcode: "777"})
	require.NoError(t, err)
	require.False(t, scan.GetHit())
	candidate := scan.GetCandidate()
	require.NotNil(t, candidate)
	assert.Equal(t, "777", candidate.GetSku())

	candidate.Name = "Milk"
	candidate.Price = "1500"
	created, err := client.CreateItem(ctx, &pb.CreateItemRequest{Item: candidate})
	require.NoError(t, err)
	assert.Equal(t, "9", created.GetItemId())
	require.NotNil(t, created.GetLine())
	assert.Equal(t, int32(1), created.GetLine().Qty)
	assert.Equal(t, "Ks 1,500", created.GetCart().GetTotalText())

	scan, err = client.Scan(ctx, &pb.ScanRequest{Barcode: "777"})
	require.NoError(t, err)
	assert.True(t, scan.GetHit())
	assert.Equal(t, int32(2), scan.GetLine().Qty)

	_, err = client.CreateItem(ctx, &pb.CreateItemRequest{Item: &pb.NewItem{Name: " ", Sku: "778"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.CreateItem(ctx, &pb.CreateItemRequest{Item: &pb.NewItem{Name: "X", Price: "abc"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.CreateItem(ctx, &pb.CreateItemRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
