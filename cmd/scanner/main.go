package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
)

const (
	cmdCheckout = "!checkout"
	cmdCart     = "!cart"
	cmdNew      = "!new"
)

// scanner forwards barcodes from a keyboard-wedge scanner, one per line, to
// the terminal over gRPC. "!cart" prints the cart and "!checkout" submits it.
// After an unknown code, "!new <price> <name>" creates the item with that code
// as its SKU.
func main() {
	addr := flag.String("addr", "localhost:50051", "terminal gRPC address")
	timeout := flag.Duration("timeout", 20*time.Second, "per-request timeout")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.WithError(err).Fatal("failed to create client")
	}
	defer conn.Close()

	client := pb.NewPOSClient(conn)
	if err := run(client, os.Stdin, os.Stdout, *timeout); err != nil {
		log.WithError(err).Fatal("scanner stopped")
	}
}

// session remembers the creation candidate of the last scan miss.
type session struct {
	client    pb.POSClient
	out       io.Writer
	candidate *pb.NewItem
}

func run(client pb.POSClient, in io.Reader, out io.Writer, timeout time.Duration) error {
	s := &session{client: client, out: out}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := s.handleLine(ctx, line)
		cancel()
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", status.Convert(err).Message())
		}
	}
	return sc.Err()
}

func (s *session) handleLine(ctx context.Context, line string) error {
	out := s.out
	switch {
	case line == cmdCart:
		cart, err := s.client.GetCart(ctx, &pb.GetCartRequest{})
		if err != nil {
			return err
		}
		printCart(out, cart)
		return nil

	case line == cmdCheckout:
		res, err := s.client.Checkout(ctx, &pb.CheckoutRequest{}, grpc.WaitForReady(true))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "invoice %s saved\n", res.GetInvoiceId())
		if r := res.GetReceipt(); r != nil {
			fmt.Fprintf(out, "total %s\n", r.TotalText)
		}
		return nil

	case line == cmdNew || strings.HasPrefix(line, cmdNew+" "):
		return s.createItem(ctx, strings.TrimSpace(strings.TrimPrefix(line, cmdNew)))
	}

	res, err := s.client.Scan(ctx, &pb.ScanRequest{Barcode: line})
	if err != nil {
		return err
	}
	if !res.GetHit() {
		s.candidate = res.GetCandidate()
		fmt.Fprintf(out, "%s: not in catalog (add with: %s <price> <name>)\n", line, cmdNew)
		return nil
	}
	s.candidate = nil
	l := res.GetLine()
	fmt.Fprintf(out, "%s x%d  (%d items, %s)\n", l.Name, l.Qty, res.GetCart().GetCount(), res.GetCart().GetTotalText())
	return nil
}

func (s *session) createItem(ctx context.Context, args string) error {
	if s.candidate == nil {
		fmt.Fprintln(s.out, "scan an unknown code first")
		return nil
	}
	price, name, _ := strings.Cut(args, " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintf(s.out, "usage: %s <price> <name>\n", cmdNew)
		return nil
	}

	item := *s.candidate
	item.Price = price
	item.Name = strings.TrimSpace(name)
	res, err := s.client.CreateItem(ctx, &pb.CreateItemRequest{Item: &item})
	if err != nil {
		return err
	}
	s.candidate = nil
	fmt.Fprintf(s.out, "%s added as %s  (%d items, %s)\n", item.Name, res.GetItemId(), res.GetCart().GetCount(), res.GetCart().GetTotalText())
	return nil
}

func printCart(out io.Writer, cart *pb.Cart) {
	for _, l := range cart.GetLines() {
		fmt.Fprintf(out, "%-24s x%-3d %s\n", l.Name, l.Qty, l.Subtotal)
	}
	fmt.Fprintf(out, "%d items, %s\n", cart.GetCount(), cart.GetTotalText())
}
