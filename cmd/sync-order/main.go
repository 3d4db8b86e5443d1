// Syncs one VTEX order into Sankhya: partner, order note, confirmation,
// invoice, optional document forward back to VTEX.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya"
	"vtex-sankhya-sync/internal/adapters/vtex"
	"vtex-sankhya-sync/internal/app/usecases"
	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/infra/httpx"
	"vtex-sankhya-sync/internal/logging"
)

func main() {
	orderID := flag.String("order", "", "VTEX order id to sync")
	forward := flag.Bool("send-invoice", false, "forward the invoice document to VTEX")
	flag.Parse()

	if *orderID == "" {
		fmt.Println("usage: sync-order -order <vtex-order-id> [-send-invoice]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config error: %v\n", err)
		os.Exit(1)
	}

	zaplog, err := logging.NewZapLog(cfg.Log)
	if err != nil {
		fmt.Printf("logger error: %v\n", err)
		os.Exit(1)
	}
	defer zaplog.Sync()

	vtexHTTP := httpx.NewClient(cfg.Vtex.Timeout)
	snkHTTP := httpx.NewClient(cfg.Sankhya.Timeout)
	notifier := logging.NewNotifier(cfg.TelegramBot, vtexHTTP)

	vtexClient := vtex.NewClient(cfg.Vtex, vtexHTTP, zaplog)
	snkClient := sankhya.NewClient(cfg.Sankhya, snkHTTP, zaplog)

	partners := usecases.NewSyncPartner(vtexClient, snkClient, zaplog)
	orders := usecases.NewSyncOrder(vtexClient, vtexClient, partners, snkClient, notifier, zaplog)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := orders.Run(ctx, *orderID, *forward); err != nil {
		zaplog.Error("order sync failed", zap.String("order_id", *orderID), zap.Error(err))
		os.Exit(1)
	}
}
