// Syncs only the buyer of one VTEX order into the Sankhya partner
// registry, without touching orders.
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
	orderID := flag.String("order", "", "VTEX order id whose buyer to sync")
	flag.Parse()

	if *orderID == "" {
		fmt.Println("usage: sync-partner -order <vtex-order-id>")
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

	vtexClient := vtex.NewClient(cfg.Vtex, httpx.NewClient(cfg.Vtex.Timeout), zaplog)
	snkClient := sankhya.NewClient(cfg.Sankhya, httpx.NewClient(cfg.Sankhya.Timeout), zaplog)

	partners := usecases.NewSyncPartner(vtexClient, snkClient, zaplog)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	code, err := partners.Run(ctx, *orderID)
	if err != nil {
		zaplog.Error("partner sync failed", zap.String("order_id", *orderID), zap.Error(err))
		os.Exit(1)
	}
	zaplog.Info("partner sync completed", zap.String("order_id", *orderID), zap.String("partner_code", code))
}
