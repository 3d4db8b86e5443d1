// Forwards a previously fetched invoice document to a VTEX order.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/vtex"
	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/domain/model"
	"vtex-sankhya-sync/internal/infra/httpx"
	"vtex-sankhya-sync/internal/logging"
)

func main() {
	orderID := flag.String("order", "", "VTEX order id to attach the invoice to")
	file := flag.String("file", "", "path to the invoice document")
	flag.Parse()

	if *orderID == "" || *file == "" {
		fmt.Println("usage: send-invoice -order <vtex-order-id> -file <invoice-document>")
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

	content, err := os.ReadFile(*file)
	if err != nil {
		zaplog.Error("cannot read invoice document", zap.String("file", *file), zap.Error(err))
		os.Exit(1)
	}

	httpClient := httpx.NewClient(cfg.Vtex.Timeout)
	notifier := logging.NewNotifier(cfg.TelegramBot, httpClient)
	vtexClient := vtex.NewClient(cfg.Vtex, httpClient, zaplog)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc := model.InvoiceDocument{Content: string(content)}
	echo, err := vtexClient.SendInvoice(ctx, *orderID, doc)
	if err != nil {
		notifier.NotifyError(fmt.Sprintf("invoice forward to order %s failed: %v", *orderID, err))
		zaplog.Error("invoice send failed", zap.String("order_id", *orderID), zap.Error(err))
		os.Exit(1)
	}

	notifier.NotifySuccess(fmt.Sprintf("invoice document sent to vtex order %s", *orderID))
	zaplog.Info("invoice sent", zap.String("order_id", *orderID), zap.String("response", echo))
}
