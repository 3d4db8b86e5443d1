package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya"
	sankhyadto "vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/adapters/vtex"
	"vtex-sankhya-sync/internal/domain/model"
	"vtex-sankhya-sync/internal/logging"
)

type SyncOrderService interface {
	// Run pushes one VTEX order through partner resolution, note
	// creation, confirmation and invoicing, optionally forwarding the
	// invoice document back to VTEX.
	Run(ctx context.Context, orderID string, forwardInvoice bool) error
}

// OrderWriter is the slice of the Sankhya client the order sync needs.
type OrderWriter interface {
	CreateOrder(ctx context.Context, note sankhyadto.NoteRequest) (string, sankhyadto.ServiceResponse, error)
	ConfirmOrder(ctx context.Context, noteNumber string) (sankhyadto.ServiceResponse, error)
	InvoiceOrder(ctx context.Context, noteNumber string) (string, sankhyadto.ServiceResponse, error)
	FetchInvoiceDocument(ctx context.Context, invoiceNumber string) (model.InvoiceDocument, error)
}

type orderSync struct {
	vtexOrders   vtex.OrderService
	vtexInvoices vtex.InvoiceService
	partners     SyncPartnerService
	writer       OrderWriter
	notifier     logging.NotifierService
	log          *zap.Logger
	now          func() time.Time
}

func NewSyncOrder(
	vtexOrders vtex.OrderService,
	vtexInvoices vtex.InvoiceService,
	partners SyncPartnerService,
	writer OrderWriter,
	notifier logging.NotifierService,
	log *zap.Logger,
) SyncOrderService {
	return &orderSync{
		vtexOrders:   vtexOrders,
		vtexInvoices: vtexInvoices,
		partners:     partners,
		writer:       writer,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

func (s *orderSync) Run(ctx context.Context, orderID string, forwardInvoice bool) error {
	if err := s.run(ctx, orderID, forwardInvoice); err != nil {
		s.notifier.NotifyError(fmt.Sprintf("order %s sync failed: %v", orderID, err))
		return err
	}
	return nil
}

func (s *orderSync) run(ctx context.Context, orderID string, forwardInvoice bool) error {
	partnerCode, err := s.partners.Run(ctx, orderID)
	if err != nil {
		return err
	}

	order, _, err := s.vtexOrders.FetchOrder(ctx, orderID)
	if err != nil {
		return err
	}

	note, warnings, err := sankhya.BuildOrderNote(order, partnerCode, s.now())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		s.log.Warn(w, zap.String("order_id", orderID))
	}

	noteNumber, resp, err := s.writer.CreateOrder(ctx, note)
	if err != nil {
		return err
	}
	if noteNumber == "" {
		return fmt.Errorf("order note rejected: status=%s msg=%s", resp.Status, resp.StatusMessage)
	}

	confirm, err := s.writer.ConfirmOrder(ctx, noteNumber)
	if err != nil {
		return err
	}
	if !confirm.Accepted() {
		return fmt.Errorf("note %s confirmation rejected: status=%s msg=%s", noteNumber, confirm.Status, confirm.StatusMessage)
	}

	invoiceNumber, invoiced, err := s.writer.InvoiceOrder(ctx, noteNumber)
	if err != nil {
		return err
	}
	if invoiceNumber == "" {
		return fmt.Errorf("note %s invoicing rejected: status=%s msg=%s", noteNumber, invoiced.Status, invoiced.StatusMessage)
	}

	doc, err := s.writer.FetchInvoiceDocument(ctx, invoiceNumber)
	if err != nil {
		return err
	}
	doc.NoteNumber = noteNumber

	if forwardInvoice {
		echo, err := s.vtexInvoices.SendInvoice(ctx, orderID, doc)
		if err != nil {
			return err
		}
		s.log.Debug("vtex invoice response", zap.String("body", echo))
		s.notifier.NotifySuccess(fmt.Sprintf("invoice %s of note %s sent to vtex order %s", invoiceNumber, noteNumber, orderID))
	} else {
		s.notifier.NotifySuccess(fmt.Sprintf("order %s invoiced as note %s (invoice %s), not forwarded", orderID, noteNumber, invoiceNumber))
	}

	s.log.Info("order sync completed",
		zap.String("order_id", orderID),
		zap.String("note", noteNumber),
		zap.String("invoice", invoiceNumber),
		zap.Bool("forwarded", forwardInvoice),
	)
	return nil
}
