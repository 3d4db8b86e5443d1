package sankhya

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/domain/model"
)

const (
	svcIncludeNote  = "CACSP.incluirNota"
	svcConfirmNote  = "CACSP.confirmarNota"
	svcInvoiceNote  = "SelecaoDocumentoSP.faturar"
	svcExecuteQuery = "DbExplorerSP.executeQuery"
)

// CreateOrder submits the order note. A gateway rejection yields an
// empty note number plus the envelope for the caller to log; only
// transport failures are errors.
func (c *Client) CreateOrder(ctx context.Context, note dto.NoteRequest) (string, dto.ServiceResponse, error) {
	resp, err := c.Execute(ctx, svcIncludeNote, note)
	if err != nil || !resp.Accepted() {
		return "", resp, err
	}

	number, ferr := noteNumberFrom(resp)
	if ferr != nil {
		return "", resp, ferr
	}
	c.log.Info("order note created", zap.String("note", number))
	return number, resp, nil
}

// ConfirmOrder confirms a created note. The envelope carries the
// business outcome.
func (c *Client) ConfirmOrder(ctx context.Context, noteNumber string) (dto.ServiceResponse, error) {
	resp, err := c.Execute(ctx, svcConfirmNote, dto.NewConfirmRequest(noteNumber))
	if err == nil && resp.Accepted() {
		c.log.Info("order note confirmed", zap.String("note", noteNumber))
	}
	return resp, err
}

// InvoiceOrder invoices a confirmed note and returns the number of the
// invoice note the ERP produced.
func (c *Client) InvoiceOrder(ctx context.Context, noteNumber string) (string, dto.ServiceResponse, error) {
	resp, err := c.Execute(ctx, svcInvoiceNote, dto.NewInvoiceRequest(noteNumber, invoiceOpCode))
	if err != nil || !resp.Accepted() {
		return "", resp, err
	}

	number, ferr := noteNumberFrom(resp)
	if ferr != nil {
		return "", resp, ferr
	}
	c.log.Info("order note invoiced",
		zap.String("note", noteNumber),
		zap.String("invoice", number),
	)
	return number, resp, nil
}

// FetchInvoiceDocument pulls the invoice XML for an invoiced note. The
// document is opaque here; it goes back to VTEX verbatim.
func (c *Client) FetchInvoiceDocument(ctx context.Context, invoiceNumber string) (model.InvoiceDocument, error) {
	query := dto.QueryRequest{
		SQL: fmt.Sprintf("SELECT XML_ENVIO FROM TGFNFE WHERE NUNOTA = %s", invoiceNumber),
	}
	resp, err := c.Execute(ctx, svcExecuteQuery, query)
	if err != nil {
		return model.InvoiceDocument{}, err
	}
	if !resp.Accepted() {
		return model.InvoiceDocument{}, fmt.Errorf("invoice document query rejected: status=%s msg=%s", resp.Status, resp.StatusMessage)
	}

	var body dto.QueryResponse
	if err := json.Unmarshal(resp.ResponseBody, &body); err != nil {
		return model.InvoiceDocument{}, &ResponseFormatError{Body: string(resp.ResponseBody)}
	}
	if len(body.Rows) == 0 || len(body.Rows[0]) == 0 {
		return model.InvoiceDocument{}, fmt.Errorf("no invoice document for note %s", invoiceNumber)
	}
	content, ok := body.Rows[0][0].(string)
	if !ok {
		return model.InvoiceDocument{}, &ResponseFormatError{Body: string(resp.ResponseBody)}
	}

	return model.InvoiceDocument{
		InvoiceNumber: invoiceNumber,
		Content:       content,
	}, nil
}

func noteNumberFrom(resp dto.ServiceResponse) (string, error) {
	var body dto.NoteResponse
	if err := json.Unmarshal(resp.ResponseBody, &body); err != nil {
		return "", &ResponseFormatError{Body: string(resp.ResponseBody)}
	}
	if body.PK.NUNOTA.Value == "" {
		return "", &ResponseFormatError{Body: string(resp.ResponseBody)}
	}
	return body.PK.NUNOTA.Value, nil
}
