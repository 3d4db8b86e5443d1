package vtex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/vtex/dto"
	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/domain/model"
)

type OrderService interface {
	FetchOrder(ctx context.Context, orderID string) (model.Order, model.Partner, error)
}

type InvoiceService interface {
	SendInvoice(ctx context.Context, orderID string, doc model.InvoiceDocument) (string, error)
}

type Client struct {
	cfg     config.VtexConfig
	http    *resty.Client
	log     *zap.Logger
	baseUrl string
}

func NewClient(cfg config.VtexConfig, httpClient *resty.Client, log *zap.Logger) *Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = fmt.Sprintf("https://%s.myvtex.com", cfg.Account)
	}
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		log:     log,
		baseUrl: strings.TrimRight(baseUrl, "/"),
	}
}

// FetchOrder pulls one OMS order and maps it to the domain order plus
// the buyer partner record.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (model.Order, model.Partner, error) {
	resp, err := c.request(ctx).Get(c.baseUrl + "/api/oms/pvt/orders/" + orderID)
	if err != nil {
		return model.Order{}, model.Partner{}, fmt.Errorf("vtex order fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Order{}, model.Partner{}, statusError("order fetch", resp)
	}

	var order dto.Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return model.Order{}, model.Partner{}, fmt.Errorf("vtex order decode: %w", err)
	}

	c.log.Info("vtex order fetched",
		zap.String("order_id", orderID),
		zap.String("sequence", order.Sequence),
		zap.Int("items", len(order.Items)),
	)
	return mapOrder(orderID, order), mapPartner(order), nil
}

// SendInvoice forwards the opaque invoice document to the OMS invoice
// endpoint and returns the echoed response body.
func (c *Client) SendInvoice(ctx context.Context, orderID string, doc model.InvoiceDocument) (string, error) {
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc.Content).
		Post(c.baseUrl + "/api/oms/pvt/orders/" + orderID + "/invoice")
	if err != nil {
		return "", fmt.Errorf("vtex invoice send: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", statusError("invoice send", resp)
	}

	c.log.Info("invoice sent to vtex",
		zap.String("order_id", orderID),
		zap.String("invoice", doc.InvoiceNumber),
	)
	return string(resp.Body()), nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("X-VTEX-API-AppKey", c.cfg.AppKey).
		SetHeader("X-VTEX-API-AppToken", c.cfg.AppToken)
}

func statusError(op string, resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		return fmt.Errorf("vtex %s failed: %s", op, resp.Status())
	}
	return fmt.Errorf("vtex %s failed: %s: %s", op, resp.Status(), body)
}

func mapOrder(orderID string, d dto.Order) model.Order {
	order := model.Order{
		ID:         orderID,
		Sequence:   d.Sequence,
		ValueCents: d.Value,
	}
	if len(d.PaymentData.Transactions) > 0 && len(d.PaymentData.Transactions[0].Payments) > 0 {
		order.PaymentSystem = d.PaymentData.Transactions[0].Payments[0].PaymentSystem
	}

	for i, item := range d.Items {
		mapped := model.OrderItem{Quantity: item.Quantity}
		if i < len(d.ItemMetadata.Items) {
			mapped.ProductRef = d.ItemMetadata.Items[i].RefId
		}
		if len(item.PriceDefinition.SellingPrices) > 0 {
			mapped.UnitPriceCents = item.PriceDefinition.SellingPrices[0].Value
		}
		order.Items = append(order.Items, mapped)
	}
	return order
}

func mapPartner(d dto.Order) model.Partner {
	addr := d.Shipping.Address
	return model.Partner{
		DisplayName:  strings.TrimSpace(d.ClientProfile.FirstName + " " + d.ClientProfile.LastName),
		TaxID:        d.ClientProfile.Document,
		Phone:        d.ClientProfile.Phone,
		PostalCode:   addr.PostalCode,
		Street:       addr.Street,
		HouseNumber:  addr.Number,
		Complement:   addr.Complement,
		Neighborhood: addr.Neighborhood,
		City:         addr.City,
	}
}
