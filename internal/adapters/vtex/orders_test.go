package vtex

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/domain/model"
	"vtex-sankhya-sync/internal/infra/httpx"
)

const omsOrderBody = `{
	"orderId": "1374015086123-01",
	"sequence": "502530",
	"value": 150000,
	"clientProfileData": {
		"firstName": "Maria",
		"lastName": "da Silva",
		"document": "000.000.000-00",
		"phone": "+5591999990000"
	},
	"shippingData": {
		"address": {
			"street": "Av. Brasil",
			"number": "1000",
			"complement": "apto 42",
			"neighborhood": "Centro",
			"city": "Belém",
			"postalCode": "66077-630"
		}
	},
	"items": [
		{"quantity": 2, "priceDefinition": {"sellingPrices": [{"value": 75000, "quantity": 2}]}}
	],
	"itemMetadata": {
		"Items": [{"Id": "123", "RefId": "10542"}]
	},
	"paymentData": {
		"transactions": [{"payments": [{"paymentSystem": "125"}]}]
	}
}`

func testVtexClient(t *testing.T, baseUrl string) *Client {
	t.Helper()
	cfg := config.VtexConfig{
		Account:  "teststore",
		BaseUrl:  baseUrl,
		AppKey:   "key",
		AppToken: "token",
		Timeout:  time.Second,
	}
	return NewClient(cfg, httpx.NewClient(time.Second), zap.NewNop())
}

func TestFetchOrderMapsOrderAndPartner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/oms/pvt/orders/1374015086123-01", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-VTEX-API-AppKey"))
		assert.Equal(t, "token", r.Header.Get("X-VTEX-API-AppToken"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(omsOrderBody))
	}))
	t.Cleanup(srv.Close)

	order, partner, err := testVtexClient(t, srv.URL).FetchOrder(context.Background(), "1374015086123-01")
	require.NoError(t, err)

	assert.Equal(t, "1374015086123-01", order.ID)
	assert.Equal(t, "502530", order.Sequence)
	assert.Equal(t, int64(150000), order.ValueCents)
	assert.Equal(t, "125", order.PaymentSystem)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "10542", order.Items[0].ProductRef)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, int64(75000), order.Items[0].UnitPriceCents)

	assert.Equal(t, "Maria da Silva", partner.DisplayName)
	assert.Equal(t, "000.000.000-00", partner.TaxID)
	assert.Equal(t, "+5591999990000", partner.Phone)
	assert.Equal(t, "Av. Brasil", partner.Street)
	assert.Equal(t, "1000", partner.HouseNumber)
	assert.Equal(t, "Belém", partner.City)
	assert.Equal(t, "66077-630", partner.PostalCode)
}

func TestFetchOrderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"order not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, _, err := testVtexClient(t, srv.URL).FetchOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "order not found")
}

func TestSendInvoiceEchoesBody(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/oms/pvt/orders/1374015086123-01/invoice", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Write([]byte(`{"date":"2026-03-07","orderId":"1374015086123-01"}`))
	}))
	t.Cleanup(srv.Close)

	doc := model.InvoiceDocument{
		NoteNumber:    "90210",
		InvoiceNumber: "000123",
		Content:       `{"invoiceNumber":"000123"}`,
	}
	echo, err := testVtexClient(t, srv.URL).SendInvoice(context.Background(), "1374015086123-01", doc)
	require.NoError(t, err)
	assert.Contains(t, echo, "1374015086123-01")
	assert.Equal(t, `{"invoiceNumber":"000123"}`, received)
}

func TestNewClientDerivesBaseUrlFromAccount(t *testing.T) {
	cfg := config.VtexConfig{Account: "teststore"}
	c := NewClient(cfg, httpx.NewClient(time.Second), zap.NewNop())
	assert.Equal(t, "https://teststore.myvtex.com", c.baseUrl)
}
