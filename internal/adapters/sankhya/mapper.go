package sankhya

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/domain/model"
)

// Static defaults for fields the note requires but VTEX does not carry.
const (
	orderOpCode     = "1001"
	invoiceOpCode   = "1174"
	companyCode     = "7"
	natureCode      = "1010100"
	salespersonCode = "68"
	warehouseCode   = "188"
	unitCode        = "UN"
)

// saleTypeByPaymentSystem maps VTEX payment-system ids to ERP sale-type
// codes. The sale type selects pricing and tax treatment downstream.
var saleTypeByPaymentSystem = map[int]int{
	125: 220,
	2:   701,
	3:   710,
	4:   702,
	9:   713,
}

// SaleTypeForPayment resolves a VTEX payment-system id to a sale-type
// code. Unknown or non-numeric ids yield no sale type; the caller logs
// the gap instead of failing the order.
func SaleTypeForPayment(paymentSystem string) (string, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(paymentSystem))
	if err != nil {
		return "", false
	}
	code, ok := saleTypeByPaymentSystem[id]
	if !ok {
		return "", false
	}
	return strconv.Itoa(code), true
}

// CentsToUnits converts an integer minor-unit amount to a decimal
// currency string. Exact: 150000 cents -> "1500.00".
func CentsToUnits(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

// BuildOrderNote maps a VTEX order and a resolved partner code to the
// incluirNota payload. Pure: the negotiation date comes in as an
// argument. Only the first line item is carried over. Returned warnings
// are for the caller to log.
func BuildOrderNote(order model.Order, partnerCode string, negotiated time.Time) (dto.NoteRequest, []string, error) {
	if partnerCode == "" {
		return dto.NoteRequest{}, nil, errors.New("order note requires a resolved partner code")
	}
	if len(order.Items) == 0 {
		return dto.NoteRequest{}, nil, fmt.Errorf("order %s has no line items", order.ID)
	}

	var warnings []string
	if len(order.Items) > 1 {
		warnings = append(warnings, fmt.Sprintf("order %s has %d items, only the first is mapped", order.ID, len(order.Items)))
	}

	var saleType *dto.Field
	if code, ok := SaleTypeForPayment(order.PaymentSystem); ok {
		saleType = &dto.Field{Value: code}
	} else {
		warnings = append(warnings, fmt.Sprintf("payment system %q has no sale type mapping", order.PaymentSystem))
	}

	item := order.Items[0]
	note := dto.NoteRequest{
		Nota: dto.Note{
			Header: dto.NoteHeader{
				AD_NUNOTAORIG: dto.Field{Value: order.Sequence},
				CODPARC:       dto.Field{Value: partnerCode},
				DTNEG:         dto.Field{Value: negotiated.Format("02/01/2006")},
				CODTIPOPER:    dto.Field{Value: orderOpCode},
				CODTIPVENDA:   saleType,
				CODVEND:       dto.Field{Value: salespersonCode},
				CODEMP:        dto.Field{Value: companyCode},
				TIPMOV:        dto.Field{Value: "P"},
				CODNAT:        dto.Field{Value: natureCode},
				AD_ENTREGA:    dto.Field{Value: "S"},
				CIF_FOB:       dto.Field{Value: "C"},
			},
			Items: dto.NoteItems{
				InformPrice: true,
				Item: []dto.NoteItem{
					{
						CODPROD:         dto.Field{Value: item.ProductRef},
						QTDNEG:          dto.Field{Value: strconv.Itoa(item.Quantity)},
						CODLOCALORIG:    dto.Field{Value: warehouseCode},
						CODVOL:          dto.Field{Value: unitCode},
						AD_MONTAGEM:     dto.Field{Value: "S"},
						AD_ENTREGAR:     dto.Field{Value: "S"},
						AD_EMPRESASAIDA: dto.Field{Value: companyCode},
						VLRUNIT:         dto.Field{Value: CentsToUnits(item.UnitPriceCents)},
						VLRTOT:          dto.Field{Value: CentsToUnits(order.ValueCents)},
						PERCDESC:        dto.Field{Value: "0"},
					},
				},
			},
		},
	}
	return note, warnings, nil
}
