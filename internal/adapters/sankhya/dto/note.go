package dto

// NoteRequest is the CACSP.incluirNota request body.
type NoteRequest struct {
	Nota Note `json:"nota"`
}

type Note struct {
	Header NoteHeader `json:"cabecalho"`
	Items  NoteItems  `json:"itens"`
}

// NoteHeader is the order note header. CODTIPVENDA is a pointer so an
// unmapped payment method produces no sale-type key at all instead of
// an empty one.
type NoteHeader struct {
	NUNOTA        Field  `json:"NUNOTA"`
	NUMNOTA       Field  `json:"NUMNOTA"`
	AD_NUNOTAORIG Field  `json:"AD_NUNOTAORIG"`
	SERIENOTA     Field  `json:"SERIENOTA"`
	CODPARC       Field  `json:"CODPARC"`
	DTNEG         Field  `json:"DTNEG"`
	CODTIPOPER    Field  `json:"CODTIPOPER"`
	CODTIPVENDA   *Field `json:"CODTIPVENDA,omitempty"`
	CODVEND       Field  `json:"CODVEND"`
	CODEMP        Field  `json:"CODEMP"`
	TIPMOV        Field  `json:"TIPMOV"`
	CODNAT        Field  `json:"CODNAT"`
	AD_ENTREGA    Field  `json:"AD_ENTREGA"`
	CIF_FOB       Field  `json:"CIF_FOB"`
}

type NoteItems struct {
	InformPrice bool       `json:"INFORMARPRECO"`
	Item        []NoteItem `json:"item"`
}

type NoteItem struct {
	NUNOTA          Field `json:"NUNOTA"`
	CODPROD         Field `json:"CODPROD"`
	QTDNEG          Field `json:"QTDNEG"`
	CODLOCALORIG    Field `json:"CODLOCALORIG"`
	CODVOL          Field `json:"CODVOL"`
	AD_MONTAGEM     Field `json:"AD_MONTAGEM"`
	AD_ENTREGAR     Field `json:"AD_ENTREGAR"`
	AD_EMPRESASAIDA Field `json:"AD_EMPRESASAIDA"`
	VLRUNIT         Field `json:"VLRUNIT"`
	VLRTOT          Field `json:"VLRTOT"`
	PERCDESC        Field `json:"PERCDESC"`
}

// NoteResponse decodes the responseBody of incluirNota and faturar:
// both return the primary key of the produced note.
type NoteResponse struct {
	PK struct {
		NUNOTA Field `json:"NUNOTA"`
	} `json:"pk"`
}

// ConfirmRequest is the CACSP.confirmarNota request body.
type ConfirmRequest struct {
	Nota struct {
		NUNOTA Field `json:"NUNOTA"`
	} `json:"nota"`
}

// NewConfirmRequest wraps a note number for confirmation.
func NewConfirmRequest(noteNumber string) ConfirmRequest {
	var r ConfirmRequest
	r.Nota.NUNOTA = Field{Value: noteNumber}
	return r
}

// InvoiceRequest is the SelecaoDocumentoSP.faturar request body.
type InvoiceRequest struct {
	Notas struct {
		CodTipOper      string  `json:"codTipOper"`
		DtFaturamento   string  `json:"dtFaturamento"`
		TipoFaturamento string  `json:"tipoFaturamento"`
		Nota            []Field `json:"nota"`
	} `json:"notas"`
}

// NewInvoiceRequest wraps a note number for invoicing under the given
// operation code.
func NewInvoiceRequest(noteNumber, opCode string) InvoiceRequest {
	var r InvoiceRequest
	r.Notas.CodTipOper = opCode
	r.Notas.TipoFaturamento = "FaturamentoNormal"
	r.Notas.Nota = []Field{{Value: noteNumber}}
	return r
}
