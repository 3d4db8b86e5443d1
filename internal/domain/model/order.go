package model

// Order carries the VTEX order fields the ERP note needs. Amounts stay
// in minor units (cents) until the note payload is built.
type Order struct {
	ID            string
	Sequence      string
	ValueCents    int64
	PaymentSystem string
	Items         []OrderItem
}

type OrderItem struct {
	ProductRef     string
	Quantity       int
	UnitPriceCents int64
}

// InvoiceDocument is the opaque document the ERP produces after
// invoicing a note. Content is forwarded to VTEX verbatim.
type InvoiceDocument struct {
	NoteNumber    string
	InvoiceNumber string
	Content       string
}
