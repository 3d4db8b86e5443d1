package dto

// Order is the OMS order payload, narrowed to the fields the sync
// reads. Amounts are integer cents.
type Order struct {
	OrderId       string        `json:"orderId"`
	Sequence      string        `json:"sequence"`
	Value         int64         `json:"value"`
	ClientProfile ClientProfile `json:"clientProfileData"`
	Shipping      ShippingData  `json:"shippingData"`
	Items         []Item        `json:"items"`
	ItemMetadata  ItemMetadata  `json:"itemMetadata"`
	PaymentData   PaymentData   `json:"paymentData"`
}

type ClientProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
}

type ShippingData struct {
	Address Address `json:"address"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
}

type Item struct {
	Quantity        int             `json:"quantity"`
	PriceDefinition PriceDefinition `json:"priceDefinition"`
}

type PriceDefinition struct {
	SellingPrices []SellingPrice `json:"sellingPrices"`
}

type SellingPrice struct {
	Value    int64 `json:"value"`
	Quantity int   `json:"quantity"`
}

// ItemMetadata rides next to items with matching indexes; RefId is the
// product reference the ERP knows.
type ItemMetadata struct {
	Items []MetadataItem `json:"Items"`
}

type MetadataItem struct {
	Id    string `json:"Id"`
	RefId string `json:"RefId"`
}

type PaymentData struct {
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	Payments []Payment `json:"payments"`
}

type Payment struct {
	PaymentSystem string `json:"paymentSystem"`
}
