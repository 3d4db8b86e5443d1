package model

// Partner is the buyer as the ERP sees it. TaxID is the only join key
// shared by both systems.
type Partner struct {
	DisplayName  string
	TaxID        string
	Phone        string
	PostalCode   string
	Street       string
	HouseNumber  string
	Complement   string
	Neighborhood string
	City         string
}

// PartnerCodes holds the ERP-internal codes resolved from the free-text
// address fields of a Partner.
type PartnerCodes struct {
	Street       string
	Neighborhood string
	City         string
}
