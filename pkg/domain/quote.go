package domain

// Quote is the itemized cost breakdown for a set of LED specs.
// It is constructed fresh on each request and immutable once returned.
type Quote struct {
	TotalModules int     `json:"total_modules"`
	AreaSQM      float64 `json:"area_sqm"`

	// PowerKW is display information derived from the module count;
	// the power line item itself is tier-priced.
	PowerKW float64 `json:"power_kw"`

	// Line items, in won.
	Modules      int `json:"modules"`
	Structure    int `json:"structure"`
	Controller   int `json:"controller"`
	Power        int `json:"power"`
	Installation int `json:"installation"`
	Operator     int `json:"operator"`
	Transport    int `json:"transport"`

	Subtotal int `json:"subtotal"`
	VAT      int `json:"vat"`
	Total    int `json:"total"` // VAT-inclusive
}
