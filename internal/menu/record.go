package menu

// ItemRecord is one structured menu entry with all point-of-sale fields.
// Records are immutable once validated; a parsed element missing any
// required field never becomes an ItemRecord.
type ItemRecord struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity,omitempty"` // defaults to 1 when absent
	Price       int    `json:"price"`              // currency minor units (cents)
	Warengruppe string `json:"warengruppe"`
	Hauptgruppe string `json:"hauptgruppe"` // "KÜCHE" | "THEKE"
	Steuersatz  int    `json:"steuersatz"`  // 7 | 19
	Ordergruppe string `json:"ordergruppe"`
	AusserHaus  int    `json:"ausser_haus"` // 0 | 1
}
