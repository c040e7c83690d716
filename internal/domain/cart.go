package domain

// CartLine is a single product entry in a cart with its own quantity.
// Image and Description ride along for display and never affect totals.
type CartLine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CartState is the full cart snapshot: the ordered line sequence plus the
// derived totals. The derived fields are recomputed on every mutation and
// are never set independently; a quantity of zero or less never survives
// in Lines.
type CartState struct {
	Lines     []CartLine `json:"lines"`
	Subtotal  float64    `json:"subtotal"`
	Tax       float64    `json:"tax"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
	Open      bool       `json:"open"`
}
