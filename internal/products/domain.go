package products

// Kind discriminates the two product specializations carried in one table.
type Kind string

const (
	KindComponent Kind = "component"
	KindTool      Kind = "tool"
)

// Valid reports whether k is a known product kind.
func (k Kind) Valid() bool {
	return k == KindComponent || k == KindTool
}

// Product represents a catalog entry.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Kind          Kind    `json:"kind"`
	CategoryID    int64   `json:"category_id"`
}
