package model

// StockLevel classifies a product's stock quantity into one of four
// disjoint buckets. Every non-negative quantity maps to exactly one level.
type StockLevel string

const (
	// StockOut means the product has no units left.
	StockOut StockLevel = "esgotado"

	// StockLow means stock is at or below StockThresholdLow.
	StockLow StockLevel = "baixo"

	// StockMedium means stock is above low but at or below StockThresholdMedium.
	StockMedium StockLevel = "medio"

	// StockGood means stock is above StockThresholdMedium.
	StockGood StockLevel = "bom"
)

// Thresholds for stock level classification.
const (
	// StockThresholdLow is the upper bound (inclusive) of the low bucket.
	StockThresholdLow = 5

	// StockThresholdMedium is the upper bound (inclusive) of the medium bucket.
	StockThresholdMedium = 10
)

// StockLevelOf maps a quantity to its level. Negative quantities should not
// occur; they are treated as out of stock.
func StockLevelOf(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= StockThresholdLow:
		return StockLow
	case quantity <= StockThresholdMedium:
		return StockMedium
	default:
		return StockGood
	}
}

// StockLevel returns the product's current stock bucket.
func (p Produto) StockLevel() StockLevel {
	return StockLevelOf(p.Estoque)
}

// NeedsRestock reports whether the product is out of stock or low.
func (p Produto) NeedsRestock() bool {
	level := p.StockLevel()
	return level == StockOut || level == StockLow
}
