package enum

// StockSource identifies which inventory tab a catalog entry came from.
type StockSource string

const (
	StockSourcePartner StockSource = "partner"
	StockSourceOwn     StockSource = "own"
)

// Valid reports whether s names a known inventory source.
func (s StockSource) Valid() bool {
	return s == StockSourcePartner || s == StockSourceOwn
}
