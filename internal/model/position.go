package model

// Position is the desk's holding in one product across trading books. A
// position is replaced wholesale on each update; Apply returns a new value
// with a copied book map so earlier snapshots stay valid.
type Position struct {
	Product Bond
	Books   map[string]int64
}

// NewPosition creates an empty position for the product.
func NewPosition(product Bond) Position {
	return Position{Product: product, Books: map[string]int64{}}
}

// Apply folds a trade into the position and returns the new snapshot.
func (p Position) Apply(t Trade) Position {
	next := Position{Product: p.Product, Books: make(map[string]int64, len(p.Books)+1)}
	for book, qty := range p.Books {
		next.Books[book] = qty
	}
	switch t.Side {
	case TradeBuy:
		next.Books[t.Book] += t.Quantity
	case TradeSell:
		next.Books[t.Book] -= t.Quantity
	}
	return next
}

// Quantity returns the holding in one book.
func (p Position) Quantity(book string) int64 {
	return p.Books[book]
}

// Aggregate returns the holding across all books.
func (p Position) Aggregate() int64 {
	var total int64
	for _, qty := range p.Books {
		total += qty
	}
	return total
}
