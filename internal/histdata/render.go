package histdata

import (
	"fmt"
	"sort"
	"strings"

	"main/internal/model"
)

// RenderPosition flattens a position as "book:qty" pairs in book order,
// ending with the aggregate.
func RenderPosition(p model.Position) string {
	books := make([]string, 0, len(p.Books))
	for book := range p.Books {
		books = append(books, book)
	}
	sort.Strings(books)

	var b strings.Builder
	for _, book := range books {
		fmt.Fprintf(&b, "%s:%d;", book, p.Books[book])
	}
	fmt.Fprintf(&b, "total:%d", p.Aggregate())
	return b.String()
}

func RenderRisk(r model.PV01) string {
	return fmt.Sprintf("%.6f,%d", r.Value, r.Quantity)
}

func RenderExecution(o model.ExecutionOrder) string {
	return fmt.Sprintf("%s,%s,%s,%s,%d,%d,%s",
		o.OrderID, o.Side, o.Type, o.Price,
		o.VisibleQuantity, o.HiddenQuantity, o.ParentOrderID)
}

func RenderQuote(q model.Quote) string {
	return fmt.Sprintf("%s,%d,%d,%s,%d,%d",
		q.Bid.Price, q.Bid.VisibleQuantity, q.Bid.HiddenQuantity,
		q.Offer.Price, q.Offer.VisibleQuantity, q.Offer.HiddenQuantity)
}

func RenderInquiry(i model.Inquiry) string {
	return fmt.Sprintf("%s,%s,%d,%s,%s",
		i.Product.CUSIP, i.Side, i.Quantity, i.Price, i.State)
}
