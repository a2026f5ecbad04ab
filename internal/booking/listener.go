package booking

import (
	"github.com/google/uuid"

	"main/internal/fabric"
	"main/internal/model"
)

// ExecutionListener books the desk's own executions as trades, rotating
// fills across the configured books. Zero-quantity decisions are audit
// records, not fills, and are not booked.
type ExecutionListener struct {
	fabric.NopListener[model.ExecutionOrder]
	svc   *Service
	books []string
	at    int
	newID func() string
}

func NewExecutionListener(svc *Service, books []string) *ExecutionListener {
	return &ExecutionListener{svc: svc, books: books, newID: uuid.NewString}
}

// WithIDSource swaps the trade identifier source. Deterministic runs
// inject a counter here.
func (l *ExecutionListener) WithIDSource(newID func() string) *ExecutionListener {
	l.newID = newID
	return l
}

func (l *ExecutionListener) OnAdd(o model.ExecutionOrder) {
	if o.VisibleQuantity == 0 {
		return
	}

	book := l.books[l.at%len(l.books)]
	l.at++

	side := model.TradeBuy
	if o.Side == model.SideOffer {
		side = model.TradeSell
	}

	l.svc.BookTrade(model.Trade{
		Product:  o.Product,
		TradeID:  l.newID(),
		Price:    o.Price,
		Book:     book,
		Quantity: o.VisibleQuantity + o.HiddenQuantity,
		Side:     side,
	})
}
