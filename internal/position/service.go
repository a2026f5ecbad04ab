// Package position folds booked trades into per-product holdings across
// trading books.
package position

import (
	"main/internal/fabric"
	"main/internal/model"
)

// Service is the position store, keyed by CUSIP. AddTrade is the only
// write path; each trade replaces the product's snapshot with a new one.
type Service struct {
	*fabric.Store[string, model.Position]
}

func NewService() *Service {
	return &Service{
		Store: fabric.NewStore(func(p model.Position) string {
			return p.Product.CUSIP
		}),
	}
}

// AddTrade folds the trade into the product's position, creating an empty
// position on first sight, and notifies listeners with the new snapshot.
func (s *Service) AddTrade(t model.Trade) {
	pos, err := s.Get(t.Product.CUSIP)
	if err != nil {
		pos = model.NewPosition(t.Product)
	}
	s.OnMessage(pos.Apply(t))
}

// TradeListener feeds booked trades into the position store.
type TradeListener struct {
	fabric.NopListener[model.Trade]
	svc *Service
}

func NewTradeListener(svc *Service) *TradeListener {
	return &TradeListener{svc: svc}
}

func (l *TradeListener) OnAdd(t model.Trade) {
	l.svc.AddTrade(t)
}
