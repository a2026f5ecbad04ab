// Package booking records fills against trading books: the trade store,
// the trade feed subscriber, and the bridge that books the desk's own
// executions.
package booking

import (
	"github.com/yanun0323/errors"

	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
	"main/pkg/exception"
)

// Service is the trade store, keyed by trade identifier. Unlike the
// price-keyed stores a new trade never replaces an old one; every fill
// stays addressable.
type Service struct {
	*fabric.Store[string, model.Trade]
	metrics *obs.Metrics
}

func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		Store: fabric.NewStore(func(t model.Trade) string {
			return t.TradeID
		}),
		metrics: metrics,
	}
}

// BookTrade records the trade and notifies listeners.
func (s *Service) BookTrade(t model.Trade) {
	s.metrics.IncTradesIn()
	s.OnMessage(t)
}

// Trade looks up a booked trade by identifier.
func (s *Service) Trade(tradeID string) (model.Trade, error) {
	t, err := s.Get(tradeID)
	if err != nil {
		return model.Trade{}, errors.Wrapf(exception.ErrUnknownTrade, "trade: %s", tradeID)
	}
	return t, nil
}
