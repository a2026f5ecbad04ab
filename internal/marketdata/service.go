// Package marketdata is the order-book store: one book per CUSIP, replaced
// wholesale on each update, with best-bid-offer and depth-aggregation
// queries on top.
package marketdata

import (
	"sync"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
	"main/pkg/exception"
)

var _ fabric.Service[string, model.OrderBook] = (*Service)(nil)

// Service distributes market data keyed on product identifier.
//
// Listeners never see full depth: OnMessage notifies them with a synthetic
// one-level book holding only the best bid and offer, which keeps the
// downstream decision surface small and bounded.
type Service struct {
	mu        sync.Mutex
	books     map[string]model.OrderBook
	listeners []fabric.Listener[model.OrderBook]
}

func NewService() *Service {
	return &Service{books: make(map[string]model.OrderBook)}
}

// Get returns the stored full-depth book for a CUSIP.
func (s *Service) Get(cusip string) (model.OrderBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[cusip]
	if !ok {
		return model.OrderBook{}, fabric.ErrNotFound
	}
	return book, nil
}

// OnMessage replaces the stored snapshot for the book's product, then
// notifies listeners with the one-level best-of-book.
func (s *Service) OnMessage(book model.OrderBook) {
	s.mu.Lock()
	s.books[book.Product.CUSIP] = book
	ls := s.listeners
	s.mu.Unlock()

	best, err := bestOf(book)
	if err != nil {
		logs.Warnf("market data: %s book has an empty side, listeners not notified: %v", book.Product.CUSIP, err)
		return
	}
	top := model.OrderBook{
		Product: book.Product,
		Bids:    []model.Order{best.Bid},
		Offers:  []model.Order{best.Offer},
	}
	for _, l := range ls {
		l.OnAdd(top)
	}
}

func (s *Service) AddListener(l fabric.Listener[model.OrderBook]) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) Listeners() []fabric.Listener[model.OrderBook] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]fabric.Listener[model.OrderBook], len(s.listeners))
	copy(out, s.listeners)
	return out
}

// BestBidOffer returns the maximum-priced bid and minimum-priced offer in
// the product's book. Ties go to the first-seen order.
func (s *Service) BestBidOffer(cusip string) (model.BidOffer, error) {
	book, err := s.Get(cusip)
	if err != nil {
		return model.BidOffer{}, errors.Wrapf(exception.ErrUnknownProduct, "cusip: %s", cusip)
	}
	return bestOf(book)
}

func bestOf(book model.OrderBook) (model.BidOffer, error) {
	if len(book.Bids) == 0 || len(book.Offers) == 0 {
		return model.BidOffer{}, errors.Wrapf(exception.ErrEmptyBook, "cusip: %s", book.Product.CUSIP)
	}

	bestBid := book.Bids[0]
	for _, o := range book.Bids[1:] {
		if o.Price > bestBid.Price {
			bestBid = o
		}
	}
	bestOffer := book.Offers[0]
	for _, o := range book.Offers[1:] {
		if o.Price < bestOffer.Price {
			bestOffer = o
		}
	}
	return model.BidOffer{Bid: bestBid, Offer: bestOffer}, nil
}

// AggregateDepth returns a projection of the product's book where orders
// sharing a price on the same side merge into one order carrying the summed
// quantity. Ordering follows the first occurrence of each price. The stored
// book is not touched.
func (s *Service) AggregateDepth(cusip string) (model.OrderBook, error) {
	book, err := s.Get(cusip)
	if err != nil {
		return model.OrderBook{}, errors.Wrapf(exception.ErrUnknownProduct, "cusip: %s", cusip)
	}
	return model.OrderBook{
		Product: book.Product,
		Bids:    aggregateSide(book.Bids),
		Offers:  aggregateSide(book.Offers),
	}, nil
}

func aggregateSide(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	index := make(map[model.Price]int, len(orders))
	for _, o := range orders {
		if at, ok := index[o.Price]; ok {
			out[at].Quantity += o.Quantity
			continue
		}
		index[o.Price] = len(out)
		out = append(out, o)
	}
	return out
}
