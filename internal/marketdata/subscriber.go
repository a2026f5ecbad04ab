package marketdata

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/catalog"
	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
	"main/pkg/exception"
)

// bookDepth is the number of levels per side carried by the market data
// feed.
const bookDepth = 5

var _ fabric.Subscriber = (*Subscriber)(nil)

// Subscriber decodes the market data feed into order books. Each line is
// one order, "cusip,price,quantity,side"; a book is published once five
// bids and five offers have accumulated for a product. Malformed lines are
// dropped and ingestion continues.
type Subscriber struct {
	svc     *Service
	catalog *catalog.Catalog
	metrics *obs.Metrics

	partial map[string]*model.OrderBook
}

func NewSubscriber(svc *Service, cat *catalog.Catalog, metrics *obs.Metrics) *Subscriber {
	return &Subscriber{
		svc:     svc,
		catalog: cat,
		metrics: metrics,
		partial: make(map[string]*model.OrderBook),
	}
}

// Subscribe reads the feed to exhaustion, pushing each completed book into
// the store.
func (s *Subscriber) Subscribe(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line++

		order, cusip, err := s.decode(sc.Text())
		if err != nil {
			s.metrics.IncDropped()
			logs.Warnf("market data: skipping record %d: %v", line, err)
			continue
		}

		book := s.partial[cusip]
		if book == nil {
			bond, err := s.catalog.Bond(cusip)
			if err != nil {
				s.metrics.IncDropped()
				logs.Warnf("market data: skipping record %d: %v", line, err)
				continue
			}
			book = &model.OrderBook{Product: bond}
			s.partial[cusip] = book
		}

		switch order.Side {
		case model.SideBid:
			book.Bids = append(book.Bids, order)
		case model.SideOffer:
			book.Offers = append(book.Offers, order)
		}

		if len(book.Bids) >= bookDepth && len(book.Offers) >= bookDepth {
			s.metrics.IncBooksIn()
			s.svc.OnMessage(*book)
			delete(s.partial, cusip)
		}
	}
	return sc.Err()
}

func (s *Subscriber) decode(text string) (model.Order, string, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	if len(fields) != 4 {
		return model.Order{}, "", errors.Wrapf(exception.ErrMalformedRecord, "field count %d", len(fields))
	}

	price, err := model.ParsePrice(fields[1])
	if err != nil {
		return model.Order{}, "", err
	}
	quantity, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || quantity <= 0 {
		return model.Order{}, "", errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[2])
	}
	side, err := model.ParseSide(fields[3])
	if err != nil {
		return model.Order{}, "", err
	}

	return model.Order{Price: price, Quantity: quantity, Side: side}, fields[0], nil
}
