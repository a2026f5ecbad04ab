package booking

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

var _ fabric.Subscriber = (*Subscriber)(nil)

// Subscriber decodes the trade feed, one
// "cusip,tradeId,price,book,quantity,side" record per line. Malformed
// lines are dropped and ingestion continues.
type Subscriber struct {
	svc     *Service
	catalog *catalog.Catalog
	metrics *obs.Metrics
}

func NewSubscriber(svc *Service, cat *catalog.Catalog, metrics *obs.Metrics) *Subscriber {
	return &Subscriber{svc: svc, catalog: cat, metrics: metrics}
}

// Subscribe reads the feed to exhaustion, booking one trade per record.
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

		trade, err := s.decode(sc.Text())
		if err != nil {
			s.metrics.IncDropped()
			logs.Warnf("booking: skipping record %d: %v", line, err)
			continue
		}
		s.svc.BookTrade(trade)
	}
	return sc.Err()
}

func (s *Subscriber) decode(text string) (model.Trade, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	if len(fields) != 6 {
		return model.Trade{}, errors.Wrapf(exception.ErrMalformedRecord, "field count %d", len(fields))
	}

	bond, err := s.catalog.Bond(fields[0])
	if err != nil {
		return model.Trade{}, err
	}
	if fields[1] == "" {
		return model.Trade{}, errors.Wrap(exception.ErrMalformedRecord, "empty trade id")
	}
	price, err := model.ParsePrice(fields[2])
	if err != nil {
		return model.Trade{}, err
	}
	if fields[3] == "" {
		return model.Trade{}, errors.Wrap(exception.ErrMalformedRecord, "empty book")
	}
	qty, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil || qty <= 0 {
		return model.Trade{}, errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[4])
	}
	side, err := model.ParseTradeSide(fields[5])
	if err != nil {
		return model.Trade{}, err
	}

	return model.Trade{
		Product:  bond,
		TradeID:  fields[1],
		Price:    price,
		Book:     fields[3],
		Quantity: qty,
		Side:     side,
	}, nil
}
