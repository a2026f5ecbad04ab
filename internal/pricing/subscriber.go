package pricing

import (
	"bufio"
	"context"
	"io"
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

// Subscriber decodes the price feed, one "cusip,mid,spread" record per
// line. Malformed lines are dropped and ingestion continues.
type Subscriber struct {
	svc     *Service
	catalog *catalog.Catalog
	metrics *obs.Metrics
}

func NewSubscriber(svc *Service, cat *catalog.Catalog, metrics *obs.Metrics) *Subscriber {
	return &Subscriber{svc: svc, catalog: cat, metrics: metrics}
}

// Subscribe reads the feed to exhaustion, pushing one reference price per
// record into the store.
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

		price, err := s.decode(sc.Text())
		if err != nil {
			s.metrics.IncDropped()
			logs.Warnf("pricing: skipping record %d: %v", line, err)
			continue
		}
		s.metrics.IncPricesIn()
		s.svc.OnMessage(price)
	}
	return sc.Err()
}

func (s *Subscriber) decode(text string) (model.ReferencePrice, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	if len(fields) != 3 {
		return model.ReferencePrice{}, errors.Wrapf(exception.ErrMalformedRecord, "field count %d", len(fields))
	}

	bond, err := s.catalog.Bond(fields[0])
	if err != nil {
		return model.ReferencePrice{}, err
	}
	mid, err := model.ParsePrice(fields[1])
	if err != nil {
		return model.ReferencePrice{}, err
	}
	spread, err := model.ParsePrice(fields[2])
	if err != nil {
		return model.ReferencePrice{}, err
	}

	return model.ReferencePrice{Product: bond, Mid: mid, Spread: spread}, nil
}
