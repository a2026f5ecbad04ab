package inquiry

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/catalog"
	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
	"main/pkg/exception"
)

var _ fabric.Subscriber = (*Subscriber)(nil)

// Subscriber decodes the inquiry feed, one "cusip,price,quantity,side,state"
// record per line. Only RECEIVED records are accepted; the lifecycle owns
// every later state. Each accepted inquiry gets a fresh identifier.
type Subscriber struct {
	svc     *Service
	catalog *catalog.Catalog
	metrics *obs.Metrics
	newID   func() string
}

func NewSubscriber(svc *Service, cat *catalog.Catalog, metrics *obs.Metrics) *Subscriber {
	return &Subscriber{svc: svc, catalog: cat, metrics: metrics, newID: uuid.NewString}
}

// WithIDSource swaps the inquiry identifier source. Deterministic runs
// inject a counter here.
func (s *Subscriber) WithIDSource(newID func() string) *Subscriber {
	s.newID = newID
	return s
}

// Subscribe reads the feed to exhaustion, pushing one received inquiry per
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

		inq, err := s.decode(sc.Text())
		if err != nil {
			s.metrics.IncDropped()
			logs.Warnf("inquiry: skipping record %d: %v", line, err)
			continue
		}
		s.metrics.IncInquiriesIn()
		s.svc.OnMessage(inq)
	}
	return sc.Err()
}

func (s *Subscriber) decode(text string) (model.Inquiry, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	if len(fields) != 5 {
		return model.Inquiry{}, errors.Wrapf(exception.ErrMalformedRecord, "field count %d", len(fields))
	}

	bond, err := s.catalog.Bond(fields[0])
	if err != nil {
		return model.Inquiry{}, err
	}
	price, err := model.ParsePrice(fields[1])
	if err != nil {
		return model.Inquiry{}, err
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || qty <= 0 {
		return model.Inquiry{}, errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[2])
	}
	side, err := model.ParseTradeSide(fields[3])
	if err != nil {
		return model.Inquiry{}, err
	}
	if fields[4] != model.InquiryReceived.String() {
		return model.Inquiry{}, errors.Wrapf(exception.ErrMalformedRecord, "state: %q", fields[4])
	}

	return model.Inquiry{
		InquiryID: s.newID(),
		Product:   bond,
		Side:      side,
		Quantity:  qty,
		Price:     price,
		State:     model.InquiryReceived,
	}, nil
}
