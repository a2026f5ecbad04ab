package streaming

import (
	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
)

// Service is the price-stream store: the last published quote per CUSIP,
// pushed outward through the injected publisher.
type Service struct {
	*fabric.Store[string, model.Quote]
	pub     fabric.Publisher[model.Quote]
	metrics *obs.Metrics
}

func NewService(pub fabric.Publisher[model.Quote], metrics *obs.Metrics) *Service {
	return &Service{
		Store: fabric.NewStore(func(q model.Quote) string {
			return q.Product.CUSIP
		}),
		pub:     pub,
		metrics: metrics,
	}
}

// PublishPrice stores the quote, notifies store listeners, then pushes the
// quote to the outbound publisher.
func (s *Service) PublishPrice(q model.Quote) error {
	s.OnMessage(q)
	s.metrics.IncQuotesOut()
	return s.pub.Publish(q)
}

// EngineListener feeds engine output into the stream store. The engine
// never holds a reference to the store; this listener is the only
// coupling. Only OnAdd is used: quotes are replaced, never removed.
type EngineListener struct {
	fabric.NopListener[model.Quote]
	svc *Service
}

func NewEngineListener(svc *Service) *EngineListener {
	return &EngineListener{svc: svc}
}

func (l *EngineListener) OnAdd(q model.Quote) {
	if err := l.svc.PublishPrice(q); err != nil {
		logs.Errorf("streaming: publish %s quote: %v", q.Product.CUSIP, err)
	}
}
