package execution

import (
	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
)

// Service is the execution store: the last order placed per CUSIP, pushed
// outward through the injected publisher.
type Service struct {
	*fabric.Store[string, model.ExecutionOrder]
	pub     fabric.Publisher[model.ExecutionOrder]
	metrics *obs.Metrics
	venue   model.Venue
}

func NewService(pub fabric.Publisher[model.ExecutionOrder], metrics *obs.Metrics) *Service {
	return &Service{
		Store: fabric.NewStore(func(o model.ExecutionOrder) string {
			return o.Product.CUSIP
		}),
		pub:     pub,
		metrics: metrics,
		venue:   model.VenueBrokerTec,
	}
}

// Venue is where this service routes its orders.
func (s *Service) Venue() model.Venue {
	return s.venue
}

// ExecuteOrder stores the order, notifies store listeners, then pushes the
// order to the outbound publisher.
func (s *Service) ExecuteOrder(o model.ExecutionOrder) error {
	s.OnMessage(o)
	s.metrics.IncExecutionsOut()
	return s.pub.Publish(o)
}

// EngineListener feeds engine output into the execution store. The engine
// never holds a reference to the store; this listener is the only
// coupling. Only OnAdd is used: orders are replaced, never removed.
type EngineListener struct {
	fabric.NopListener[model.ExecutionOrder]
	svc *Service
}

func NewEngineListener(svc *Service) *EngineListener {
	return &EngineListener{svc: svc}
}

func (l *EngineListener) OnAdd(o model.ExecutionOrder) {
	if err := l.svc.ExecuteOrder(o); err != nil {
		logs.Errorf("execution: place %s order %s: %v", o.Product.CUSIP, o.OrderID, err)
	}
}
