// Package execution turns best-of-book updates into aggressive child
// orders: the execution decision engine, the execution store, and the
// publish connector.
package execution

import (
	"sync"

	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
)

// takeSpread is the crossing threshold, exclusive: the engine takes
// liquidity only when best offer minus best bid is strictly inside 1.5/128.
const takeSpread = 3 * model.Tick

var (
	_ fabric.Service[string, model.ExecutionOrder] = (*Engine)(nil)
	_ fabric.Listener[model.OrderBook]             = (*Engine)(nil)
)

// orderState is the engine's per-product running state. Created on the
// first book update for a product with a zero-size placeholder, never
// deleted.
type orderState struct {
	cusip string
	last  model.ExecutionOrder
}

// Engine is the order execution decision engine. It listens to one-level
// book updates and is itself a keyed service vending the last execution
// decision per product. Side and identifiers come from the injected
// policies; the engine performs no I/O.
//
// Only OnAdd is used from the listener contract; books are replaced, never
// removed.
type Engine struct {
	fabric.NopListener[model.OrderBook]

	sides SidePolicy
	ids   IDSource

	mu        sync.Mutex
	states    map[string]*orderState
	listeners []fabric.Listener[model.ExecutionOrder]
}

func NewEngine(sides SidePolicy, ids IDSource) *Engine {
	return &Engine{
		sides:  sides,
		ids:    ids,
		states: make(map[string]*orderState),
	}
}

// OnAdd recomputes the product's execution decision from a fresh
// best-of-book update. Books with an empty side never reach the engine;
// the market data service filters them out.
func (e *Engine) OnAdd(book model.OrderBook) {
	cusip := book.Product.CUSIP

	e.mu.Lock()
	st, ok := e.states[cusip]
	if !ok {
		st = &orderState{cusip: cusip, last: model.ExecutionOrder{
			Product: book.Product,
			Type:    model.OrderTypeLimit,
			IsChild: true,
		}}
		e.states[cusip] = st
	}
	e.mu.Unlock()

	// States are keyed by CUSIP so this cannot fire on a correct routing
	// layer; it guards engine state against a stale or misrouted event.
	if st.cusip != cusip {
		logs.Warnf("execution: state mismatch, tracked %s got %s, event ignored", st.cusip, cusip)
		return
	}

	if len(book.Bids) == 0 || len(book.Offers) == 0 {
		logs.Warnf("execution: %s book update has an empty side, event ignored", cusip)
		return
	}

	side := e.sides.NextSide(cusip)
	order := decide(book, side, e.ids.OrderID(), e.ids.ParentID(cusip))
	e.OnMessage(order)
}

// decide builds the child order for one side of the top of book. Outside
// the crossing threshold the order carries the touch price with zero size.
func decide(book model.OrderBook, side model.Side, orderID, parentID string) model.ExecutionOrder {
	bestBid := book.Bids[0]
	bestOffer := book.Offers[0]

	var touch model.Order
	if side == model.SideBid {
		touch = bestBid
	} else {
		touch = bestOffer
	}

	order := model.ExecutionOrder{
		Product:       book.Product,
		Side:          side,
		OrderID:       orderID,
		Type:          model.OrderTypeLimit,
		Price:         touch.Price,
		ParentOrderID: parentID,
		IsChild:       true,
	}
	if bestOffer.Price-bestBid.Price < takeSpread {
		order.VisibleQuantity = touch.Quantity
		order.HiddenQuantity = 2 * touch.Quantity
	}
	return order
}

// Get returns the last execution decision for a CUSIP.
func (e *Engine) Get(cusip string) (model.ExecutionOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[cusip]
	if !ok {
		return model.ExecutionOrder{}, fabric.ErrNotFound
	}
	return st.last, nil
}

// OnMessage records the order and notifies listeners in registration order.
func (e *Engine) OnMessage(o model.ExecutionOrder) {
	e.mu.Lock()
	st, ok := e.states[o.Product.CUSIP]
	if !ok {
		st = &orderState{cusip: o.Product.CUSIP}
		e.states[o.Product.CUSIP] = st
	}
	st.last = o
	ls := e.listeners
	e.mu.Unlock()

	for _, l := range ls {
		l.OnAdd(o)
	}
}

func (e *Engine) AddListener(l fabric.Listener[model.ExecutionOrder]) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Engine) Listeners() []fabric.Listener[model.ExecutionOrder] {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]fabric.Listener[model.ExecutionOrder], len(e.listeners))
	copy(out, e.listeners)
	return out
}
