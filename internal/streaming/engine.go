// Package streaming turns reference prices into two-sided streamed quotes:
// the quote decision engine, the price-stream store, and the publish
// connector.
package streaming

import (
	"sync"

	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
)

// tightSpread is the widest spread at which the desk commits size,
// inclusive: exactly 1/128 still quotes full lots.
const tightSpread = 2 * model.Tick

var (
	_ fabric.Service[string, model.Quote]   = (*Engine)(nil)
	_ fabric.Listener[model.ReferencePrice] = (*Engine)(nil)
)

// quoteState is the engine's per-product running state: the product it
// tracks and nothing but the last quote. Created on the first reference
// price for a product, never deleted.
type quoteState struct {
	cusip string
	last  model.Quote
}

// Engine is the quote decision engine. It listens to the reference-price
// store and is itself a keyed service vending the last quote per product.
// The decision is a pure function of the incoming price and the lot the
// policy supplies; the engine performs no I/O.
//
// Only OnAdd is used from the listener contract; prices are never removed
// or revised in place.
type Engine struct {
	fabric.NopListener[model.ReferencePrice]

	policy LotPolicy

	mu        sync.Mutex
	states    map[string]*quoteState
	listeners []fabric.Listener[model.Quote]
}

func NewEngine(policy LotPolicy) *Engine {
	return &Engine{
		policy: policy,
		states: make(map[string]*quoteState),
	}
}

// OnAdd recomputes the product's quote from a fresh reference price.
func (e *Engine) OnAdd(p model.ReferencePrice) {
	cusip := p.Product.CUSIP

	e.mu.Lock()
	st, ok := e.states[cusip]
	if !ok {
		st = &quoteState{cusip: cusip, last: model.Quote{Product: p.Product}}
		e.states[cusip] = st
	}
	e.mu.Unlock()

	// States are keyed by CUSIP so this cannot fire on a correct routing
	// layer; it guards engine state against a stale or misrouted event.
	if st.cusip != cusip {
		logs.Warnf("streaming: state mismatch, tracked %s got %s, event ignored", st.cusip, cusip)
		return
	}

	var lot int64
	if p.Spread <= tightSpread {
		lot = e.policy.NextLot(cusip)
	}
	e.OnMessage(buildQuote(p, lot))
}

// buildQuote prices both sides around the mid. A zero lot publishes an
// indicative two-sided price with no committed size.
func buildQuote(p model.ReferencePrice, lot int64) model.Quote {
	bid := p.Mid - p.Spread/2
	offer := p.Mid + p.Spread/2
	return model.Quote{
		Product: p.Product,
		Bid: model.QuoteOrder{
			Price:           bid,
			VisibleQuantity: lot,
			HiddenQuantity:  2 * lot,
			Side:            model.SideBid,
		},
		Offer: model.QuoteOrder{
			Price:           offer,
			VisibleQuantity: lot,
			HiddenQuantity:  2 * lot,
			Side:            model.SideOffer,
		},
	}
}

// Get returns the last quote computed for a CUSIP.
func (e *Engine) Get(cusip string) (model.Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[cusip]
	if !ok {
		return model.Quote{}, fabric.ErrNotFound
	}
	return st.last, nil
}

// OnMessage records the quote and notifies listeners in registration order.
func (e *Engine) OnMessage(q model.Quote) {
	e.mu.Lock()
	st, ok := e.states[q.Product.CUSIP]
	if !ok {
		st = &quoteState{cusip: q.Product.CUSIP}
		e.states[q.Product.CUSIP] = st
	}
	st.last = q
	ls := e.listeners
	e.mu.Unlock()

	for _, l := range ls {
		l.OnAdd(q)
	}
}

func (e *Engine) AddListener(l fabric.Listener[model.Quote]) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Engine) Listeners() []fabric.Listener[model.Quote] {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]fabric.Listener[model.Quote], len(e.listeners))
	copy(out, e.listeners)
	return out
}
