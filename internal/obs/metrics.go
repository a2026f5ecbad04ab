// Package obs collects lightweight desk counters.
package obs

import "sync/atomic"

// Metrics counts records flowing through the desk. All methods are safe on
// a nil receiver so wiring can leave metrics out.
type Metrics struct {
	pricesIn      uint64
	booksIn       uint64
	tradesIn      uint64
	inquiriesIn   uint64
	quotesOut     uint64
	executionsOut uint64
	dropped       uint64
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	PricesIn      uint64
	BooksIn       uint64
	TradesIn      uint64
	InquiriesIn   uint64
	QuotesOut     uint64
	ExecutionsOut uint64
	Dropped       uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncPricesIn() {
	if m != nil {
		atomic.AddUint64(&m.pricesIn, 1)
	}
}

func (m *Metrics) IncBooksIn() {
	if m != nil {
		atomic.AddUint64(&m.booksIn, 1)
	}
}

func (m *Metrics) IncTradesIn() {
	if m != nil {
		atomic.AddUint64(&m.tradesIn, 1)
	}
}

func (m *Metrics) IncInquiriesIn() {
	if m != nil {
		atomic.AddUint64(&m.inquiriesIn, 1)
	}
}

func (m *Metrics) IncQuotesOut() {
	if m != nil {
		atomic.AddUint64(&m.quotesOut, 1)
	}
}

func (m *Metrics) IncExecutionsOut() {
	if m != nil {
		atomic.AddUint64(&m.executionsOut, 1)
	}
}

// IncDropped counts a malformed record skipped by a subscriber.
func (m *Metrics) IncDropped() {
	if m != nil {
		atomic.AddUint64(&m.dropped, 1)
	}
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		PricesIn:      atomic.LoadUint64(&m.pricesIn),
		BooksIn:       atomic.LoadUint64(&m.booksIn),
		TradesIn:      atomic.LoadUint64(&m.tradesIn),
		InquiriesIn:   atomic.LoadUint64(&m.inquiriesIn),
		QuotesOut:     atomic.LoadUint64(&m.quotesOut),
		ExecutionsOut: atomic.LoadUint64(&m.executionsOut),
		Dropped:       atomic.LoadUint64(&m.dropped),
	}
}
