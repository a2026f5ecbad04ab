// Package datagen writes deterministic feed files for simulation runs.
// Every generated record round-trips through the corresponding subscriber.
package datagen

import (
	"fmt"
	"io"

	"main/internal/catalog"
	"main/internal/model"
)

const (
	midFloor   = 99 * model.Point
	midCeiling = 101 * model.Point
)

// midWalk oscillates a mid price between 99 and 101 one tick at a time,
// bouncing at the bounds. One walk per product keeps products independent.
type midWalk struct {
	at   model.Price
	step model.Price
}

func newMidWalk() *midWalk {
	return &midWalk{at: midFloor, step: model.Tick}
}

func (w *midWalk) next() model.Price {
	mid := w.at
	w.at += w.step
	if w.at >= midCeiling || w.at <= midFloor {
		w.step = -w.step
	}
	return mid
}

// WritePrices emits count price records per catalog product, interleaved
// product by product. The spread alternates between 1/128 and 1/64, so
// every other record prices inside the tight-spread threshold.
func WritePrices(w io.Writer, cat *catalog.Catalog, count int) error {
	bonds := cat.Bonds()
	walks := make([]*midWalk, len(bonds))
	for i := range walks {
		walks[i] = newMidWalk()
	}

	spreads := [2]model.Price{2 * model.Tick, 4 * model.Tick}
	for n := 0; n < count; n++ {
		for i, bond := range bonds {
			mid := walks[i].next()
			spread := spreads[n%2]
			if _, err := fmt.Fprintf(w, "%s,%s,%s\n", bond.CUSIP, mid, spread); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMarketData emits count five-level book updates per catalog product.
// The top-of-book spread cycles 1/128 up to 1/32 and back; each level
// steps one tick away from the touch with ten million more on the size.
func WriteMarketData(w io.Writer, cat *catalog.Catalog, count int) error {
	bonds := cat.Bonds()
	walks := make([]*midWalk, len(bonds))
	for i := range walks {
		walks[i] = newMidWalk()
	}

	// Half spreads in ticks, so the touch spread cycles 1/128 up to 1/32
	// and back while every price stays on the eighth grid.
	halves := [6]model.Price{1, 2, 3, 4, 3, 2}
	for n := 0; n < count; n++ {
		for i, bond := range bonds {
			mid := walks[i].next()
			half := halves[n%len(halves)] * model.Tick
			for level := model.Price(0); level < 5; level++ {
				price := mid - half - level*model.Tick
				qty := (level + 1) * 10_000_000
				if _, err := fmt.Fprintf(w, "%s,%s,%d,BID\n", bond.CUSIP, price, qty); err != nil {
					return err
				}
			}
			for level := model.Price(0); level < 5; level++ {
				price := mid + half + level*model.Tick
				qty := (level + 1) * 10_000_000
				if _, err := fmt.Fprintf(w, "%s,%s,%d,OFFER\n", bond.CUSIP, price, qty); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WriteTrades emits count trades per catalog product: sides alternate,
// buys print at 99 and sells at 100, books rotate, and the quantity
// cycles one to five million.
func WriteTrades(w io.Writer, cat *catalog.Catalog, books []string, count int) error {
	id := 0
	for n := 0; n < count; n++ {
		for _, bond := range cat.Bonds() {
			id++
			side, price := "BUY", model.Price(99*model.Point)
			if n%2 == 1 {
				side, price = "SELL", 100*model.Point
			}
			book := books[id%len(books)]
			qty := int64(n%5+1) * 1_000_000
			if _, err := fmt.Fprintf(w, "%s,T%d,%s,%s,%d,%s\n", bond.CUSIP, id, price, book, qty, side); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteInquiries emits count received inquiries per catalog product with
// alternating sides and a cycling size.
func WriteInquiries(w io.Writer, cat *catalog.Catalog, count int) error {
	for n := 0; n < count; n++ {
		for _, bond := range cat.Bonds() {
			side := "BUY"
			if n%2 == 1 {
				side = "SELL"
			}
			qty := int64(n%5+1) * 1_000_000
			price := model.Price(100 * model.Point)
			if _, err := fmt.Fprintf(w, "%s,%s,%d,%s,RECEIVED\n", bond.CUSIP, price, qty, side); err != nil {
				return err
			}
		}
	}
	return nil
}
