package streaming

import (
	"fmt"
	"io"

	"main/internal/fabric"
	"main/internal/model"
)

var _ fabric.Publisher[model.Quote] = (*StreamWriter)(nil)

// StreamWriter renders published quotes as flat records, one line per
// quote: cusip, then price/visible/hidden for the bid and the offer.
type StreamWriter struct {
	w io.Writer
}

func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

func (p *StreamWriter) Publish(q model.Quote) error {
	_, err := fmt.Fprintf(p.w, "%s,%s,%d,%d,%s,%d,%d\n",
		q.Product.CUSIP,
		q.Bid.Price, q.Bid.VisibleQuantity, q.Bid.HiddenQuantity,
		q.Offer.Price, q.Offer.VisibleQuantity, q.Offer.HiddenQuantity,
	)
	return err
}
