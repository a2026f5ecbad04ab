package execution

import (
	"fmt"
	"io"

	"main/internal/fabric"
	"main/internal/model"
)

var _ fabric.Publisher[model.ExecutionOrder] = (*ExecWriter)(nil)

// ExecWriter renders placed orders as flat records, one line per order:
// order id, cusip, side, type, price, visible and hidden quantity, parent.
type ExecWriter struct {
	w io.Writer
}

func NewExecWriter(w io.Writer) *ExecWriter {
	return &ExecWriter{w: w}
}

func (p *ExecWriter) Publish(o model.ExecutionOrder) error {
	_, err := fmt.Fprintf(p.w, "%s,%s,%s,%s,%s,%d,%d,%s\n",
		o.OrderID, o.Product.CUSIP, o.Side, o.Type, o.Price,
		o.VisibleQuantity, o.HiddenQuantity, o.ParentOrderID,
	)
	return err
}
