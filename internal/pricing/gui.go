package pricing

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
)

const (
	guiThrottle    = 300 * time.Millisecond
	guiUpdateLimit = 100
)

// GUIListener tails the price store for the display feed: at most one
// update per throttle interval, and only the first hundred overall. Uses
// OnAdd only; prices are never removed or revised in place.
type GUIListener struct {
	fabric.NopListener[model.ReferencePrice]

	w   io.Writer
	now func() time.Time

	mu       sync.Mutex
	lastEmit time.Time
	count    int
}

// NewGUIListener writes throttled price lines to w. now is injectable for
// tests; pass nil for the wall clock.
func NewGUIListener(w io.Writer, now func() time.Time) *GUIListener {
	if now == nil {
		now = time.Now
	}
	return &GUIListener{w: w, now: now}
}

func (l *GUIListener) OnAdd(p model.ReferencePrice) {
	l.mu.Lock()
	ts := l.now()
	if l.count >= guiUpdateLimit || (!l.lastEmit.IsZero() && ts.Sub(l.lastEmit) < guiThrottle) {
		l.mu.Unlock()
		return
	}
	l.lastEmit = ts
	l.count++
	l.mu.Unlock()

	_, err := fmt.Fprintf(l.w, "%s,%s,%s,%s\n",
		ts.Format("15:04:05.000"), p.Product.CUSIP, p.Mid, p.Spread)
	if err != nil {
		logs.Errorf("gui: write price line: %v", err)
	}
}
