package pricing

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/catalog"
	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{Bond: model.Bond{CUSIP: "91282CFV8", Ticker: "T"}},
	})
	require.NoError(t, err)
	return cat
}

func TestSubscribeDecodesPrices(t *testing.T) {
	svc := NewService()
	metrics := obs.NewMetrics()
	sub := NewSubscriber(svc, testCatalog(t), metrics)

	feed := "91282CFV8,100-000,0-002\n91282CFV8,99-31+,0-00+\n"
	require.NoError(t, sub.Subscribe(context.Background(), strings.NewReader(feed)))

	p, err := svc.Get("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, 99.0+31.0/32.0+1.0/64.0, p.Mid.Float64())
	assert.Equal(t, 1.0/64.0, p.Spread.Float64())
	assert.Equal(t, uint64(2), metrics.Snapshot().PricesIn)
}

func TestSubscribeSkipsMalformedRecords(t *testing.T) {
	svc := NewService()
	metrics := obs.NewMetrics()
	sub := NewSubscriber(svc, testCatalog(t), metrics)

	feed := "91282CFV8,100-000\n" + // short record
		"912810TL2,100-000,0-002\n" + // unknown product
		"91282CFV8,100-0x0,0-002\n" + // bad price
		"91282CFV8,100-000,0-002\n"
	require.NoError(t, sub.Subscribe(context.Background(), strings.NewReader(feed)))

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(3), snap.Dropped)
	assert.Equal(t, uint64(1), snap.PricesIn)
}

func refPrice(t *testing.T, mid, spread string) model.ReferencePrice {
	t.Helper()
	m, err := model.ParsePrice(mid)
	require.NoError(t, err)
	s, err := model.ParsePrice(spread)
	require.NoError(t, err)
	return model.ReferencePrice{
		Product: model.Bond{CUSIP: "91282CFV8", Ticker: "T"},
		Mid:     m,
		Spread:  s,
	}
}

func TestGUIListenerThrottles(t *testing.T) {
	var out bytes.Buffer
	clock := time.Date(2022, 12, 22, 9, 30, 0, 0, time.UTC)
	gui := NewGUIListener(&out, func() time.Time { return clock })

	svc := NewService()
	var l fabric.Listener[model.ReferencePrice] = gui
	svc.AddListener(l)

	p := refPrice(t, "100-000", "0-002")
	svc.OnMessage(p)
	svc.OnMessage(p) // same instant: throttled
	clock = clock.Add(100 * time.Millisecond)
	svc.OnMessage(p) // inside the window: throttled
	clock = clock.Add(250 * time.Millisecond)
	svc.OnMessage(p) // window elapsed

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "91282CFV8,100-000,0-002")
}

func TestGUIListenerStopsAtLimit(t *testing.T) {
	var out bytes.Buffer
	clock := time.Date(2022, 12, 22, 9, 30, 0, 0, time.UTC)
	gui := NewGUIListener(&out, func() time.Time { return clock })

	p := refPrice(t, "100-000", "0-002")
	for i := 0; i < 150; i++ {
		gui.OnAdd(p)
		clock = clock.Add(time.Second)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 100)
}
