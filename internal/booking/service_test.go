package booking

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/catalog"
	"main/internal/model"
	"main/internal/obs"
	"main/pkg/exception"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{Bond: model.Bond{CUSIP: "91282CFV8", Ticker: "T"}, PV01: 0.019},
	})
	require.NoError(t, err)
	return cat
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return "TRD-" + strconv.Itoa(n)
	}
}

func TestBookTradeStoresByTradeID(t *testing.T) {
	m := obs.NewMetrics()
	svc := NewService(m)

	svc.BookTrade(model.Trade{
		Product: model.Bond{CUSIP: "91282CFV8"}, TradeID: "T1",
		Book: "TRSY1", Quantity: 1_000_000, Side: model.TradeBuy,
	})
	svc.BookTrade(model.Trade{
		Product: model.Bond{CUSIP: "91282CFV8"}, TradeID: "T2",
		Book: "TRSY2", Quantity: 2_000_000, Side: model.TradeSell,
	})

	first, err := svc.Get("T1")
	require.NoError(t, err)
	assert.Equal(t, "TRSY1", first.Book)

	second, err := svc.Trade("T2")
	require.NoError(t, err)
	assert.Equal(t, "TRSY2", second.Book)
	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, uint64(2), m.Snapshot().TradesIn)

	_, err = svc.Trade("T9")
	require.ErrorIs(t, err, exception.ErrUnknownTrade)
}

func TestExecutionListenerRotatesBooks(t *testing.T) {
	svc := NewService(obs.NewMetrics())
	l := NewExecutionListener(svc, []string{"TRSY1", "TRSY2", "TRSY3"}).WithIDSource(seqIDs())

	order := model.ExecutionOrder{
		Product:         model.Bond{CUSIP: "91282CFV8"},
		Side:            model.SideBid,
		VisibleQuantity: 1_000_000,
		HiddenQuantity:  2_000_000,
	}
	for i := 0; i < 4; i++ {
		l.OnAdd(order)
	}

	books := make([]string, 0, 4)
	for i := 1; i <= 4; i++ {
		trade, err := svc.Get("TRD-" + strconv.Itoa(i))
		require.NoError(t, err)
		books = append(books, trade.Book)
		assert.Equal(t, int64(3_000_000), trade.Quantity)
		assert.Equal(t, model.TradeBuy, trade.Side)
	}
	assert.Equal(t, []string{"TRSY1", "TRSY2", "TRSY3", "TRSY1"}, books)
}

func TestExecutionListenerSkipsNoTakeDecisions(t *testing.T) {
	svc := NewService(obs.NewMetrics())
	l := NewExecutionListener(svc, []string{"TRSY1"}).WithIDSource(seqIDs())

	l.OnAdd(model.ExecutionOrder{
		Product: model.Bond{CUSIP: "91282CFV8"},
		Side:    model.SideOffer,
	})

	assert.Zero(t, svc.Len())
}

func TestExecutionListenerMapsOfferToSell(t *testing.T) {
	svc := NewService(obs.NewMetrics())
	l := NewExecutionListener(svc, []string{"TRSY1"}).WithIDSource(seqIDs())

	l.OnAdd(model.ExecutionOrder{
		Product:         model.Bond{CUSIP: "91282CFV8"},
		Side:            model.SideOffer,
		VisibleQuantity: 2_000_000,
		HiddenQuantity:  4_000_000,
	})

	trade, err := svc.Get("TRD-1")
	require.NoError(t, err)
	assert.Equal(t, model.TradeSell, trade.Side)
	assert.Equal(t, int64(6_000_000), trade.Quantity)
}

func TestSubscribeBooksFeedTrades(t *testing.T) {
	m := obs.NewMetrics()
	svc := NewService(m)
	sub := NewSubscriber(svc, testCatalog(t), m)

	feed := strings.Join([]string{
		"91282CFV8,T1,99-315,TRSY1,1000000,BUY",
		"91282CFV8,T2,100-002,TRSY2,2000000,SELL",
	}, "\n")
	require.NoError(t, sub.Subscribe(context.Background(), strings.NewReader(feed)))

	trade, err := svc.Get("T2")
	require.NoError(t, err)
	assert.Equal(t, model.TradeSell, trade.Side)
	assert.Equal(t, "TRSY2", trade.Book)
	assert.Equal(t, 100.0+2.0/256.0, trade.Price.Float64())
}

func TestSubscribeDropsMalformedTrades(t *testing.T) {
	m := obs.NewMetrics()
	svc := NewService(m)
	sub := NewSubscriber(svc, testCatalog(t), m)

	feed := strings.Join([]string{
		"91282CFV8,T1,99-315,TRSY1,1000000,BUY",
		"912828ZZZ,T2,99-315,TRSY1,1000000,BUY",  // unknown product
		"91282CFV8,T3,99-9x5,TRSY1,1000000,BUY",  // bad price
		"91282CFV8,T4,99-315,TRSY1,-5,BUY",       // bad quantity
		"91282CFV8,T5,99-315,TRSY1,1000000,HOLD", // bad side
		"91282CFV8,,99-315,TRSY1,1000000,BUY",    // empty id
	}, "\n")
	require.NoError(t, sub.Subscribe(context.Background(), strings.NewReader(feed)))

	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, uint64(5), m.Snapshot().Dropped)
}
