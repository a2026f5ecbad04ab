package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/fabric"
	"main/internal/model"
	"main/pkg/exception"
)

func testBond() model.Bond {
	return model.Bond{CUSIP: "91282CFV8", Ticker: "T"}
}

func price(t *testing.T, text string) model.Price {
	t.Helper()
	p, err := model.ParsePrice(text)
	require.NoError(t, err)
	return p
}

func TestBestBidOffer(t *testing.T) {
	svc := NewService()
	svc.OnMessage(model.OrderBook{
		Product: testBond(),
		Bids: []model.Order{
			{Price: price(t, "99-310"), Quantity: 10_000_000, Side: model.SideBid},
			{Price: price(t, "99-31+"), Quantity: 20_000_000, Side: model.SideBid},
			{Price: price(t, "99-300"), Quantity: 30_000_000, Side: model.SideBid},
		},
		Offers: []model.Order{
			{Price: price(t, "100-001"), Quantity: 10_000_000, Side: model.SideOffer},
			{Price: price(t, "100-000"), Quantity: 20_000_000, Side: model.SideOffer},
			{Price: price(t, "100-010"), Quantity: 30_000_000, Side: model.SideOffer},
		},
	})

	best, err := svc.BestBidOffer("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, price(t, "99-31+"), best.Bid.Price)
	assert.Equal(t, int64(20_000_000), best.Bid.Quantity)
	assert.Equal(t, price(t, "100-000"), best.Offer.Price)
	assert.Equal(t, int64(20_000_000), best.Offer.Quantity)
}

func TestBestBidOfferStableTieBreak(t *testing.T) {
	svc := NewService()
	svc.OnMessage(model.OrderBook{
		Product: testBond(),
		Bids: []model.Order{
			{Price: price(t, "99-310"), Quantity: 1, Side: model.SideBid},
			{Price: price(t, "99-310"), Quantity: 2, Side: model.SideBid},
		},
		Offers: []model.Order{
			{Price: price(t, "100-000"), Quantity: 3, Side: model.SideOffer},
			{Price: price(t, "100-000"), Quantity: 4, Side: model.SideOffer},
		},
	})

	best, err := svc.BestBidOffer("91282CFV8")
	require.NoError(t, err)
	// First-seen order wins on equal prices.
	assert.Equal(t, int64(1), best.Bid.Quantity)
	assert.Equal(t, int64(3), best.Offer.Quantity)
}

func TestBestBidOfferUnknownProduct(t *testing.T) {
	svc := NewService()
	_, err := svc.BestBidOffer("912810TL2")
	require.ErrorIs(t, err, exception.ErrUnknownProduct)
}

func TestAggregateDepth(t *testing.T) {
	svc := NewService()
	svc.OnMessage(model.OrderBook{
		Product: testBond(),
		Bids: []model.Order{
			{Price: price(t, "99-310"), Quantity: 10, Side: model.SideBid},
			{Price: price(t, "99-300"), Quantity: 20, Side: model.SideBid},
			{Price: price(t, "99-310"), Quantity: 30, Side: model.SideBid},
		},
		Offers: []model.Order{
			{Price: price(t, "100-000"), Quantity: 5, Side: model.SideOffer},
			{Price: price(t, "100-000"), Quantity: 6, Side: model.SideOffer},
		},
	})

	agg, err := svc.AggregateDepth("91282CFV8")
	require.NoError(t, err)

	require.Len(t, agg.Bids, 2)
	assert.Equal(t, price(t, "99-310"), agg.Bids[0].Price)
	assert.Equal(t, int64(40), agg.Bids[0].Quantity)
	assert.Equal(t, model.SideBid, agg.Bids[0].Side)
	assert.Equal(t, price(t, "99-300"), agg.Bids[1].Price)
	assert.Equal(t, int64(20), agg.Bids[1].Quantity)

	require.Len(t, agg.Offers, 1)
	assert.Equal(t, int64(11), agg.Offers[0].Quantity)
	assert.Equal(t, model.SideOffer, agg.Offers[0].Side)

	// The stored book is a snapshot the projection must not touch.
	stored, err := svc.Get("91282CFV8")
	require.NoError(t, err)
	assert.Len(t, stored.Bids, 3)
	assert.Equal(t, int64(10), stored.Bids[0].Quantity)
}

func TestAggregateDepthIdempotent(t *testing.T) {
	svc := NewService()
	svc.OnMessage(model.OrderBook{
		Product: testBond(),
		Bids: []model.Order{
			{Price: price(t, "99-310"), Quantity: 10, Side: model.SideBid},
			{Price: price(t, "99-310"), Quantity: 30, Side: model.SideBid},
		},
		Offers: []model.Order{
			{Price: price(t, "100-000"), Quantity: 5, Side: model.SideOffer},
		},
	})

	once, err := svc.AggregateDepth("91282CFV8")
	require.NoError(t, err)

	svc.OnMessage(once)
	twice, err := svc.AggregateDepth("91282CFV8")
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	// Quantity per side is conserved.
	var total int64
	for _, o := range twice.Bids {
		total += o.Quantity
	}
	assert.Equal(t, int64(40), total)
}

type bookCapture struct {
	fabric.NopListener[model.OrderBook]
	books []model.OrderBook
}

func (l *bookCapture) OnAdd(b model.OrderBook) { l.books = append(l.books, b) }

func TestOnMessageNotifiesOneLevelBook(t *testing.T) {
	svc := NewService()
	tap := &bookCapture{}
	svc.AddListener(tap)

	svc.OnMessage(model.OrderBook{
		Product: testBond(),
		Bids: []model.Order{
			{Price: price(t, "99-300"), Quantity: 10, Side: model.SideBid},
			{Price: price(t, "99-310"), Quantity: 20, Side: model.SideBid},
		},
		Offers: []model.Order{
			{Price: price(t, "100-010"), Quantity: 30, Side: model.SideOffer},
			{Price: price(t, "100-000"), Quantity: 40, Side: model.SideOffer},
		},
	})

	require.Len(t, tap.books, 1)
	top := tap.books[0]
	require.Len(t, top.Bids, 1)
	require.Len(t, top.Offers, 1)
	assert.Equal(t, price(t, "99-310"), top.Bids[0].Price)
	assert.Equal(t, price(t, "100-000"), top.Offers[0].Price)

	// The store still holds full depth.
	stored, err := svc.Get("91282CFV8")
	require.NoError(t, err)
	assert.Len(t, stored.Bids, 2)
}

func TestOnMessageEmptySideSkipsNotify(t *testing.T) {
	svc := NewService()
	tap := &bookCapture{}
	svc.AddListener(tap)

	svc.OnMessage(model.OrderBook{Product: testBond()})

	assert.Empty(t, tap.books)
	_, err := svc.Get("91282CFV8")
	assert.NoError(t, err)
}
