package inquiry

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/catalog"
	"main/internal/fabric"
	"main/internal/model"
	"main/internal/obs"
	"main/pkg/exception"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{Bond: model.Bond{CUSIP: "91282CFV8", Ticker: "T"}, PV01: 0.085},
	})
	require.NoError(t, err)
	return cat
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return "INQ-" + strconv.Itoa(n)
	}
}

func received(id string) model.Inquiry {
	return model.Inquiry{
		InquiryID: id,
		Product:   model.Bond{CUSIP: "91282CFV8", Ticker: "T"},
		Side:      model.TradeBuy,
		Quantity:  1_000_000,
		State:     model.InquiryReceived,
	}
}

func TestLifecycleReceivedQuotedDone(t *testing.T) {
	svc := NewService()
	svc.OnMessage(received("INQ-1"))

	require.NoError(t, svc.SendQuote("INQ-1", 100*model.Point))
	quoted, err := svc.Get("INQ-1")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryQuoted, quoted.State)
	assert.Equal(t, 100.0, quoted.Price.Float64())

	require.NoError(t, svc.Complete("INQ-1"))
	done, err := svc.Get("INQ-1")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryDone, done.State)
}

func TestTransitionGuards(t *testing.T) {
	svc := NewService()
	svc.OnMessage(received("INQ-1"))

	err := svc.Complete("INQ-1")
	require.ErrorIs(t, err, exception.ErrInvalidTransition)

	require.NoError(t, svc.SendQuote("INQ-1", 100*model.Point))
	err = svc.SendQuote("INQ-1", 100*model.Point)
	require.ErrorIs(t, err, exception.ErrInvalidTransition)

	require.NoError(t, svc.Complete("INQ-1"))
	err = svc.Reject("INQ-1")
	require.ErrorIs(t, err, exception.ErrInvalidTransition)
}

func TestUnknownInquiry(t *testing.T) {
	svc := NewService()
	require.ErrorIs(t, svc.SendQuote("INQ-9", 100*model.Point), exception.ErrUnknownInquiry)
	require.ErrorIs(t, svc.Complete("INQ-9"), exception.ErrUnknownInquiry)
	require.ErrorIs(t, svc.Reject("INQ-9"), exception.ErrUnknownInquiry)
}

func TestRejectBeforeCompletion(t *testing.T) {
	svc := NewService()
	svc.OnMessage(received("INQ-1"))
	require.NoError(t, svc.SendQuote("INQ-1", 100*model.Point))
	require.NoError(t, svc.Reject("INQ-1"))

	i, err := svc.Get("INQ-1")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryRejected, i.State)
}

func TestAutoQuoterRunsTheFullLifecycle(t *testing.T) {
	svc := NewService()
	svc.AddListener(NewAutoQuoter(svc))

	var states []model.InquiryState
	svc.AddListener(fabric.ListenerFunc[model.Inquiry](func(i model.Inquiry) {
		states = append(states, i.State)
	}))

	svc.OnMessage(received("INQ-1"))

	final, err := svc.Get("INQ-1")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryDone, final.State)
	assert.Equal(t, 100.0, final.Price.Float64())
	assert.Equal(t, []model.InquiryState{
		model.InquiryDone,
		model.InquiryQuoted,
		model.InquiryReceived,
	}, states)
}

func TestSubscribeAcceptsReceivedOnly(t *testing.T) {
	m := obs.NewMetrics()
	svc := NewService()
	sub := NewSubscriber(svc, testCatalog(t), m).WithIDSource(seqIDs())

	feed := strings.Join([]string{
		"91282CFV8,100-000,1000000,BUY,RECEIVED",
		"91282CFV8,100-000,1000000,SELL,QUOTED",
		"91282CFV8,100-000,0,BUY,RECEIVED",
		"912828ZZZ,100-000,1000000,BUY,RECEIVED",
	}, "\n")
	require.NoError(t, sub.Subscribe(context.Background(), strings.NewReader(feed)))

	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, uint64(1), m.Snapshot().InquiriesIn)
	assert.Equal(t, uint64(3), m.Snapshot().Dropped)

	i, err := svc.Get("INQ-1")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryReceived, i.State)
	assert.Equal(t, model.TradeBuy, i.Side)
}
