package inquiry

import (
	"github.com/yanun0323/logs"

	"main/internal/fabric"
	"main/internal/model"
)

// AutoQuoter is the desk's automatic inquiry handler. A received inquiry
// gets a par quote; once the store republishes it as quoted, the quoter
// completes it. Both steps re-enter the store from inside a notification,
// which the store's unlock-before-notify discipline allows.
type AutoQuoter struct {
	fabric.NopListener[model.Inquiry]
	svc   *Service
	price model.Price
}

func NewAutoQuoter(svc *Service) *AutoQuoter {
	return &AutoQuoter{svc: svc, price: 100 * model.Point}
}

func (q *AutoQuoter) OnAdd(i model.Inquiry) {
	switch i.State {
	case model.InquiryReceived:
		if err := q.svc.SendQuote(i.InquiryID, q.price); err != nil {
			logs.Errorf("inquiry: quote %s: %v", i.InquiryID, err)
		}
	case model.InquiryQuoted:
		if err := q.svc.Complete(i.InquiryID); err != nil {
			logs.Errorf("inquiry: complete %s: %v", i.InquiryID, err)
		}
	}
}
