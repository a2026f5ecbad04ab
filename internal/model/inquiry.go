package model

// InquiryState is the lifecycle state of a customer inquiry.
type InquiryState uint8

const (
	InquiryReceived InquiryState = iota + 1
	InquiryQuoted
	InquiryDone
	InquiryRejected
	InquiryCustomerRejected
)

func (s InquiryState) String() string {
	switch s {
	case InquiryReceived:
		return "RECEIVED"
	case InquiryQuoted:
		return "QUOTED"
	case InquiryDone:
		return "DONE"
	case InquiryRejected:
		return "REJECTED"
	case InquiryCustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Inquiry is a customer request for a price on a given size.
type Inquiry struct {
	InquiryID string
	Product   Bond
	Side      TradeSide
	Quantity  int64
	Price     Price
	State     InquiryState
}
