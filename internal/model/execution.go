package model

// OrderType is the execution order type.
type OrderType uint8

const (
	OrderTypeFOK OrderType = iota + 1
	OrderTypeIOC
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStop
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeFOK:
		return "FOK"
	case OrderTypeIOC:
		return "IOC"
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Venue is an execution destination.
type Venue uint8

const (
	VenueBrokerTec Venue = iota + 1
	VenueESpeed
	VenueCME
)

func (v Venue) String() string {
	switch v {
	case VenueBrokerTec:
		return "BROKERTEC"
	case VenueESpeed:
		return "ESPEED"
	case VenueCME:
		return "CME"
	default:
		return "UNKNOWN"
	}
}

// ExecutionOrder is an order the desk can place on a venue. A zero
// VisibleQuantity means the decision was no-take; the price is still
// recorded for audit.
type ExecutionOrder struct {
	Product         Bond
	Side            Side
	OrderID         string
	Type            OrderType
	Price           Price
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChild         bool
}
