package model

// ReferencePrice is the desk's internal price view for one product: a mid
// and the bid/offer spread around it. One logical latest value per CUSIP.
type ReferencePrice struct {
	Product Bond
	Mid     Price
	Spread  Price
}
