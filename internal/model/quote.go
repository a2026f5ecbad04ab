package model

// QuoteOrder is one side of a streamed two-way quote. VisibleQuantity is
// the size shown to the market; HiddenQuantity is additional size available
// to trade but not displayed.
type QuoteOrder struct {
	Price           Price
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            Side
}

// Quote is a two-sided price stream for one product, fully replaced on each
// recompute.
type Quote struct {
	Product Bond
	Bid     QuoteOrder
	Offer   QuoteOrder
}
