// Package pricing is the reference-price store feeding the quote chain,
// plus the throttled GUI tap on the same store.
package pricing

import (
	"main/internal/fabric"
	"main/internal/model"
)

// Service manages the latest mid/spread per CUSIP.
type Service struct {
	*fabric.Store[string, model.ReferencePrice]
}

func NewService() *Service {
	return &Service{
		Store: fabric.NewStore(func(p model.ReferencePrice) string {
			return p.Product.CUSIP
		}),
	}
}
