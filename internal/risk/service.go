// Package risk marks position updates against the catalog's PV01 weights,
// per product and aggregated into maturity sectors.
package risk

import (
	"github.com/yanun0323/logs"

	"main/internal/catalog"
	"main/internal/fabric"
	"main/internal/model"
)

// Sector names for the bucketed views.
const (
	SectorFrontEnd = "FrontEnd"
	SectorBelly    = "Belly"
	SectorLongEnd  = "LongEnd"
)

// Service is the risk store, keyed by CUSIP. AddPosition is the only write
// path; each position update replaces the product's PV01 snapshot.
type Service struct {
	*fabric.Store[string, model.PV01]
	catalog *catalog.Catalog
}

func NewService(cat *catalog.Catalog) *Service {
	return &Service{
		Store: fabric.NewStore(func(r model.PV01) string {
			return r.Product.CUSIP
		}),
		catalog: cat,
	}
}

// AddPosition remarks the product's risk from its new aggregate holding.
// Products missing from the catalog are dropped.
func (s *Service) AddPosition(p model.Position) {
	weight, err := s.catalog.PV01(p.Product.CUSIP)
	if err != nil {
		logs.Warnf("risk: position update dropped: %v", err)
		return
	}
	qty := p.Aggregate()
	s.OnMessage(model.PV01{
		Product:  p.Product,
		Value:    weight * float64(qty),
		Quantity: qty,
	})
}

// BucketedRisk sums the current per-product marks across a sector. Products
// with no position yet contribute nothing.
func (s *Service) BucketedRisk(sector model.BucketedSector) model.BucketedRisk {
	out := model.BucketedRisk{Sector: sector}
	for _, bond := range sector.Products {
		r, err := s.Get(bond.CUSIP)
		if err != nil {
			continue
		}
		out.Value += r.Value
		out.Quantity += r.Quantity
	}
	return out
}

// PositionListener feeds position updates into the risk store.
type PositionListener struct {
	fabric.NopListener[model.Position]
	svc *Service
}

func NewPositionListener(svc *Service) *PositionListener {
	return &PositionListener{svc: svc}
}

func (l *PositionListener) OnAdd(p model.Position) {
	l.svc.AddPosition(p)
}
