package risk

import (
	"time"

	"main/internal/catalog"
	"main/internal/model"
)

// Sector horizon cutoffs, measured from the as-of date to maturity. Four
// years captures the 2Y and 3Y, fifteen the 5Y, 7Y and 10Y; the rest is
// long end.
const (
	frontEndHorizon = 4 * 365 * 24 * time.Hour
	bellyHorizon    = 15 * 365 * 24 * time.Hour
)

// SectorsFromCatalog splits the catalog into the three maturity sectors,
// preserving catalog order within each.
func SectorsFromCatalog(cat *catalog.Catalog, asOf time.Time) []model.BucketedSector {
	front := model.BucketedSector{Name: SectorFrontEnd}
	belly := model.BucketedSector{Name: SectorBelly}
	long := model.BucketedSector{Name: SectorLongEnd}

	for _, bond := range cat.Bonds() {
		switch horizon := bond.Maturity.Sub(asOf); {
		case horizon < frontEndHorizon:
			front.Products = append(front.Products, bond)
		case horizon < bellyHorizon:
			belly.Products = append(belly.Products, bond)
		default:
			long.Products = append(long.Products, bond)
		}
	}
	return []model.BucketedSector{front, belly, long}
}
