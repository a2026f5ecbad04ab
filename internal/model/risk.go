package model

// PV01 is the price value of a one-basis-point yield move for the current
// holding in one product.
type PV01 struct {
	Product  Bond
	Value    float64
	Quantity int64
}

// BucketedSector groups securities whose risk is aggregated together.
type BucketedSector struct {
	Name     string
	Products []Bond
}

// BucketedRisk is the aggregate PV01 across a sector: Value is the sum of
// per-product PV01 weight times quantity, Quantity the summed holdings.
type BucketedRisk struct {
	Sector   BucketedSector
	Value    float64
	Quantity int64
}
