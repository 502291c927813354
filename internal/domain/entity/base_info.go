package entity

// BaseInfo holds the platform-wide statistics exposed by the public
// base-info endpoint. All values are computed on demand from the stores;
// nothing is cached.
type BaseInfo struct {
	ReviewCount          int64
	AverageRating        float64 // Rounded to one decimal; 0.0 when no reviews exist.
	BusinessProfileCount int64
	OfferCount           int64
}
