package providers

import "context"

// QuoteRequest carries the inputs for a live delivery-cost quote.
type QuoteRequest struct {
	OriginPostalCode      string
	DestinationPostalCode string
	OriginProvince        string
	DestinationProvince   string
	WeightKg              float64
}

// RateProvider is the carrier integration consumed by order pricing.
type RateProvider interface {
	// VolumetricWeight converts parcel dimensions (cm) into a chargeable
	// weight (kg).
	VolumetricWeight(ctx context.Context, length, width, height float64) (float64, error)

	// DeliveryCost returns the to-address delivery cost for the given
	// origin/destination/weight tuple.
	DeliveryCost(ctx context.Context, req QuoteRequest) (float64, error)
}
