package pricing

import "math"

// FareBreakdown itemizes a computed fare. It is stored verbatim inside a
// quote and never recomputed at redemption time.
type FareBreakdown struct {
	BaseFareCents     int64  `json:"base_fare_cents"`
	DistanceFareCents int64  `json:"distance_fare_cents"`
	TimeFareCents     int64  `json:"time_fare_cents"`
	BookingFeeCents   int64  `json:"booking_fee_cents"`
	TotalCents        int64  `json:"total_cents"`
	Currency          string `json:"currency"`
}

// FareCalculator computes fares from route measurements and an active
// pricing configuration. It is a pure function of its inputs.
type FareCalculator struct{}

// NewFareCalculator creates a FareCalculator.
func NewFareCalculator() *FareCalculator {
	return &FareCalculator{}
}

// Quote computes the fare for the given route under cfg.
//
// trafficFactor scales the distance and time components when a live-traffic
// signal is available; the quote generation flow always passes nil, so fares
// are computed at the base rates. extraCents adds a flat adjustment (tolls,
// airport fees); also nil in the quote flow.
func (f *FareCalculator) Quote(cfg *Config, distanceMeters, durationSeconds int, trafficFactor *float64, extraCents *int64) FareBreakdown {
	distanceFare := int64(math.Round(float64(cfg.PerKmCents()) * float64(distanceMeters) / 1000.0))
	timeFare := int64(math.Round(float64(cfg.PerMinuteCents()) * float64(durationSeconds) / 60.0))

	if trafficFactor != nil {
		distanceFare = int64(math.Round(float64(distanceFare) * *trafficFactor))
		timeFare = int64(math.Round(float64(timeFare) * *trafficFactor))
	}

	total := cfg.BaseFareCents() + distanceFare + timeFare + cfg.BookingFeeCents()
	if extraCents != nil {
		total += *extraCents
	}
	if total < cfg.MinimumFareCents() {
		total = cfg.MinimumFareCents()
	}

	return FareBreakdown{
		BaseFareCents:     cfg.BaseFareCents(),
		DistanceFareCents: distanceFare,
		TimeFareCents:     timeFare,
		BookingFeeCents:   cfg.BookingFeeCents(),
		TotalCents:        total,
		Currency:          cfg.Currency(),
	}
}
