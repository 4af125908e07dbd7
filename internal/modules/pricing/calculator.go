// README: Pure price calculations over a settings snapshot. Safe for concurrent use.
package pricing

import (
	"fmt"
	"math"
)

// Calculate returns the customer/driver/profit split for a distance-priced service.
func Calculate(s Settings, service ServiceType, sub SubType, distanceKm float64) (Quote, error) {
	b, err := CalculateDetailed(s, service, sub, distanceKm)
	return b.Quote, err
}

// CalculateDetailed is Calculate plus base and extra tier sub-totals.
// Distances up to and including the fixed zone are charged the base price only.
func CalculateDetailed(s Settings, service ServiceType, sub SubType, distanceKm float64) (Breakdown, error) {
	if service == ServiceCrane {
		return Breakdown{}, ErrNotDistancePriced
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return Breakdown{}, ErrInvalidDistance
	}
	info, ok := s.Lookup(service, sub)
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %s/%s", ErrUnknownSubType, service, sub)
	}

	b := Breakdown{
		Service:     service,
		SubType:     sub,
		DistanceKm:  distanceKm,
		FixedZoneKm: s.FixedZoneKm,
		Base: Tier{
			Customer: info.CustomerPrice,
			Driver:   info.DriverPrice,
			Profit:   info.CustomerPrice - info.DriverPrice,
		},
	}
	if distanceKm <= s.FixedZoneKm {
		b.Quote = Quote{
			CustomerPrice: round(b.Base.Customer),
			DriverPrice:   round(b.Base.Driver),
			Profit:        round(b.Base.Profit),
		}
		return b, nil
	}

	extraKm := distanceKm - s.FixedZoneKm
	extraCustomer := extraKm * info.PerKm
	extraProfit := extraKm * info.PerKmProfit
	b.IsOverBase = true
	b.ExtraKm = extraKm
	b.Extra = Tier{
		Customer: extraCustomer,
		Driver:   extraCustomer - extraProfit,
		Profit:   extraProfit,
	}
	// Each figure is rounded on its own, so Profit may differ from
	// CustomerPrice-DriverPrice by one lari.
	b.Quote = Quote{
		CustomerPrice: round(b.Base.Customer + b.Extra.Customer),
		DriverPrice:   round(b.Base.Driver + b.Extra.Driver),
		Profit:        round(b.Base.Profit + b.Extra.Profit),
	}
	return b, nil
}

// CraneQuote prices a crane job: flat by duration plus an optional floor surcharge.
// An empty floor range means no surcharge.
func CraneQuote(s Settings, d CraneDuration, floor FloorRange) (Breakdown, error) {
	price, ok := s.Crane[d]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %s/%s", ErrUnknownSubType, ServiceCrane, d)
	}
	b := Breakdown{
		Service: ServiceCrane,
		SubType: SubType(d),
		Base: Tier{
			Customer: price.CustomerPrice,
			Driver:   price.DriverPrice,
			Profit:   price.CustomerPrice - price.DriverPrice,
		},
	}
	customer, driver := price.CustomerPrice, price.DriverPrice
	if floor != "" {
		f, ok := s.CraneFloors[floor]
		if !ok {
			return Breakdown{}, fmt.Errorf("%w: %s", ErrUnknownFloorRange, floor)
		}
		b.Surcharge = &Tier{
			Customer: f.Surcharge,
			Driver:   f.DriverSurcharge,
			Profit:   f.Surcharge - f.DriverSurcharge,
		}
		customer += f.Surcharge
		driver += f.DriverSurcharge
	}
	b.Quote = Quote{
		CustomerPrice: round(customer),
		DriverPrice:   round(driver),
		Profit:        round(customer - driver),
	}
	return b, nil
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
