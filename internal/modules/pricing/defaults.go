// README: Hard-coded price tables used when the settings document has no value for a field.
package pricing

const DefaultFixedZoneKm = 35.0

var defaultCargo = map[SubType]PriceInfo{
	CargoS:            {CustomerPrice: 40, DriverPrice: 32, PerKm: 1.10},
	CargoM:            {CustomerPrice: 50, DriverPrice: 40, PerKm: 1.30},
	CargoL:            {CustomerPrice: 70, DriverPrice: 56, PerKm: 1.60},
	CargoXL:           {CustomerPrice: 100, DriverPrice: 80, PerKm: 2.00},
	CargoConstruction: {CustomerPrice: 150, DriverPrice: 120, PerKm: 2.50},
}

var defaultEvacuator = map[SubType]PriceInfo{
	EvacuatorStandard:         {CustomerPrice: 80, DriverPrice: 60, PerKm: 1.50, PerKmProfit: 0.30},
	EvacuatorSpider:           {CustomerPrice: 120, DriverPrice: 95, PerKm: 2.00, PerKmProfit: 0.40},
	EvacuatorLowboy:           {CustomerPrice: 300, DriverPrice: 240, PerKm: 4.00, PerKmProfit: 0.80},
	EvacuatorHeavyManipulator: {CustomerPrice: 200, DriverPrice: 160, PerKm: 3.00, PerKmProfit: 0.60},
	EvacuatorLongBed:          {CustomerPrice: 130, DriverPrice: 100, PerKm: 2.20, PerKmProfit: 0.40},
	EvacuatorMotoCarrier:      {CustomerPrice: 60, DriverPrice: 45, PerKm: 1.20, PerKmProfit: 0.20},
}

var defaultCrane = map[CraneDuration]CranePrice{
	CraneOneTime: {CustomerPrice: 150, DriverPrice: 120},
	CraneHourly:  {CustomerPrice: 90, DriverPrice: 70},
	CraneFullDay: {CustomerPrice: 650, DriverPrice: 520},
}

var defaultCraneFloors = map[FloorRange]FloorSurcharge{
	Floors1To5:    {},
	Floors6To10:   {Surcharge: 30, DriverSurcharge: 20},
	Floors11To15:  {Surcharge: 60, DriverSurcharge: 45},
	Floors16AndUp: {Surcharge: 100, DriverSurcharge: 75},
}

// DefaultSettings returns a fresh copy of the built-in tables.
func DefaultSettings() Settings {
	return Settings{
		FixedZoneKm: DefaultFixedZoneKm,
		Cargo:       copyTable(defaultCargo),
		Evacuator:   copyTable(defaultEvacuator),
		Crane:       copyTable(defaultCrane),
		CraneFloors: copyTable(defaultCraneFloors),
	}
}

func copyTable[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// KnownSubType reports whether sub is a row of the distance-tiered table for service.
func KnownSubType(service ServiceType, sub SubType) bool {
	switch service {
	case ServiceCargo:
		_, ok := defaultCargo[sub]
		return ok
	case ServiceEvacuator:
		_, ok := defaultEvacuator[sub]
		return ok
	}
	return false
}
