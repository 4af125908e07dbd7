// README: Pricing tables, settings snapshot and quote definitions for every service family.
package pricing

import (
	"errors"
	"strings"

	"tvirti/internal/modules/vehicle"
)

type ServiceType string

const (
	ServiceCargo     ServiceType = "CARGO"
	ServiceEvacuator ServiceType = "EVACUATOR"
	ServiceCrane     ServiceType = "CRANE"
)

func ParseService(v string) (ServiceType, error) {
	s := ServiceType(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case ServiceCargo, ServiceEvacuator, ServiceCrane:
		return s, nil
	}
	return "", ErrUnknownService
}

// SubType keys a price table row inside a service family.
type SubType string

const (
	CargoS            SubType = "S"
	CargoM            SubType = "M"
	CargoL            SubType = "L"
	CargoXL           SubType = "XL"
	CargoConstruction SubType = "CONSTRUCTION"

	EvacuatorStandard         = SubType(vehicle.Standard)
	EvacuatorSpider           = SubType(vehicle.Spider)
	EvacuatorLowboy           = SubType(vehicle.Lowboy)
	EvacuatorHeavyManipulator = SubType(vehicle.HeavyManipulator)
	EvacuatorLongBed          = SubType(vehicle.LongBed)
	EvacuatorMotoCarrier      = SubType(vehicle.MotoCarrier)
)

type CraneDuration string

const (
	CraneOneTime CraneDuration = "ONE_TIME"
	CraneHourly  CraneDuration = "HOURLY"
	CraneFullDay CraneDuration = "FULL_DAY"
)

type FloorRange string

const (
	Floors1To5    FloorRange = "FLOORS_1_5"
	Floors6To10   FloorRange = "FLOORS_6_10"
	Floors11To15  FloorRange = "FLOORS_11_15"
	Floors16AndUp FloorRange = "FLOORS_16_PLUS"
)

// PriceInfo is one distance-tiered price row. Base prices are whole lari.
type PriceInfo struct {
	CustomerPrice float64 `json:"customerPrice" yaml:"customerPrice"`
	DriverPrice   float64 `json:"driverPrice" yaml:"driverPrice"`
	PerKm         float64 `json:"perKm" yaml:"perKm"`
	PerKmProfit   float64 `json:"perKmProfit" yaml:"perKmProfit"`
}

type CranePrice struct {
	CustomerPrice float64 `json:"customerPrice" yaml:"customerPrice"`
	DriverPrice   float64 `json:"driverPrice" yaml:"driverPrice"`
}

type FloorSurcharge struct {
	Surcharge       float64 `json:"surcharge" yaml:"surcharge"`
	DriverSurcharge float64 `json:"driverSurcharge" yaml:"driverSurcharge"`
}

// Settings is an immutable pricing snapshot. Calculations never modify it.
type Settings struct {
	FixedZoneKm float64                       `json:"fixedZoneKm" yaml:"fixedZoneKm"`
	Cargo       map[SubType]PriceInfo         `json:"cargo" yaml:"cargo"`
	Evacuator   map[SubType]PriceInfo         `json:"evacuator" yaml:"evacuator"`
	Crane       map[CraneDuration]CranePrice  `json:"crane" yaml:"crane"`
	CraneFloors map[FloorRange]FloorSurcharge `json:"craneFloors" yaml:"craneFloors"`
}

// CustomerSettings is the part of a snapshot the booking wizard may see. Driver payouts
// and per-km profit are left out.
type CustomerSettings struct {
	FixedZoneKm float64                         `json:"fixedZoneKm"`
	Cargo       map[SubType]CustomerPrice       `json:"cargo"`
	Evacuator   map[SubType]CustomerPrice       `json:"evacuator"`
	Crane       map[CraneDuration]CustomerPrice `json:"crane"`
	CraneFloors map[FloorRange]CustomerPrice    `json:"craneFloors"`
}

type CustomerPrice struct {
	CustomerPrice float64 `json:"customerPrice,omitempty"`
	PerKm         float64 `json:"perKm,omitempty"`
	Surcharge     float64 `json:"surcharge,omitempty"`
}

func (s Settings) Customer() CustomerSettings {
	out := CustomerSettings{
		FixedZoneKm: s.FixedZoneKm,
		Cargo:       customerRows(s.Cargo),
		Evacuator:   customerRows(s.Evacuator),
		Crane:       make(map[CraneDuration]CustomerPrice, len(s.Crane)),
		CraneFloors: make(map[FloorRange]CustomerPrice, len(s.CraneFloors)),
	}
	for k, c := range s.Crane {
		out.Crane[k] = CustomerPrice{CustomerPrice: c.CustomerPrice}
	}
	for k, f := range s.CraneFloors {
		out.CraneFloors[k] = CustomerPrice{Surcharge: f.Surcharge}
	}
	return out
}

func customerRows(table map[SubType]PriceInfo) map[SubType]CustomerPrice {
	out := make(map[SubType]CustomerPrice, len(table))
	for k, p := range table {
		out[k] = CustomerPrice{CustomerPrice: p.CustomerPrice, PerKm: p.PerKm}
	}
	return out
}

// Lookup returns the distance-tiered row for a service family and sub-type.
func (s Settings) Lookup(service ServiceType, sub SubType) (PriceInfo, bool) {
	var table map[SubType]PriceInfo
	switch service {
	case ServiceCargo:
		table = s.Cargo
	case ServiceEvacuator:
		table = s.Evacuator
	default:
		return PriceInfo{}, false
	}
	info, ok := table[sub]
	return info, ok
}

type Quote struct {
	CustomerPrice int64 `json:"customerPrice" yaml:"customerPrice"`
	DriverPrice   int64 `json:"driverPrice" yaml:"driverPrice"`
	Profit        int64 `json:"profit" yaml:"profit"`
}

// Tier holds unrounded sub-totals for one part of a price.
type Tier struct {
	Customer float64 `json:"customer" yaml:"customer"`
	Driver   float64 `json:"driver" yaml:"driver"`
	Profit   float64 `json:"profit" yaml:"profit"`
}

type Breakdown struct {
	Quote `yaml:",inline"`

	Service     ServiceType `json:"service" yaml:"service"`
	SubType     SubType     `json:"subType" yaml:"subType"`
	DistanceKm  float64     `json:"distanceKm" yaml:"distanceKm"`
	FixedZoneKm float64     `json:"fixedZoneKm" yaml:"fixedZoneKm"`
	IsOverBase  bool        `json:"isOverBase" yaml:"isOverBase"`
	ExtraKm     float64     `json:"extraKm" yaml:"extraKm"`
	Base        Tier        `json:"base" yaml:"base"`
	Extra       Tier        `json:"extra" yaml:"extra"`
	// Surcharge is set for crane quotes with a floor range.
	Surcharge *Tier `json:"surcharge,omitempty" yaml:"surcharge,omitempty"`
}

type QuoteRequest struct {
	Service       ServiceType
	SubType       SubType
	DistanceKm    float64
	CraneDuration CraneDuration
	FloorRange    FloorRange
}

var (
	ErrUnknownService    = errors.New("unknown service type")
	ErrUnknownSubType    = errors.New("unknown service sub-type")
	ErrUnknownFloorRange = errors.New("unknown floor range")
	ErrInvalidDistance   = errors.New("distance must be a non-negative number")
	ErrNotDistancePriced = errors.New("crane pricing is not distance based")
	ErrInvalidSettings   = errors.New("invalid pricing settings")
)
