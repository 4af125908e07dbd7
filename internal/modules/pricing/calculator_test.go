package pricing

import (
	"errors"
	"testing"
)

func TestCalculate(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name     string
		service  ServiceType
		sub      SubType
		distance float64
		want     Quote
	}{
		{
			name:     "Cargo M within zone",
			service:  ServiceCargo,
			sub:      CargoM,
			distance: 20,
			want:     Quote{CustomerPrice: 50, DriverPrice: 40, Profit: 10},
		},
		{
			name:     "Cargo M over zone (10km * 1.30, no per-km profit)",
			service:  ServiceCargo,
			sub:      CargoM,
			distance: 45,
			// extra customer 13, extra profit 0, extra driver 13
			want: Quote{CustomerPrice: 63, DriverPrice: 53, Profit: 10},
		},
		{
			name:     "Cargo M exactly at zone edge",
			service:  ServiceCargo,
			sub:      CargoM,
			distance: 35,
			want:     Quote{CustomerPrice: 50, DriverPrice: 40, Profit: 10},
		},
		{
			name:     "Cargo M zero distance",
			service:  ServiceCargo,
			sub:      CargoM,
			distance: 0,
			want:     Quote{CustomerPrice: 50, DriverPrice: 40, Profit: 10},
		},
		{
			name:     "Evacuator standard over zone with per-km profit",
			service:  ServiceEvacuator,
			sub:      EvacuatorStandard,
			distance: 55,
			// extra 20km: customer 30, profit 6, driver 24
			want: Quote{CustomerPrice: 110, DriverPrice: 84, Profit: 26},
		},
		{
			name:     "Evacuator lowboy over zone, fractional km",
			service:  ServiceEvacuator,
			sub:      EvacuatorLowboy,
			distance: 37.3,
			// extra 2.3km: customer 9.2, profit 1.84, driver 7.36
			want: Quote{CustomerPrice: 309, DriverPrice: 247, Profit: 62},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(settings, tt.service, tt.sub, tt.distance)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name     string
		service  ServiceType
		sub      SubType
		distance float64
		wantErr  error
	}{
		{"unknown cargo size", ServiceCargo, SubType("XXL"), 10, ErrUnknownSubType},
		{"evacuator key on cargo table", ServiceCargo, EvacuatorSpider, 10, ErrUnknownSubType},
		{"unknown service", ServiceType("BOAT"), CargoM, 10, ErrUnknownSubType},
		{"crane is not distance priced", ServiceCrane, SubType(CraneHourly), 10, ErrNotDistancePriced},
		{"negative distance", ServiceCargo, CargoM, -1, ErrInvalidDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(settings, tt.service, tt.sub, tt.distance)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
			}
			if got != (Quote{}) {
				t.Errorf("Calculate() = %+v, want zero quote", got)
			}
		})
	}
}

func TestCalculate_WithinZoneIgnoresDistance(t *testing.T) {
	settings := DefaultSettings()
	settings.FixedZoneKm = 35
	for _, sub := range []SubType{CargoS, CargoM, CargoL, CargoXL, CargoConstruction} {
		info := settings.Cargo[sub]
		for _, d := range []float64{0, 0.5, 10, 34.99, 35} {
			got, err := Calculate(settings, ServiceCargo, sub, d)
			if err != nil {
				t.Fatalf("Calculate(%s, %v) error = %v", sub, d, err)
			}
			if got.CustomerPrice != int64(info.CustomerPrice) || got.DriverPrice != int64(info.DriverPrice) {
				t.Errorf("Calculate(%s, %v) = %+v, want base prices %v/%v", sub, d, got, info.CustomerPrice, info.DriverPrice)
			}
			if got.Profit != got.CustomerPrice-got.DriverPrice {
				t.Errorf("Calculate(%s, %v) profit = %d, want %d", sub, d, got.Profit, got.CustomerPrice-got.DriverPrice)
			}
		}
	}
}

func TestCalculate_MonotonicOverZone(t *testing.T) {
	settings := DefaultSettings()
	for sub, info := range settings.Evacuator {
		if info.PerKm <= 0 {
			continue
		}
		prev := int64(-1)
		// Steps of 1km with perKm >= 1 guarantee a strictly increasing rounded price.
		for d := settings.FixedZoneKm + 1; d <= settings.FixedZoneKm+100; d++ {
			got, err := Calculate(settings, ServiceEvacuator, sub, d)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.CustomerPrice <= prev {
				t.Fatalf("%s: price at %vkm = %d, not above %d", sub, d, got.CustomerPrice, prev)
			}
			prev = got.CustomerPrice
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	settings := DefaultSettings()
	a, errA := CalculateDetailed(settings, ServiceEvacuator, EvacuatorSpider, 81.7)
	b, errB := CalculateDetailed(settings, ServiceEvacuator, EvacuatorSpider, 81.7)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if a.Quote != b.Quote || a.Extra != b.Extra || a.Base != b.Base {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestCalculate_DoesNotMutateSettings(t *testing.T) {
	settings := DefaultSettings()
	before := settings.Cargo[CargoM]
	if _, err := Calculate(settings, ServiceCargo, CargoM, 120); err != nil {
		t.Fatal(err)
	}
	if settings.Cargo[CargoM] != before || settings.FixedZoneKm != DefaultFixedZoneKm {
		t.Fatalf("settings changed during calculation")
	}
}

func TestCalculateDetailed_Breakdown(t *testing.T) {
	settings := DefaultSettings()

	within, err := CalculateDetailed(settings, ServiceCargo, CargoM, 20)
	if err != nil {
		t.Fatal(err)
	}
	if within.IsOverBase || within.ExtraKm != 0 || within.Extra != (Tier{}) {
		t.Errorf("within zone breakdown = %+v, want no extra tier", within)
	}

	over, err := CalculateDetailed(settings, ServiceCargo, CargoM, 45)
	if err != nil {
		t.Fatal(err)
	}
	if !over.IsOverBase {
		t.Fatalf("expected IsOverBase")
	}
	if over.ExtraKm != 10 {
		t.Errorf("ExtraKm = %v, want 10", over.ExtraKm)
	}
	if round(over.Extra.Customer) != 13 || round(over.Extra.Driver) != 13 || over.Extra.Profit != 0 {
		t.Errorf("Extra = %+v, want 13/13/0", over.Extra)
	}
	if over.Base != (Tier{Customer: 50, Driver: 40, Profit: 10}) {
		t.Errorf("Base = %+v", over.Base)
	}
}

func TestCalculate_ZeroFixedZone(t *testing.T) {
	settings := DefaultSettings()
	settings.FixedZoneKm = 0

	got, err := Calculate(settings, ServiceCargo, CargoM, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Quote{CustomerPrice: 50, DriverPrice: 40, Profit: 10}) {
		t.Errorf("zero distance with zero zone = %+v", got)
	}
	got, err = Calculate(settings, ServiceCargo, CargoM, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Quote{CustomerPrice: 63, DriverPrice: 53, Profit: 10}) {
		t.Errorf("10km with zero zone = %+v", got)
	}
}

func TestCraneQuote(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name     string
		duration CraneDuration
		floor    FloorRange
		want     Quote
	}{
		{"one time, no floor", CraneOneTime, "", Quote{CustomerPrice: 150, DriverPrice: 120, Profit: 30}},
		{"one time, low floors", CraneOneTime, Floors1To5, Quote{CustomerPrice: 150, DriverPrice: 120, Profit: 30}},
		{"hourly, floors 6-10", CraneHourly, Floors6To10, Quote{CustomerPrice: 120, DriverPrice: 90, Profit: 30}},
		{"full day, 16+", CraneFullDay, Floors16AndUp, Quote{CustomerPrice: 750, DriverPrice: 595, Profit: 155}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CraneQuote(settings, tt.duration, tt.floor)
			if err != nil {
				t.Fatalf("CraneQuote() error = %v", err)
			}
			if got.Quote != tt.want {
				t.Errorf("CraneQuote() = %+v, want %+v", got.Quote, tt.want)
			}
			if got.IsOverBase || got.ExtraKm != 0 {
				t.Errorf("crane quote has a distance tier: %+v", got)
			}
			if (tt.floor == "") != (got.Surcharge == nil) {
				t.Errorf("surcharge presence mismatch: %+v", got.Surcharge)
			}
		})
	}

	if _, err := CraneQuote(settings, CraneDuration("WEEKLY"), ""); !errors.Is(err, ErrUnknownSubType) {
		t.Errorf("expected ErrUnknownSubType, got %v", err)
	}
	if _, err := CraneQuote(settings, CraneHourly, FloorRange("ROOF")); !errors.Is(err, ErrUnknownFloorRange) {
		t.Errorf("expected ErrUnknownFloorRange, got %v", err)
	}
}

func TestPrice_Dispatch(t *testing.T) {
	settings := DefaultSettings()

	b, err := Price(settings, QuoteRequest{Service: ServiceCrane, CraneDuration: CraneHourly, DistanceKm: 500})
	if err != nil {
		t.Fatal(err)
	}
	if b.CustomerPrice != 90 {
		t.Errorf("crane price depends on distance: %+v", b.Quote)
	}

	b, err = Price(settings, QuoteRequest{Service: ServiceCargo, SubType: CargoM, DistanceKm: 45})
	if err != nil {
		t.Fatal(err)
	}
	if b.CustomerPrice != 63 {
		t.Errorf("cargo price = %d, want 63", b.CustomerPrice)
	}

	if _, err := Price(settings, QuoteRequest{Service: ServiceType("")}); !errors.Is(err, ErrUnknownService) {
		t.Errorf("expected ErrUnknownService, got %v", err)
	}
}

func TestKnownSubType(t *testing.T) {
	tests := []struct {
		service ServiceType
		sub     SubType
		want    bool
	}{
		{ServiceCargo, CargoXL, true},
		{ServiceCargo, EvacuatorSpider, false},
		{ServiceEvacuator, EvacuatorMotoCarrier, true},
		{ServiceCrane, SubType(CraneHourly), false},
	}
	for _, tt := range tests {
		if got := KnownSubType(tt.service, tt.sub); got != tt.want {
			t.Errorf("KnownSubType(%s, %s) = %v, want %v", tt.service, tt.sub, got, tt.want)
		}
	}
}
