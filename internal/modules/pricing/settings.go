// README: Stored pricing overrides and their merge over the built-in defaults.
package pricing

import (
	"fmt"
	"log"
	"math"
)

// PriceOverride is the stored shape of one price row. A nil field is "not configured"
// and falls back to the default for that field only. Zero is a real value.
type PriceOverride struct {
	CustomerPrice *float64 `json:"customerPrice,omitempty" yaml:"customerPrice,omitempty" firestore:"customerPrice,omitempty"`
	DriverPrice   *float64 `json:"driverPrice,omitempty" yaml:"driverPrice,omitempty" firestore:"driverPrice,omitempty"`
	PerKm         *float64 `json:"perKm,omitempty" yaml:"perKm,omitempty" firestore:"perKm,omitempty"`
	PerKmProfit   *float64 `json:"perKmProfit,omitempty" yaml:"perKmProfit,omitempty" firestore:"perKmProfit,omitempty"`
}

type CraneOverride struct {
	CustomerPrice *float64 `json:"customerPrice,omitempty" yaml:"customerPrice,omitempty" firestore:"customerPrice,omitempty"`
	DriverPrice   *float64 `json:"driverPrice,omitempty" yaml:"driverPrice,omitempty" firestore:"driverPrice,omitempty"`
}

type FloorOverride struct {
	Surcharge       *float64 `json:"surcharge,omitempty" yaml:"surcharge,omitempty" firestore:"surcharge,omitempty"`
	DriverSurcharge *float64 `json:"driverSurcharge,omitempty" yaml:"driverSurcharge,omitempty" firestore:"driverSurcharge,omitempty"`
}

// Overrides mirrors the pricing settings document.
type Overrides struct {
	FixedZoneKm *float64                 `json:"fixedZoneKm,omitempty" yaml:"fixedZoneKm,omitempty" firestore:"fixedZoneKm,omitempty"`
	Cargo       map[string]PriceOverride `json:"cargo,omitempty" yaml:"cargo,omitempty" firestore:"cargo,omitempty"`
	Evacuator   map[string]PriceOverride `json:"evacuator,omitempty" yaml:"evacuator,omitempty" firestore:"evacuator,omitempty"`
	Crane       map[string]CraneOverride `json:"crane,omitempty" yaml:"crane,omitempty" firestore:"crane,omitempty"`
	CraneFloors map[string]FloorOverride `json:"craneFloors,omitempty" yaml:"craneFloors,omitempty" firestore:"craneFloors,omitempty"`
}

// Validate rejects negative numbers, fractional base prices and keys that do not exist
// in the default tables.
func (o Overrides) Validate() error {
	if err := checkNumber("fixedZoneKm", o.FixedZoneKm, false); err != nil {
		return err
	}
	for key, p := range o.Cargo {
		if _, ok := defaultCargo[SubType(key)]; !ok {
			return fmt.Errorf("%w: unknown cargo key %q", ErrInvalidSettings, key)
		}
		if err := p.validate("cargo." + key); err != nil {
			return err
		}
	}
	for key, p := range o.Evacuator {
		if _, ok := defaultEvacuator[SubType(key)]; !ok {
			return fmt.Errorf("%w: unknown evacuator key %q", ErrInvalidSettings, key)
		}
		if err := p.validate("evacuator." + key); err != nil {
			return err
		}
	}
	for key, p := range o.Crane {
		if _, ok := defaultCrane[CraneDuration(key)]; !ok {
			return fmt.Errorf("%w: unknown crane key %q", ErrInvalidSettings, key)
		}
		if err := checkNumber("crane."+key+".customerPrice", p.CustomerPrice, true); err != nil {
			return err
		}
		if err := checkNumber("crane."+key+".driverPrice", p.DriverPrice, true); err != nil {
			return err
		}
	}
	for key, f := range o.CraneFloors {
		if _, ok := defaultCraneFloors[FloorRange(key)]; !ok {
			return fmt.Errorf("%w: unknown floor range %q", ErrInvalidSettings, key)
		}
		if err := checkNumber("craneFloors."+key+".surcharge", f.Surcharge, true); err != nil {
			return err
		}
		if err := checkNumber("craneFloors."+key+".driverSurcharge", f.DriverSurcharge, true); err != nil {
			return err
		}
	}
	return nil
}

func (p PriceOverride) validate(path string) error {
	if err := checkNumber(path+".customerPrice", p.CustomerPrice, true); err != nil {
		return err
	}
	if err := checkNumber(path+".driverPrice", p.DriverPrice, true); err != nil {
		return err
	}
	if err := checkNumber(path+".perKm", p.PerKm, false); err != nil {
		return err
	}
	return checkNumber(path+".perKmProfit", p.PerKmProfit, false)
}

func checkNumber(path string, v *float64, whole bool) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidSettings, path)
	}
	if whole && *v != math.Trunc(*v) {
		return fmt.Errorf("%w: %s must be whole lari", ErrInvalidSettings, path)
	}
	return nil
}

// Merge applies stored overrides field by field on top of base. Unknown keys and
// invalid values in a stored document are logged and skipped.
func Merge(base Settings, o Overrides) Settings {
	out := Settings{
		FixedZoneKm: pick("fixedZoneKm", o.FixedZoneKm, base.FixedZoneKm, false),
		Cargo:       mergeTable("cargo", copyTable(base.Cargo), o.Cargo),
		Evacuator:   mergeTable("evacuator", copyTable(base.Evacuator), o.Evacuator),
		Crane:       copyTable(base.Crane),
		CraneFloors: copyTable(base.CraneFloors),
	}
	for key, c := range o.Crane {
		d := CraneDuration(key)
		cur, ok := out.Crane[d]
		if !ok {
			log.Printf("[pricing] ignoring unknown crane key %q", key)
			continue
		}
		cur.CustomerPrice = pick("crane."+key+".customerPrice", c.CustomerPrice, cur.CustomerPrice, true)
		cur.DriverPrice = pick("crane."+key+".driverPrice", c.DriverPrice, cur.DriverPrice, true)
		out.Crane[d] = cur
	}
	for key, f := range o.CraneFloors {
		r := FloorRange(key)
		cur, ok := out.CraneFloors[r]
		if !ok {
			log.Printf("[pricing] ignoring unknown floor range %q", key)
			continue
		}
		cur.Surcharge = pick("craneFloors."+key+".surcharge", f.Surcharge, cur.Surcharge, true)
		cur.DriverSurcharge = pick("craneFloors."+key+".driverSurcharge", f.DriverSurcharge, cur.DriverSurcharge, true)
		out.CraneFloors[r] = cur
	}
	return out
}

func mergeTable(family string, table map[SubType]PriceInfo, overrides map[string]PriceOverride) map[SubType]PriceInfo {
	for key, p := range overrides {
		sub := SubType(key)
		cur, ok := table[sub]
		if !ok {
			log.Printf("[pricing] ignoring unknown %s key %q", family, key)
			continue
		}
		path := family + "." + key
		cur.CustomerPrice = pick(path+".customerPrice", p.CustomerPrice, cur.CustomerPrice, true)
		cur.DriverPrice = pick(path+".driverPrice", p.DriverPrice, cur.DriverPrice, true)
		cur.PerKm = pick(path+".perKm", p.PerKm, cur.PerKm, false)
		cur.PerKmProfit = pick(path+".perKmProfit", p.PerKmProfit, cur.PerKmProfit, false)
		table[sub] = cur
	}
	return table
}

// pick applies the same rules as Validate to a stored value; whole marks base prices.
func pick(path string, v *float64, def float64, whole bool) float64 {
	if v == nil {
		return def
	}
	if err := checkNumber(path, v, whole); err != nil {
		log.Printf("[pricing] stored value %s=%v is invalid, using default %v", path, *v, def)
		return def
	}
	return *v
}
