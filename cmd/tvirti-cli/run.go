// README: Command implementations for quotes, classification and settings files.
package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
)

type quoteOptions struct {
	service      string
	subType      string
	distanceKm   float64
	duration     string
	floors       string
	settingsPath string
}

type answerFlags struct {
	wheelLocked    *bool
	steeringLocked *bool
	goesNeutral    *bool
}

func optional(set, v bool) *bool {
	if !set {
		return nil
	}
	return &v
}

// settings returns the defaults merged with the overrides file at path, if any.
func settings(path string) (pricing.Settings, error) {
	if path == "" {
		return pricing.DefaultSettings(), nil
	}
	o, err := pricing.LoadOverrides(path)
	if err != nil {
		return pricing.Settings{}, err
	}
	return pricing.Merge(pricing.DefaultSettings(), o), nil
}

func runQuote(w io.Writer, opts quoteOptions) error {
	service, err := pricing.ParseService(opts.service)
	if err != nil {
		return err
	}
	s, err := settings(opts.settingsPath)
	if err != nil {
		return err
	}
	b, err := pricing.Price(s, pricing.QuoteRequest{
		Service:       service,
		SubType:       pricing.SubType(strings.ToUpper(opts.subType)),
		DistanceKm:    opts.distanceKm,
		CraneDuration: pricing.CraneDuration(strings.ToUpper(opts.duration)),
		FloorRange:    pricing.FloorRange(strings.ToUpper(opts.floors)),
	})
	if err != nil {
		return err
	}
	return writeYAML(w, b)
}

func runClassify(w io.Writer, category string, a answerFlags) error {
	c, err := vehicle.ParseCategory(category)
	if err != nil {
		return err
	}
	t, err := vehicle.Classify(c, vehicle.Answers{
		WheelLocked:    a.wheelLocked,
		SteeringLocked: a.steeringLocked,
		GoesNeutral:    a.goesNeutral,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, t)
	return err
}

func runValidate(w io.Writer, path string) error {
	if _, err := pricing.LoadOverrides(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: ok\n", path)
	return err
}

func runShow(w io.Writer, path string) error {
	s, err := settings(path)
	if err != nil {
		return err
	}
	return writeYAML(w, s)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
