// README: Pricing service resolves the settings snapshot and produces quotes.
package pricing

import (
	"context"
	"errors"
	"log"
)

type SettingsStore interface {
	Load(ctx context.Context) (Overrides, error)
	Save(ctx context.Context, o Overrides) error
}

// SnapshotCache holds the merged settings. Readers only Fill an empty slot; Set is reserved
// for writers that have just saved the document, so a reader that loaded before a save
// cannot overwrite the newer snapshot.
type SnapshotCache interface {
	Get(ctx context.Context) (Settings, bool, error)
	Fill(ctx context.Context, s Settings) error
	Set(ctx context.Context, s Settings) error
	Invalidate(ctx context.Context) error
}

var ErrSettingsReadOnly = errors.New("pricing settings store not configured")

type Service struct {
	store SettingsStore
	cache SnapshotCache
}

// NewService accepts a nil store (defaults only) and a nil cache (no caching).
func NewService(store SettingsStore, cache SnapshotCache) *Service {
	return &Service{store: store, cache: cache}
}

// Snapshot returns the effective settings. It never fails: when the store is unavailable
// the built-in defaults are used and nothing is cached.
func (s *Service) Snapshot(ctx context.Context) Settings {
	if s.cache != nil {
		snap, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("[pricing] snapshot cache get: %v", err)
		} else if ok {
			return snap
		}
	}

	settings, err := s.load(ctx)
	if err != nil {
		log.Printf("[pricing] %v; using default prices", err)
		return settings
	}

	if s.cache != nil {
		if err := s.cache.Fill(ctx, settings); err != nil {
			log.Printf("[pricing] snapshot cache fill: %v", err)
		}
	}
	return settings
}

// load merges the stored document over the defaults, bypassing the cache. On error the
// defaults are returned alongside it.
func (s *Service) load(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	if s.store == nil {
		return settings, nil
	}
	o, err := s.store.Load(ctx)
	if err != nil {
		return settings, err
	}
	return Merge(settings, o), nil
}

// StoredOverrides returns the raw settings document, for the admin editor.
func (s *Service) StoredOverrides(ctx context.Context) (Overrides, error) {
	if s.store == nil {
		return Overrides{}, nil
	}
	return s.store.Load(ctx)
}

// UpdateSettings replaces the given keys of the settings document and returns the new
// effective snapshot.
func (s *Service) UpdateSettings(ctx context.Context, o Overrides) (Settings, error) {
	if err := o.Validate(); err != nil {
		return Settings{}, err
	}
	if s.store == nil {
		return Settings{}, ErrSettingsReadOnly
	}
	if err := s.store.Save(ctx, o); err != nil {
		return Settings{}, err
	}
	log.Printf("[pricing] settings updated")

	settings, err := s.load(ctx)
	if err != nil {
		log.Printf("[pricing] reload after update: %v", err)
		if s.cache != nil {
			if err := s.cache.Invalidate(ctx); err != nil {
				log.Printf("[pricing] snapshot cache invalidate: %v", err)
			}
		}
		return s.Snapshot(ctx), nil
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			log.Printf("[pricing] snapshot cache set: %v", err)
		}
	}
	return settings, nil
}

// Quote prices req against the current snapshot.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (Breakdown, error) {
	return Price(s.Snapshot(ctx), req)
}

// Price dispatches req to the crane or the distance-tiered calculator.
func Price(settings Settings, req QuoteRequest) (Breakdown, error) {
	switch req.Service {
	case ServiceCrane:
		return CraneQuote(settings, req.CraneDuration, req.FloorRange)
	case ServiceCargo, ServiceEvacuator:
		return CalculateDetailed(settings, req.Service, req.SubType, req.DistanceKm)
	default:
		return Breakdown{}, ErrUnknownService
	}
}
