// README: Driver service: admin CRUD and candidate lookup for order assignment.
package driver

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"tvirti/internal/modules/location"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/types"
)

type Service struct {
	store Repository
	now   func() time.Time
}

func NewService(store Repository) *Service {
	return &Service{store: store, now: time.Now}
}

type CreateCommand struct {
	Name        string
	Phone       string
	Service     pricing.ServiceType
	SubTypes    []pricing.SubType
	Base        *types.Point
	DeviceToken string
	// Active defaults to true.
	Active *bool
}

// UpdateCommand changes only the non-nil fields.
type UpdateCommand struct {
	ID          types.ID
	Name        *string
	Phone       *string
	Service     *pricing.ServiceType
	SubTypes    *[]pricing.SubType
	Base        *types.Point
	DeviceToken *string
	Active      *bool
}

type Candidate struct {
	Driver *Driver `json:"driver"`
	// DistanceKm is nil for drivers without a home base.
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Driver, error) {
	name := strings.TrimSpace(cmd.Name)
	phone := strings.TrimSpace(cmd.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrBadRequest)
	}
	if err := validateVehicles(cmd.Service, cmd.SubTypes); err != nil {
		return nil, err
	}
	active := true
	if cmd.Active != nil {
		active = *cmd.Active
	}
	now := s.now()
	d := &Driver{
		ID:          types.NewID(),
		Name:        name,
		Phone:       phone,
		Service:     cmd.Service,
		SubTypes:    cmd.SubTypes,
		Base:        cmd.Base,
		DeviceToken: cmd.DeviceToken,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	log.Printf("[driver] created %s (%s)", d.ID, d.Service)
	return d, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Driver, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Driver, error) {
	d, err := s.store.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		if d.Name = strings.TrimSpace(*cmd.Name); d.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrBadRequest)
		}
	}
	if cmd.Phone != nil {
		if d.Phone = strings.TrimSpace(*cmd.Phone); d.Phone == "" {
			return nil, fmt.Errorf("%w: phone must not be empty", ErrBadRequest)
		}
	}
	if cmd.Service != nil {
		d.Service = *cmd.Service
	}
	if cmd.SubTypes != nil {
		d.SubTypes = *cmd.SubTypes
	}
	if err := validateVehicles(d.Service, d.SubTypes); err != nil {
		return nil, err
	}
	if cmd.Base != nil {
		d.Base = cmd.Base
	}
	if cmd.DeviceToken != nil {
		d.DeviceToken = *cmd.DeviceToken
	}
	if cmd.Active != nil {
		d.Active = *cmd.Active
	}
	d.UpdatedAt = s.now()
	if err := s.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[driver] deleted %s", id)
	return nil
}

// Candidates lists active drivers able to serve the given order, closest home base first.
// Drivers without a base come last.
func (s *Service) Candidates(ctx context.Context, service pricing.ServiceType, sub pricing.SubType, near types.Point) ([]Candidate, error) {
	drivers, err := s.store.List(ctx, Filter{Service: service, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(drivers))
	for _, d := range drivers {
		if !d.CanServe(service, sub) {
			continue
		}
		c := Candidate{Driver: d}
		if d.Base != nil && !near.IsZero() {
			km := location.HaversineKm(*d.Base, near)
			c.DistanceKm = &km
		}
		out = append(out, c)
	}
	location.SortByDistance(out, func(c Candidate) float64 {
		if c.DistanceKm == nil {
			return math.Inf(1)
		}
		return *c.DistanceKm
	})
	return out, nil
}

func validateVehicles(service pricing.ServiceType, subs []pricing.SubType) error {
	switch service {
	case pricing.ServiceCargo, pricing.ServiceEvacuator, pricing.ServiceCrane:
	default:
		return fmt.Errorf("%w: %v %q", ErrBadRequest, pricing.ErrUnknownService, service)
	}
	if service == pricing.ServiceCrane && len(subs) > 0 {
		return fmt.Errorf("%w: crane drivers have no vehicle sub-types", ErrBadRequest)
	}
	for _, sub := range subs {
		if service != pricing.ServiceCrane && !pricing.KnownSubType(service, sub) {
			return fmt.Errorf("%w: %s is not a %s vehicle", ErrBadRequest, sub, service)
		}
	}
	return nil
}
