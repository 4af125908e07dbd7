// README: Order service implements booking, pricing, assignment and state transitions.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/location"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
	"tvirti/internal/types"
)

type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (pricing.Breakdown, error)
}

type Locator interface {
	Locate(ctx context.Context, loc types.Location) (types.Location, error)
	Resolve(ctx context.Context, from, to types.Point, reported *float64) (location.Distance, error)
}

type DriverDirectory interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
}

// Notifier tells the dispatch team about new orders.
type Notifier interface {
	OrderCreated(ctx context.Context, o *Order) error
}

type DriverNotifier interface {
	DriverAssigned(ctx context.Context, d *driver.Driver, o *Order) error
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Deps wires the service. Journal, Notifier, Push and Stream may be nil.
type Deps struct {
	Store     Repository
	Pricing   Quoter
	Locations Locator
	Drivers   DriverDirectory
	Journal   Journal
	Notifier  Notifier
	Push      DriverNotifier
	Stream    Publisher
}

type Service struct {
	Deps
	now func() time.Time
}

func NewService(d Deps) *Service {
	return &Service{Deps: d, now: time.Now}
}

var (
	ErrInvalidState      = errors.New("invalid state transition")
	ErrNotFound          = errors.New("order not found")
	ErrConflict          = errors.New("order state conflict")
	ErrBadRequest        = errors.New("bad request")
	ErrDriverUnavailable = errors.New("driver cannot serve this order")
)

type CreateCommand struct {
	Service pricing.ServiceType
	// SubType is the cargo size, or an explicit evacuator type when no category is given.
	SubType       pricing.SubType
	Category      vehicle.Category
	Answers       vehicle.Answers
	CraneDuration pricing.CraneDuration
	FloorRange    pricing.FloorRange
	Pickup        types.Location
	Dropoff       *types.Location
	// DistanceKm is the distance measured by the booking wizard, if any.
	DistanceKm  *float64
	ScheduledAt *time.Time
	Customer    Customer
	Comment     string
}

// UpdateCommand is an admin edit; nil fields are left unchanged.
type UpdateCommand struct {
	OrderID       types.ID
	ScheduledAt   *time.Time
	Comment       *string
	CustomerPrice *int64
	DriverPrice   *int64
}

type AssignCommand struct {
	OrderID  types.ID
	DriverID types.ID
	ActorID  string
}

type UnassignCommand struct {
	OrderID types.ID
	ActorID string
	Reason  string
}

// TransitionCommand moves an order to in_progress, completed or cancelled.
type TransitionCommand struct {
	OrderID types.ID
	To      Status
	ActorID string
	Reason  string
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// Quote prices an order request without saving it. Customer details are not required.
func (s *Service) Quote(ctx context.Context, cmd CreateCommand) (*Order, pricing.Breakdown, error) {
	return s.draft(ctx, cmd, s.now())
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	now := s.now()
	customer := Customer{Name: strings.TrimSpace(cmd.Customer.Name), Phone: strings.TrimSpace(cmd.Customer.Phone)}
	if customer.Name == "" || customer.Phone == "" {
		return nil, badRequest("customer name and phone are required")
	}
	if cmd.ScheduledAt != nil && cmd.ScheduledAt.Before(now) {
		return nil, badRequest("scheduled time is in the past")
	}

	o, _, err := s.draft(ctx, cmd, now)
	if err != nil {
		return nil, err
	}
	o.ID = types.NewID()
	o.Customer = customer
	o.Status = StatusPending

	if err := s.Store.Create(ctx, o); err != nil {
		return nil, err
	}
	log.Printf("[order] created %s %s/%s %.1fkm price=%s", o.ID, o.Service, o.SubType, o.DistanceKm, o.Price())

	s.record(ctx, o, StatusNone, ActorCustomer, nil, "")
	if s.Notifier != nil {
		if err := s.Notifier.OrderCreated(ctx, o); err != nil {
			log.Printf("[order] notify %s: %v", o.ID, err)
		}
	}
	return o, nil
}

// draft validates the service selection, resolves the vehicle type and distance, and
// prices the result.
func (s *Service) draft(ctx context.Context, cmd CreateCommand, now time.Time) (*Order, pricing.Breakdown, error) {
	o := &Order{
		Service:       cmd.Service,
		CraneDuration: cmd.CraneDuration,
		FloorRange:    cmd.FloorRange,
		ScheduledAt:   cmd.ScheduledAt,
		Comment:       strings.TrimSpace(cmd.Comment),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch cmd.Service {
	case pricing.ServiceCargo:
		if cmd.SubType == "" {
			return nil, pricing.Breakdown{}, badRequest("cargo size is required")
		}
		o.SubType = cmd.SubType
	case pricing.ServiceEvacuator:
		sub, err := evacuatorType(cmd)
		if err != nil {
			return nil, pricing.Breakdown{}, err
		}
		o.SubType = sub
		if cmd.Category != "" {
			answers := cmd.Answers
			o.Category = cmd.Category
			o.Answers = &answers
		}
	case pricing.ServiceCrane:
		if cmd.CraneDuration == "" {
			return nil, pricing.Breakdown{}, badRequest("crane duration is required")
		}
	default:
		return nil, pricing.Breakdown{}, fmt.Errorf("%w: %v", ErrBadRequest, pricing.ErrUnknownService)
	}

	if err := s.place(ctx, o, cmd); err != nil {
		return nil, pricing.Breakdown{}, err
	}

	b, err := s.Pricing.Quote(ctx, pricing.QuoteRequest{
		Service:       o.Service,
		SubType:       o.SubType,
		DistanceKm:    o.DistanceKm,
		CraneDuration: o.CraneDuration,
		FloorRange:    o.FloorRange,
	})
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}
	o.CustomerPrice, o.DriverPrice, o.Profit = b.CustomerPrice, b.DriverPrice, b.Profit
	return o, b, nil
}

func evacuatorType(cmd CreateCommand) (pricing.SubType, error) {
	if cmd.Category != "" {
		t, err := vehicle.Classify(cmd.Category, cmd.Answers)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return pricing.SubType(t), nil
	}
	if cmd.SubType == "" {
		return "", badRequest("vehicle category or evacuator type is required")
	}
	return cmd.SubType, nil
}

// place resolves pickup/dropoff coordinates and the trip distance. Crane orders only
// need a pickup address.
func (s *Service) place(ctx context.Context, o *Order, cmd CreateCommand) error {
	if cmd.Service == pricing.ServiceCrane {
		if blank(cmd.Pickup) {
			return badRequest("crane site address is required")
		}
		o.Pickup = cmd.Pickup
		return nil
	}
	if cmd.Dropoff == nil {
		return badRequest("dropoff is required")
	}

	pickup, dropoff := cmd.Pickup, *cmd.Dropoff
	if blank(pickup) || blank(dropoff) {
		return badRequest("pickup and dropoff must have an address or a map point")
	}
	if cmd.DistanceKm == nil {
		var err error
		if pickup, err = s.Locations.Locate(ctx, pickup); err != nil {
			return fmt.Errorf("%w: pickup: %v", ErrBadRequest, err)
		}
		if dropoff, err = s.Locations.Locate(ctx, dropoff); err != nil {
			return fmt.Errorf("%w: dropoff: %v", ErrBadRequest, err)
		}
	}
	d, err := s.Locations.Resolve(ctx, pickup.Point, dropoff.Point, cmd.DistanceKm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	o.Pickup, o.Dropoff = pickup, &dropoff
	o.DistanceKm, o.DistanceSource = d.Km, d.Source
	return nil
}

func blank(l types.Location) bool {
	return strings.TrimSpace(l.Address) == "" && l.Point.IsZero()
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Order, error) {
	return s.Store.List(ctx, f)
}

// Events returns the status journal of an order, oldest first.
func (s *Service) Events(ctx context.Context, id types.ID) ([]Event, error) {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.Journal == nil {
		return []Event{}, nil
	}
	return s.Journal.Events(ctx, id)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Order, error) {
	o, err := s.Store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, ErrInvalidState
	}
	if cmd.ScheduledAt != nil {
		o.ScheduledAt = cmd.ScheduledAt
	}
	if cmd.Comment != nil {
		o.Comment = strings.TrimSpace(*cmd.Comment)
	}
	if cmd.CustomerPrice != nil {
		o.CustomerPrice = *cmd.CustomerPrice
	}
	if cmd.DriverPrice != nil {
		o.DriverPrice = *cmd.DriverPrice
	}
	if o.CustomerPrice < 0 || o.DriverPrice < 0 {
		return nil, badRequest("prices must not be negative")
	}
	o.Profit = o.CustomerPrice - o.DriverPrice
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[order] deleted %s", id)
	return nil
}

func (s *Service) Assign(ctx context.Context, cmd AssignCommand) (*Order, error) {
	o, err := s.Store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusAssigned) {
		return nil, ErrInvalidState
	}
	d, err := s.Drivers.Get(ctx, cmd.DriverID)
	if err != nil {
		return nil, err
	}
	if !d.CanServe(o.Service, o.SubType) {
		return nil, ErrDriverUnavailable
	}

	from := o.Status
	o.Status = StatusAssigned
	o.DriverID = &d.ID
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, from, ActorAdmin, &cmd.ActorID, "")

	if s.Push != nil && d.DeviceToken != "" {
		if err := s.Push.DriverAssigned(ctx, d, o); err != nil {
			log.Printf("[order] push to driver %s: %v", d.ID, err)
		}
	}
	return o, nil
}

func (s *Service) Unassign(ctx context.Context, cmd UnassignCommand) (*Order, error) {
	o, err := s.Store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusPending) {
		return nil, ErrInvalidState
	}
	o.Status = StatusPending
	o.DriverID = nil
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, StatusAssigned, ActorAdmin, &cmd.ActorID, cmd.Reason)
	return o, nil
}

func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (*Order, error) {
	switch cmd.To {
	case StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return nil, badRequest("cannot move an order to %q directly", cmd.To)
	}
	o, err := s.Store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, cmd.To) {
		return nil, ErrInvalidState
	}
	from := o.Status
	o.Status = cmd.To
	if cmd.To == StatusCancelled {
		o.CancelReason = cmd.Reason
	}
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, from, ActorAdmin, &cmd.ActorID, cmd.Reason)
	return o, nil
}

// save writes o with a bumped status version; a concurrent writer yields ErrConflict.
func (s *Service) save(ctx context.Context, o *Order) error {
	expected := o.StatusVersion
	o.StatusVersion++
	o.UpdatedAt = s.now()
	return s.Store.Update(ctx, o, expected)
}

// record journals and publishes a status change. Failures are logged; the order
// write has already succeeded.
func (s *Service) record(ctx context.Context, o *Order, from Status, actorType string, actorID *string, reason string) {
	if actorID != nil && *actorID == "" {
		actorID = nil
	}
	e := Event{
		OrderID:    o.ID,
		FromStatus: from,
		ToStatus:   o.Status,
		ActorType:  actorType,
		ActorID:    actorID,
		Reason:     reason,
		CreatedAt:  o.UpdatedAt,
	}
	if s.Journal != nil {
		if err := s.Journal.AppendEvent(ctx, &e); err != nil {
			log.Printf("[order] journal %s %s->%s: %v", o.ID, from, o.Status, err)
		}
	}
	if s.Stream != nil {
		if err := s.Stream.Publish(ctx, e); err != nil {
			log.Printf("[order] publish %s %s->%s: %v", o.ID, from, o.Status, err)
		}
	}
}
