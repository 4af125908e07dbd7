// README: Order service tests (booking, assignment flow, invalid requests).
package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/location"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
	"tvirti/internal/types"
)

// TestCanTransition verifies the state machine transition table.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusAssigned, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusAssigned, StatusPending, true}, // unassign
		// invalid: terminal states have no outgoing transitions
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		// invalid: skipping states
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusPending, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if !StatusCompleted.Terminal() || StatusAssigned.Terminal() {
		t.Errorf("Terminal() disagrees with AllowedTransitions")
	}
}

type memoryStore struct {
	mu     sync.Mutex
	orders map[types.ID]Order
	// beforeUpdate runs inside Update before the version check.
	beforeUpdate func(stored *Order)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: map[types.ID]Order{}}
}

func (m *memoryStore) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
	return nil
}

func (m *memoryStore) Get(_ context.Context, id types.ID) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *memoryStore) List(_ context.Context, f Filter) ([]*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Order
	for _, o := range m.orders {
		if f.Status != StatusNone && o.Status != f.Status {
			continue
		}
		cp := o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if n := listLimit(f.Limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memoryStore) Update(_ context.Context, o *Order, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.orders[o.ID]
	if !ok {
		return ErrNotFound
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate(&cur)
		m.orders[o.ID] = cur
	}
	if cur.StatusVersion != expectedVersion {
		return ErrConflict
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

type memoryJournal struct {
	mu     sync.Mutex
	events []Event
}

func (j *memoryJournal) AppendEvent(_ context.Context, e *Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	e.ID = int64(len(j.events) + 1)
	j.events = append(j.events, *e)
	return nil
}

func (j *memoryJournal) Events(_ context.Context, id types.ID) ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Event
	for _, e := range j.events {
		if e.OrderID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubDrivers map[types.ID]*driver.Driver

func (d stubDrivers) Get(_ context.Context, id types.ID) (*driver.Driver, error) {
	drv, ok := d[id]
	if !ok {
		return nil, driver.ErrNotFound
	}
	return drv, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	created  []types.ID
	assigned []types.ID
	err      error
}

func (n *recordingNotifier) OrderCreated(_ context.Context, o *Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, o.ID)
	return n.err
}

func (n *recordingNotifier) DriverAssigned(_ context.Context, d *driver.Driver, _ *Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned = append(n.assigned, d.ID)
	return n.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return errors.New("broker down")
}

var (
	testNow      = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	freedomSq    = types.Location{Address: "Freedom Square, Tbilisi", Point: types.Point{Lat: 41.6934, Lng: 44.8015}}
	rustaviPlace = types.Location{Address: "Rustavi", Point: types.Point{Lat: 41.5495, Lng: 44.9930}}
	customer     = Customer{Name: "Tamar", Phone: "+995555123456"}

	spiderDriver = &driver.Driver{ID: "d-spider", Name: "Nika", Service: pricing.ServiceEvacuator, SubTypes: []pricing.SubType{pricing.EvacuatorSpider}, DeviceToken: "tok", Active: true}
	cargoDriver  = &driver.Driver{ID: "d-cargo", Name: "Dato", Service: pricing.ServiceCargo, Active: true}
	idleDriver   = &driver.Driver{ID: "d-idle", Name: "Gela", Service: pricing.ServiceEvacuator, Active: false}
)

type fixture struct {
	svc      *Service
	store    *memoryStore
	journal  *memoryJournal
	notifier *recordingNotifier
	stream   *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemoryStore(),
		journal:  &memoryJournal{},
		notifier: &recordingNotifier{},
		stream:   &recordingPublisher{},
	}
	f.svc = NewService(Deps{
		Store:     f.store,
		Pricing:   pricing.NewService(nil, nil),
		Locations: location.NewService(nil, nil),
		Drivers:   stubDrivers{spiderDriver.ID: spiderDriver, cargoDriver.ID: cargoDriver, idleDriver.ID: idleDriver},
		Journal:   f.journal,
		Notifier:  f.notifier,
		Push:      f.notifier,
		Stream:    f.stream,
	})
	f.svc.now = func() time.Time { return testNow }
	return f
}

func km(v float64) *float64 { return &v }

func bptr(v bool) *bool { return &v }

func cargoCommand(distance float64) CreateCommand {
	dropoff := rustaviPlace
	return CreateCommand{
		Service:    pricing.ServiceCargo,
		SubType:    pricing.CargoM,
		Pickup:     freedomSq,
		Dropoff:    &dropoff,
		DistanceKm: km(distance),
		Customer:   customer,
	}
}

func evacuatorCommand() CreateCommand {
	dropoff := rustaviPlace
	return CreateCommand{
		Service:    pricing.ServiceEvacuator,
		Category:   vehicle.CategorySedan,
		Answers:    vehicle.Answers{WheelLocked: bptr(true), SteeringLocked: bptr(false), GoesNeutral: bptr(true)},
		Pickup:     freedomSq,
		Dropoff:    &dropoff,
		DistanceKm: km(20),
		Customer:   customer,
	}
}

func mustCreate(t *testing.T, f *fixture, cmd CreateCommand) *Order {
	t.Helper()
	o, err := f.svc.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func assertStatus(t *testing.T, f *fixture, id types.ID, want Status) {
	t.Helper()
	o, err := f.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Status != want {
		t.Fatalf("status = %s, want %s", o.Status, want)
	}
}

func TestCreate_Prices(t *testing.T) {
	tests := []struct {
		name        string
		cmd         func() CreateCommand
		wantSub     pricing.SubType
		wantPrice   int64
		wantDriver  int64
		wantProfit  int64
		wantDropoff bool
	}{
		{
			name:        "cargo M over the fixed zone",
			cmd:         func() CreateCommand { return cargoCommand(45) },
			wantSub:     pricing.CargoM,
			wantPrice:   63,
			wantDriver:  53,
			wantProfit:  10,
			wantDropoff: true,
		},
		{
			name:        "evacuator classified from the questionnaire",
			cmd:         evacuatorCommand,
			wantSub:     pricing.EvacuatorSpider,
			wantPrice:   120,
			wantDriver:  95,
			wantProfit:  25,
			wantDropoff: true,
		},
		{
			name: "evacuator with an explicit type",
			cmd: func() CreateCommand {
				c := evacuatorCommand()
				c.Category = ""
				c.SubType = pricing.EvacuatorLowboy
				c.DistanceKm = km(55)
				return c
			},
			wantSub: pricing.EvacuatorLowboy,
			// extra 20km: customer 80, profit 16, driver 64
			wantPrice:   380,
			wantDriver:  304,
			wantProfit:  76,
			wantDropoff: true,
		},
		{
			name: "crane hourly on floors 6-10",
			cmd: func() CreateCommand {
				return CreateCommand{
					Service:       pricing.ServiceCrane,
					CraneDuration: pricing.CraneHourly,
					FloorRange:    pricing.Floors6To10,
					Pickup:        types.Location{Address: "Chavchavadze Ave 37"},
					Customer:      customer,
				}
			},
			wantPrice:  120,
			wantDriver: 90,
			wantProfit: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			o := mustCreate(t, f, tt.cmd())

			if o.Status != StatusPending || o.StatusVersion != 0 {
				t.Errorf("new order status = %s v%d", o.Status, o.StatusVersion)
			}
			if o.SubType != tt.wantSub {
				t.Errorf("SubType = %s, want %s", o.SubType, tt.wantSub)
			}
			if o.CustomerPrice != tt.wantPrice || o.DriverPrice != tt.wantDriver || o.Profit != tt.wantProfit {
				t.Errorf("prices = %d/%d/%d, want %d/%d/%d", o.CustomerPrice, o.DriverPrice, o.Profit, tt.wantPrice, tt.wantDriver, tt.wantProfit)
			}
			if (o.Dropoff != nil) != tt.wantDropoff {
				t.Errorf("dropoff = %+v", o.Dropoff)
			}
			if _, err := f.store.Get(context.Background(), o.ID); err != nil {
				t.Errorf("order not stored: %v", err)
			}
			if len(f.journal.events) != 1 || f.journal.events[0].ToStatus != StatusPending || f.journal.events[0].ActorType != ActorCustomer {
				t.Errorf("journal = %+v", f.journal.events)
			}
			if len(f.notifier.created) != 1 || f.notifier.created[0] != o.ID {
				t.Errorf("notifier calls = %v", f.notifier.created)
			}
		})
	}
}

func TestCreate_StoresQuestionnaire(t *testing.T) {
	f := newFixture()
	o := mustCreate(t, f, evacuatorCommand())
	if o.Category != vehicle.CategorySedan || o.Answers == nil || o.Answers.WheelLocked == nil || !*o.Answers.WheelLocked {
		t.Errorf("questionnaire not kept: %+v %+v", o.Category, o.Answers)
	}
	if o.DistanceSource != location.SourceClient || o.DistanceKm != 20 {
		t.Errorf("distance = %v (%s)", o.DistanceKm, o.DistanceSource)
	}
}

func TestCreate_StraightLineDistance(t *testing.T) {
	f := newFixture()
	cmd := cargoCommand(0)
	cmd.DistanceKm = nil
	o := mustCreate(t, f, cmd)
	if o.DistanceSource != location.SourceStraightLine || o.DistanceKm < 15 || o.DistanceKm > 30 {
		t.Errorf("distance = %v (%s)", o.DistanceKm, o.DistanceSource)
	}
}

func TestCreate_SideEffectFailuresAreSwallowed(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("telegram down")
	o, err := f.svc.Create(context.Background(), cargoCommand(10))
	if err != nil {
		t.Fatalf("create failed because of a notifier error: %v", err)
	}
	if len(f.stream.events) != 1 || f.stream.events[0].OrderID != o.ID {
		t.Errorf("event not published: %+v", f.stream.events)
	}
}

func TestCreate_InvalidRequests(t *testing.T) {
	past := testNow.Add(-time.Hour)
	tests := []struct {
		name    string
		mutate  func(c *CreateCommand)
		wantErr error
	}{
		{"missing customer phone", func(c *CreateCommand) { c.Customer.Phone = " " }, ErrBadRequest},
		{"unknown service", func(c *CreateCommand) { c.Service = "BOAT" }, ErrBadRequest},
		{"cargo without size", func(c *CreateCommand) { c.SubType = "" }, ErrBadRequest},
		{"missing dropoff", func(c *CreateCommand) { c.Dropoff = nil }, ErrBadRequest},
		{"blank pickup", func(c *CreateCommand) { c.Pickup = types.Location{} }, ErrBadRequest},
		{"negative distance", func(c *CreateCommand) { c.DistanceKm = km(-4) }, ErrBadRequest},
		{"scheduled in the past", func(c *CreateCommand) { c.ScheduledAt = &past }, ErrBadRequest},
		{"unknown cargo size", func(c *CreateCommand) { c.SubType = "XXL" }, pricing.ErrUnknownSubType},
		{"evacuator without vehicle", func(c *CreateCommand) { c.Service = pricing.ServiceEvacuator; c.SubType = "" }, ErrBadRequest},
		{"evacuator unknown category", func(c *CreateCommand) {
			c.Service = pricing.ServiceEvacuator
			c.Category = "TRACTOR"
		}, ErrBadRequest},
		{"crane without duration", func(c *CreateCommand) { c.Service = pricing.ServiceCrane }, ErrBadRequest},
		{"crane unknown floor range", func(c *CreateCommand) {
			c.Service = pricing.ServiceCrane
			c.CraneDuration = pricing.CraneOneTime
			c.FloorRange = "ROOF"
		}, pricing.ErrUnknownFloorRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			cmd := cargoCommand(10)
			tt.mutate(&cmd)
			if _, err := f.svc.Create(context.Background(), cmd); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.store.orders) != 0 || len(f.notifier.created) != 0 {
				t.Errorf("rejected order left side effects")
			}
		})
	}
}

func TestOrderFlowHappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, evacuatorCommand())

	got, err := f.svc.Assign(ctx, AssignCommand{OrderID: o.ID, DriverID: spiderDriver.ID, ActorID: "admin-1"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got.DriverID == nil || *got.DriverID != spiderDriver.ID {
		t.Fatalf("driver not set: %+v", got.DriverID)
	}
	assertStatus(t, f, o.ID, StatusAssigned)
	if len(f.notifier.assigned) != 1 {
		t.Errorf("driver push calls = %d, want 1", len(f.notifier.assigned))
	}

	for _, to := range []Status{StatusInProgress, StatusCompleted} {
		if _, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: to, ActorID: "admin-1"}); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
		assertStatus(t, f, o.ID, to)
	}

	if _, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusCancelled}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel completed order: %v, want ErrInvalidState", err)
	}
	if _, err := f.svc.Update(ctx, UpdateCommand{OrderID: o.ID, Comment: strPtr("late")}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("edit completed order: %v, want ErrInvalidState", err)
	}

	events, err := f.svc.Events(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []Status{StatusPending, StatusAssigned, StatusInProgress, StatusCompleted}
	if len(events) != len(want) {
		t.Fatalf("journal has %d events, want %d", len(events), len(want))
	}
	for i, s := range want {
		if events[i].ToStatus != s {
			t.Errorf("event %d to = %s, want %s", i, events[i].ToStatus, s)
		}
	}
	if events[1].ActorID == nil || *events[1].ActorID != "admin-1" {
		t.Errorf("assign event actor = %v", events[1].ActorID)
	}
	final, _ := f.svc.Get(ctx, o.ID)
	if final.StatusVersion != 3 {
		t.Errorf("StatusVersion = %d, want 3", final.StatusVersion)
	}
}

func strPtr(s string) *string { return &s }

func TestAssign_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		driverID types.ID
		wantErr  error
	}{
		{"inactive driver", idleDriver.ID, ErrDriverUnavailable},
		{"wrong service family", cargoDriver.ID, ErrDriverUnavailable},
		{"unknown driver", "d-missing", driver.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			o := mustCreate(t, f, evacuatorCommand())
			if _, err := f.svc.Assign(context.Background(), AssignCommand{OrderID: o.ID, DriverID: tt.driverID}); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Assign() error = %v, want %v", err, tt.wantErr)
			}
			assertStatus(t, f, o.ID, StatusPending)
		})
	}

	f := newFixture()
	if _, err := f.svc.Assign(context.Background(), AssignCommand{OrderID: types.NewID(), DriverID: spiderDriver.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("assign unknown order: %v, want ErrNotFound", err)
	}
}

func TestUnassign(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, evacuatorCommand())

	if _, err := f.svc.Unassign(ctx, UnassignCommand{OrderID: o.ID}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("unassign pending order: %v, want ErrInvalidState", err)
	}
	if _, err := f.svc.Assign(ctx, AssignCommand{OrderID: o.ID, DriverID: spiderDriver.ID}); err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.Unassign(ctx, UnassignCommand{OrderID: o.ID, Reason: "driver sick"})
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got.Status != StatusPending || got.DriverID != nil {
		t.Errorf("after unassign: %s driver=%v", got.Status, got.DriverID)
	}
	last := f.journal.events[len(f.journal.events)-1]
	if last.FromStatus != StatusAssigned || last.Reason != "driver sick" || last.ActorID != nil {
		t.Errorf("unassign event = %+v", last)
	}
}

func TestTransition_Rules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, cargoCommand(10))

	if _, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusAssigned}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("transition to assigned: %v, want ErrBadRequest", err)
	}
	if _, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusInProgress}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("start unassigned order: %v, want ErrInvalidState", err)
	}
	got, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusCancelled, Reason: "customer_cancel"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.CancelReason != "customer_cancel" {
		t.Errorf("CancelReason = %q", got.CancelReason)
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, cargoCommand(10))

	when := testNow.Add(48 * time.Hour)
	got, err := f.svc.Update(ctx, UpdateCommand{
		OrderID:       o.ID,
		ScheduledAt:   &when,
		Comment:       strPtr("  third floor, no lift "),
		CustomerPrice: int64Ptr(70),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CustomerPrice != 70 || got.DriverPrice != 40 || got.Profit != 30 {
		t.Errorf("prices = %d/%d/%d, want 70/40/30", got.CustomerPrice, got.DriverPrice, got.Profit)
	}
	if got.Comment != "third floor, no lift" || got.ScheduledAt == nil || !got.ScheduledAt.Equal(when) {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Status != StatusPending {
		t.Errorf("update changed status to %s", got.Status)
	}

	if _, err := f.svc.Update(ctx, UpdateCommand{OrderID: o.ID, DriverPrice: int64Ptr(-1)}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("negative driver price: %v, want ErrBadRequest", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestConcurrentWriteConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, evacuatorCommand())

	// Another writer bumps the version between our read and our write.
	f.store.beforeUpdate = func(stored *Order) {
		stored.StatusVersion++
		stored.Status = StatusCancelled
		f.store.beforeUpdate = nil
	}
	if _, err := f.svc.Assign(ctx, AssignCommand{OrderID: o.ID, DriverID: spiderDriver.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("Assign() error = %v, want ErrConflict", err)
	}
	assertStatus(t, f, o.ID, StatusCancelled)
	if len(f.notifier.assigned) != 0 {
		t.Errorf("driver notified about a lost assignment")
	}
}

func TestConcurrentAssignVsCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := mustCreate(t, f, evacuatorCommand())

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.svc.Assign(ctx, AssignCommand{OrderID: o.ID, DriverID: spiderDriver.ID})
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := f.svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusCancelled, Reason: "user_cancel"})
		errs <- err
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil && !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidState) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	final, err := f.svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != StatusAssigned && final.Status != StatusCancelled {
		t.Errorf("final status = %s", final.Status)
	}
}

func TestListAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := mustCreate(t, f, cargoCommand(10))
	f.svc.now = func() time.Time { return testNow.Add(time.Minute) }
	b := mustCreate(t, f, cargoCommand(20))
	if _, err := f.svc.Transition(ctx, TransitionCommand{OrderID: a.ID, To: StatusCancelled}); err != nil {
		t.Fatal(err)
	}

	all, err := f.svc.List(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != b.ID {
		t.Errorf("List() should return newest first, got %d orders", len(all))
	}
	pending, _ := f.svc.List(ctx, Filter{Status: StatusPending})
	if len(pending) != 1 || pending[0].ID != b.ID {
		t.Errorf("List(pending) = %d orders", len(pending))
	}

	if err := f.svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v, want ErrNotFound", err)
	}
	if _, err := f.svc.Events(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("events of deleted order: %v, want ErrNotFound", err)
	}
}

func TestEvents_WithoutJournal(t *testing.T) {
	f := newFixture()
	f.svc.Journal = nil
	o := mustCreate(t, f, cargoCommand(10))
	events, err := f.svc.Events(context.Background(), o.ID)
	if err != nil || events == nil || len(events) != 0 {
		t.Fatalf("Events() = %v, %v; want empty list", events, err)
	}
}

func TestListLimit(t *testing.T) {
	cases := map[int]int{0: defaultListLimit, -3: defaultListLimit, 20: 20, 10000: maxListLimit}
	for in, want := range cases {
		if got := listLimit(in); got != want {
			t.Errorf("listLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestQuote_DoesNotPersist(t *testing.T) {
	f := newFixture()
	cmd := evacuatorCommand()
	cmd.Customer = Customer{}
	o, b, err := f.svc.Quote(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if o.SubType != pricing.EvacuatorSpider || b.CustomerPrice != 120 || b.IsOverBase {
		t.Errorf("Quote() = %s %+v", o.SubType, b)
	}
	if len(f.store.orders) != 0 || len(f.journal.events) != 0 || len(f.notifier.created) != 0 {
		t.Errorf("quote left side effects")
	}
}
