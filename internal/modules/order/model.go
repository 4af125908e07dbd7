// README: Order aggregate and status definitions.
package order

import (
	"time"

	"tvirti/internal/modules/location"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/modules/vehicle"
	"tvirti/internal/types"
)

type Status string

const (
	StatusNone       Status = ""
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(v string) (Status, bool) {
	s := Status(v)
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return s, true
	}
	return StatusNone, false
}

type Customer struct {
	Name  string `json:"name" firestore:"name"`
	Phone string `json:"phone" firestore:"phone"`
}

type Order struct {
	ID            types.ID              `json:"id" firestore:"-"`
	Service       pricing.ServiceType   `json:"service" firestore:"service"`
	SubType       pricing.SubType       `json:"subType,omitempty" firestore:"subType,omitempty"`
	Category      vehicle.Category      `json:"vehicleCategory,omitempty" firestore:"vehicleCategory,omitempty"`
	Answers       *vehicle.Answers      `json:"answers,omitempty" firestore:"answers,omitempty"`
	CraneDuration pricing.CraneDuration `json:"craneDuration,omitempty" firestore:"craneDuration,omitempty"`
	FloorRange    pricing.FloorRange    `json:"floorRange,omitempty" firestore:"floorRange,omitempty"`

	Pickup         types.Location  `json:"pickup" firestore:"pickup"`
	Dropoff        *types.Location `json:"dropoff,omitempty" firestore:"dropoff,omitempty"`
	DistanceKm     float64         `json:"distanceKm" firestore:"distanceKm"`
	DistanceSource location.Source `json:"distanceSource,omitempty" firestore:"distanceSource,omitempty"`
	ScheduledAt    *time.Time      `json:"scheduledAt,omitempty" firestore:"scheduledAt,omitempty"`

	Customer Customer `json:"customer" firestore:"customer"`
	Comment  string   `json:"comment,omitempty" firestore:"comment,omitempty"`

	CustomerPrice int64 `json:"customerPrice" firestore:"customerPrice"`
	DriverPrice   int64 `json:"driverPrice" firestore:"driverPrice"`
	Profit        int64 `json:"profit" firestore:"profit"`

	Status        Status    `json:"status" firestore:"status"`
	StatusVersion int       `json:"statusVersion" firestore:"statusVersion"`
	DriverID      *types.ID `json:"driverId,omitempty" firestore:"driverId,omitempty"`
	CancelReason  string    `json:"cancelReason,omitempty" firestore:"cancelReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Price returns the order price in lari.
func (o *Order) Price() types.Money {
	return types.GEL(o.CustomerPrice)
}

type Event struct {
	ID         int64     `json:"id"`
	OrderID    types.ID  `json:"orderId"`
	FromStatus Status    `json:"fromStatus"`
	ToStatus   Status    `json:"toStatus"`
	ActorType  string    `json:"actorType"`
	ActorID    *string   `json:"actorId,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

type Filter struct {
	Status Status
	Limit  int
}

// AllowedTransitions represents the order state flow (diagram) as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusPending, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	_, ok := AllowedTransitions[s]
	return !ok
}
