// README: Driver record: contact, the service family and vehicles they operate, push token.
package driver

import (
	"errors"
	"time"

	"tvirti/internal/modules/pricing"
	"tvirti/internal/types"
)

type Driver struct {
	ID      types.ID            `json:"id" firestore:"-"`
	Name    string              `json:"name" firestore:"name"`
	Phone   string              `json:"phone" firestore:"phone"`
	Service pricing.ServiceType `json:"service" firestore:"service"`
	// SubTypes lists the vehicles the driver operates. Empty means every sub-type of Service.
	SubTypes    []pricing.SubType `json:"subTypes,omitempty" firestore:"subTypes,omitempty"`
	Base        *types.Point      `json:"base,omitempty" firestore:"base,omitempty"`
	DeviceToken string            `json:"deviceToken,omitempty" firestore:"deviceToken,omitempty"`
	Active      bool              `json:"active" firestore:"active"`
	CreatedAt   time.Time         `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" firestore:"updatedAt"`
}

// CanServe reports whether the driver can take an order of the given family and sub-type.
func (d *Driver) CanServe(service pricing.ServiceType, sub pricing.SubType) bool {
	if !d.Active || d.Service != service {
		return false
	}
	if len(d.SubTypes) == 0 || sub == "" {
		return true
	}
	for _, s := range d.SubTypes {
		if s == sub {
			return true
		}
	}
	return false
}

type Filter struct {
	Service    pricing.ServiceType
	ActiveOnly bool
}

func (f Filter) match(d *Driver) bool {
	if f.ActiveOnly && !d.Active {
		return false
	}
	return f.Service == "" || d.Service == f.Service
}

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)
