// README: Identifier and geo point value objects shared by modules.
package types

import "github.com/google/uuid"

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

// Valid reports whether v looks like an ID produced by NewID.
func (id ID) Valid() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

type Point struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Location is a point the customer picked on the map plus its geocoded address.
type Location struct {
	Address string `json:"address" firestore:"address"`
	Point   Point  `json:"point" firestore:"point"`
}
