package models

import "fmt"

type Location struct {
	Lat float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
}

// CourierPositionUpdate is one tick of the delivery simulation: where the
// simulated courier is now relative to the drop-off point for an order.
type CourierPositionUpdate struct {
	OrderID     string
	Courier     Location
	Destination Location
	Arrived     bool
}

func (l Location) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", l.Lat, l.Lng)
}
