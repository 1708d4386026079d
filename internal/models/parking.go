package models

// Parking links a vehicle to the box it occupies. A box holds at most one
// vehicle and a vehicle sits in at most one box.
type Parking struct {
	BoxID     int    `json:"box_id"`
	BoxName   string `json:"box_name,omitempty"`
	VehicleID int    `json:"vehicle_id"`
	Plate     string `json:"plate,omitempty"`
	ParkedAt  string `json:"parked_at"`
}

func (p Parking) GetID() int { return p.BoxID }

// BoxSlot is one cell of the yard map. Plate is nil for a free box.
type BoxSlot struct {
	Box   Box     `json:"box"`
	Plate *string `json:"plate"`
}

// ParkingMap lays the boxes out row by row, Cols per row, in id order.
type ParkingMap struct {
	Rows  int       `json:"rows"`
	Cols  int       `json:"cols"`
	Boxes []BoxSlot `json:"boxes"`
}
