package models

// Tracking is a single position reading for a vehicle.
type Tracking struct {
	ID        int     `json:"id"`
	VehicleID int     `json:"vehicle_id"`
	IPSX      float64 `json:"ips_x"`
	IPSY      float64 `json:"ips_y"`
	IPSZ      float64 `json:"ips_z"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	CreatedAt string  `json:"created_at"`
}

func (t Tracking) GetID() int { return t.ID }
