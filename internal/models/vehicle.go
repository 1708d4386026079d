package models

// Vehicle is a motorcycle or car managed by the yards.
type Vehicle struct {
	ID           int    `json:"id"`
	Plate        string `json:"plate"`
	Renavam      string `json:"renavam"`
	Chassis      string `json:"chassis"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Engine       string `json:"engine,omitempty"`
	Year         int    `json:"year"`
	Fuel         string `json:"fuel"`
}

func (v Vehicle) GetID() int { return v.ID }

// Fuels lists the accepted values for Vehicle.Fuel.
var Fuels = []string{"Gasolina", "Etanol", "Diesel", "Flex", "Gás Natural", "Elétrico", "Híbrido", "Outro"}

// VehicleLocation aggregates a vehicle with its most recent tracking point.
type VehicleLocation struct {
	VehicleID    int       `json:"vehicle_id"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	Manufacturer string    `json:"manufacturer"`
	LastTracking *Tracking `json:"last_tracking"`
	QueriedAt    string    `json:"queried_at"`
}
