package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// TrackingRepository stores the position history of vehicles.
type TrackingRepository interface {
	Log(t models.Tracking) (models.Tracking, error)
	GetByVehicleID(vehicleID int, tf TrackingFilter) ([]models.Tracking, int, error)
	Latest(vehicleID int) (models.Tracking, error)
}
