package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// ParkingRepository records which vehicle occupies which box.
type ParkingRepository interface {
	// Park fails with ErrDuplicatedValueUnique when the box or the vehicle is already taken.
	Park(p models.Parking) (models.Parking, error)
	Release(boxID int) error
	GetByBox(boxID int) (models.Parking, error)
	GetByVehicle(vehicleID int) (models.Parking, error)
	GetAll() ([]models.Parking, error)
}
