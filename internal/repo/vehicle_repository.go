package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// VehicleRepository defines the interface for vehicle data operations.
type VehicleRepository interface {
	Create(vehicle models.Vehicle) (models.Vehicle, error)
	GetAll() ([]models.Vehicle, error)
	GetByID(id int) (models.Vehicle, error)
	GetByPlate(plate string) (models.Vehicle, error)
	SearchByModel(model string) ([]models.Vehicle, error)
	Update(vehicle models.Vehicle) (models.Vehicle, error)
	Delete(id int) error
}
