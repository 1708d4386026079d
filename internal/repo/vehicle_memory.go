package repo

import (
	"strings"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// InMemoryVehicleRepository is an in-memory implementation of VehicleRepository.
type InMemoryVehicleRepository struct {
	table *memoryTable[models.Vehicle]
}

func NewInMemoryVehicleRepository() *InMemoryVehicleRepository {
	return &InMemoryVehicleRepository{
		table: newMemoryTable(func(v *models.Vehicle, id int) { v.ID = id }),
	}
}

func samePlate(a, b string) bool {
	return strings.EqualFold(a, b)
}

func (r *InMemoryVehicleRepository) Create(vehicle models.Vehicle) (models.Vehicle, error) {
	return r.table.insert(vehicle, func(existing models.Vehicle) bool { return samePlate(existing.Plate, vehicle.Plate) })
}

func (r *InMemoryVehicleRepository) GetAll() ([]models.Vehicle, error) {
	return r.table.all(), nil
}

func (r *InMemoryVehicleRepository) GetByID(id int) (models.Vehicle, error) {
	return r.table.get(id)
}

func (r *InMemoryVehicleRepository) GetByPlate(plate string) (models.Vehicle, error) {
	found := r.table.find(func(v models.Vehicle) bool { return samePlate(v.Plate, plate) })
	if len(found) == 0 {
		return models.Vehicle{}, ErrNotFound
	}
	return found[0], nil
}

func (r *InMemoryVehicleRepository) SearchByModel(model string) ([]models.Vehicle, error) {
	return r.table.find(func(v models.Vehicle) bool { return containsFold(v.Model, model) }), nil
}

func (r *InMemoryVehicleRepository) Update(vehicle models.Vehicle) (models.Vehicle, error) {
	return r.table.replace(vehicle, func(existing models.Vehicle) bool { return samePlate(existing.Plate, vehicle.Plate) })
}

func (r *InMemoryVehicleRepository) Delete(id int) error {
	return r.table.remove(id)
}

func (r *InMemoryVehicleRepository) Clear() {
	r.table.clear()
}
