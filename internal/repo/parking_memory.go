package repo

import (
	"cmp"
	"slices"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// InMemoryParkingRepository keys rows by box id.
type InMemoryParkingRepository struct {
	table *memoryTable[models.Parking]
	now   func() time.Time
}

func NewInMemoryParkingRepository() *InMemoryParkingRepository {
	return &InMemoryParkingRepository{
		table: newMemoryTable(func(*models.Parking, int) {}),
		now:   time.Now,
	}
}

func (r *InMemoryParkingRepository) Park(p models.Parking) (models.Parking, error) {
	p.ParkedAt = r.now().UTC().Format(time.RFC3339)
	return r.table.insert(p, func(e models.Parking) bool {
		return e.BoxID == p.BoxID || e.VehicleID == p.VehicleID
	})
}

func (r *InMemoryParkingRepository) Release(boxID int) error {
	return r.table.remove(boxID)
}

func (r *InMemoryParkingRepository) GetByBox(boxID int) (models.Parking, error) {
	return r.table.get(boxID)
}

func (r *InMemoryParkingRepository) GetByVehicle(vehicleID int) (models.Parking, error) {
	found := r.table.find(func(p models.Parking) bool { return p.VehicleID == vehicleID })
	if len(found) == 0 {
		return models.Parking{}, ErrNotFound
	}
	return found[0], nil
}

// GetAll returns every occupied box ordered by box id.
func (r *InMemoryParkingRepository) GetAll() ([]models.Parking, error) {
	rows := r.table.all()
	slices.SortFunc(rows, func(a, b models.Parking) int { return cmp.Compare(a.BoxID, b.BoxID) })
	return rows, nil
}
