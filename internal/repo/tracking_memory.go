package repo

import (
	"slices"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type InMemoryTrackingRepository struct {
	table *memoryTable[models.Tracking]
	now   func() time.Time
}

func NewInMemoryTrackingRepository() *InMemoryTrackingRepository {
	return &InMemoryTrackingRepository{
		table: newMemoryTable(func(t *models.Tracking, id int) { t.ID = id }),
		now:   time.Now,
	}
}

// Log stores a position reading. An empty CreatedAt is stamped with the current time.
func (r *InMemoryTrackingRepository) Log(t models.Tracking) (models.Tracking, error) {
	if t.CreatedAt == "" {
		t.CreatedAt = r.now().UTC().Format(time.RFC3339)
	}
	return r.table.insert(t, nil)
}

// GetByVehicleID returns readings for a vehicle, newest first, optionally
// bounded by date range and paginated.
func (r *InMemoryTrackingRepository) GetByVehicleID(vehicleID int, tf TrackingFilter) ([]models.Tracking, int, error) {
	filtered := r.table.find(func(t models.Tracking) bool {
		if t.VehicleID != vehicleID {
			return false
		}
		if tf.Since != nil && t.CreatedAt < tf.Since.UTC().Format(time.RFC3339) {
			return false
		}
		if tf.Until != nil && t.CreatedAt > tf.Until.UTC().Format(time.RFC3339) {
			return false
		}
		return true
	})
	slices.Reverse(filtered)

	return window(filtered, tf.Offset, tf.Limit), len(filtered), nil
}

func (r *InMemoryTrackingRepository) Latest(vehicleID int) (models.Tracking, error) {
	found := r.table.find(func(t models.Tracking) bool { return t.VehicleID == vehicleID })
	if len(found) == 0 {
		return models.Tracking{}, ErrNotFound
	}
	return found[len(found)-1], nil
}

func (r *InMemoryTrackingRepository) Count() int {
	return r.table.len()
}

// CountByVehicle returns the number of readings per vehicle id.
func (r *InMemoryTrackingRepository) CountByVehicle() map[int]int {
	counts := map[int]int{}
	for _, t := range r.table.all() {
		counts[t.VehicleID]++
	}
	return counts
}
