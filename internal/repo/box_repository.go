package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// BoxRepository defines the interface for box data operations.
type BoxRepository interface {
	Create(box models.Box) (models.Box, error)
	GetAll() ([]models.Box, error)
	GetByID(id int) (models.Box, error)
	SearchByName(name string) ([]models.Box, error)
	GetByStatus(active bool) ([]models.Box, error)
	Update(box models.Box) (models.Box, error)
	Delete(id int) error
}
