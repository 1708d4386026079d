package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// YardRepository defines the interface for yard data operations.
type YardRepository interface {
	Create(yard models.Yard) (models.Yard, error)
	GetAll() ([]models.Yard, error)
	GetByID(id int) (models.Yard, error)
	SearchByName(name string) ([]models.Yard, error)
	GetByDate(date string, kind DateKind) ([]models.Yard, error)
	Update(yard models.Yard) (models.Yard, error)
	Delete(id int) error
}

// ZoneRepository defines the interface for zone data operations.
type ZoneRepository interface {
	Create(zone models.Zone) (models.Zone, error)
	GetAll() ([]models.Zone, error)
	GetByID(id int) (models.Zone, error)
	SearchByName(name string) ([]models.Zone, error)
	GetByDate(date string, kind DateKind) ([]models.Zone, error)
	Update(zone models.Zone) (models.Zone, error)
	Delete(id int) error
}
