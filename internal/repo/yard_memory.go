package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

type InMemoryYardRepository struct {
	table *memoryTable[models.Yard]
}

func NewInMemoryYardRepository() *InMemoryYardRepository {
	return &InMemoryYardRepository{
		table: newMemoryTable(func(y *models.Yard, id int) { y.ID = id }),
	}
}

func (r *InMemoryYardRepository) Create(yard models.Yard) (models.Yard, error) {
	return r.table.insert(yard, nil)
}

func (r *InMemoryYardRepository) GetAll() ([]models.Yard, error) {
	return r.table.all(), nil
}

func (r *InMemoryYardRepository) GetByID(id int) (models.Yard, error) {
	return r.table.get(id)
}

func (r *InMemoryYardRepository) SearchByName(name string) ([]models.Yard, error) {
	return r.table.find(func(y models.Yard) bool { return containsFold(y.Name, name) }), nil
}

func (r *InMemoryYardRepository) GetByDate(date string, kind DateKind) ([]models.Yard, error) {
	return r.table.find(func(y models.Yard) bool { return onDate(y.EntryDate, y.ExitDate, date, kind) }), nil
}

func (r *InMemoryYardRepository) Update(yard models.Yard) (models.Yard, error) {
	return r.table.replace(yard, nil)
}

func (r *InMemoryYardRepository) Delete(id int) error {
	return r.table.remove(id)
}

type InMemoryZoneRepository struct {
	table *memoryTable[models.Zone]
}

func NewInMemoryZoneRepository() *InMemoryZoneRepository {
	return &InMemoryZoneRepository{
		table: newMemoryTable(func(z *models.Zone, id int) { z.ID = id }),
	}
}

func (r *InMemoryZoneRepository) Create(zone models.Zone) (models.Zone, error) {
	return r.table.insert(zone, nil)
}

func (r *InMemoryZoneRepository) GetAll() ([]models.Zone, error) {
	return r.table.all(), nil
}

func (r *InMemoryZoneRepository) GetByID(id int) (models.Zone, error) {
	return r.table.get(id)
}

func (r *InMemoryZoneRepository) SearchByName(name string) ([]models.Zone, error) {
	return r.table.find(func(z models.Zone) bool { return containsFold(z.Name, name) }), nil
}

func (r *InMemoryZoneRepository) GetByDate(date string, kind DateKind) ([]models.Zone, error) {
	return r.table.find(func(z models.Zone) bool { return onDate(z.EntryDate, z.ExitDate, date, kind) }), nil
}

func (r *InMemoryZoneRepository) Update(zone models.Zone) (models.Zone, error) {
	return r.table.replace(zone, nil)
}

func (r *InMemoryZoneRepository) Delete(id int) error {
	return r.table.remove(id)
}
