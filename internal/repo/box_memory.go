package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

type InMemoryBoxRepository struct {
	table *memoryTable[models.Box]
}

func NewInMemoryBoxRepository() *InMemoryBoxRepository {
	return &InMemoryBoxRepository{
		table: newMemoryTable(func(b *models.Box, id int) { b.ID = id }),
	}
}

func (r *InMemoryBoxRepository) Create(box models.Box) (models.Box, error) {
	return r.table.insert(box, nil)
}

func (r *InMemoryBoxRepository) GetAll() ([]models.Box, error) {
	return r.table.all(), nil
}

func (r *InMemoryBoxRepository) GetByID(id int) (models.Box, error) {
	return r.table.get(id)
}

func (r *InMemoryBoxRepository) SearchByName(name string) ([]models.Box, error) {
	return r.table.find(func(b models.Box) bool { return containsFold(b.Name, name) }), nil
}

func (r *InMemoryBoxRepository) GetByStatus(active bool) ([]models.Box, error) {
	return r.table.find(func(b models.Box) bool { return b.Active == active }), nil
}

func (r *InMemoryBoxRepository) Update(box models.Box) (models.Box, error) {
	return r.table.replace(box, nil)
}

func (r *InMemoryBoxRepository) Delete(id int) error {
	return r.table.remove(id)
}
