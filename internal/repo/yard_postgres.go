package repo

import (
	"database/sql"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresYardRepository struct {
	t datedTable
}

func NewPostgresYardRepository(db *sql.DB) *PostgresYardRepository {
	return &PostgresYardRepository{t: datedTable{db: db, table: "yards"}}
}

func toYard(d datedRow) models.Yard {
	return models.Yard{ID: d.ID, Name: d.Name, EntryDate: d.EntryDate, ExitDate: d.ExitDate, Notes: d.Notes}
}

func fromYard(y models.Yard) datedRow {
	return datedRow{ID: y.ID, Name: y.Name, EntryDate: y.EntryDate, ExitDate: y.ExitDate, Notes: y.Notes}
}

func (r *PostgresYardRepository) Create(y models.Yard) (models.Yard, error) {
	d, err := r.t.create(fromYard(y))
	return toYard(d), err
}

func (r *PostgresYardRepository) GetAll() ([]models.Yard, error) {
	return mapRows(toYard)(r.t.list(""))
}

func (r *PostgresYardRepository) GetByID(id int) (models.Yard, error) {
	d, err := r.t.get(id)
	return toYard(d), err
}

func (r *PostgresYardRepository) SearchByName(name string) ([]models.Yard, error) {
	return mapRows(toYard)(r.t.searchByName(name))
}

func (r *PostgresYardRepository) GetByDate(date string, kind DateKind) ([]models.Yard, error) {
	return mapRows(toYard)(r.t.byDate(date, kind))
}

func (r *PostgresYardRepository) Update(y models.Yard) (models.Yard, error) {
	d, err := r.t.update(fromYard(y))
	return toYard(d), err
}

func (r *PostgresYardRepository) Delete(id int) error {
	return r.t.delete(id)
}
