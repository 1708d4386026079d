package repo

import (
	"database/sql"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresZoneRepository struct {
	t datedTable
}

func NewPostgresZoneRepository(db *sql.DB) *PostgresZoneRepository {
	return &PostgresZoneRepository{t: datedTable{db: db, table: "zones"}}
}

func toZone(d datedRow) models.Zone {
	return models.Zone{ID: d.ID, Name: d.Name, EntryDate: d.EntryDate, ExitDate: d.ExitDate, Notes: d.Notes}
}

func fromZone(z models.Zone) datedRow {
	return datedRow{ID: z.ID, Name: z.Name, EntryDate: z.EntryDate, ExitDate: z.ExitDate, Notes: z.Notes}
}

func (r *PostgresZoneRepository) Create(z models.Zone) (models.Zone, error) {
	d, err := r.t.create(fromZone(z))
	return toZone(d), err
}

func (r *PostgresZoneRepository) GetAll() ([]models.Zone, error) {
	return mapRows(toZone)(r.t.list(""))
}

func (r *PostgresZoneRepository) GetByID(id int) (models.Zone, error) {
	d, err := r.t.get(id)
	return toZone(d), err
}

func (r *PostgresZoneRepository) SearchByName(name string) ([]models.Zone, error) {
	return mapRows(toZone)(r.t.searchByName(name))
}

func (r *PostgresZoneRepository) GetByDate(date string, kind DateKind) ([]models.Zone, error) {
	return mapRows(toZone)(r.t.byDate(date, kind))
}

func (r *PostgresZoneRepository) Update(z models.Zone) (models.Zone, error) {
	d, err := r.t.update(fromZone(z))
	return toZone(d), err
}

func (r *PostgresZoneRepository) Delete(id int) error {
	return r.t.delete(id)
}
