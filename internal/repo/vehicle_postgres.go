package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresVehicleRepository struct {
	db *sql.DB
}

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{db: db}
}

const vehicleColumns = `id, plate, renavam, chassis, manufacturer, model, engine, year, fuel`

func scanVehicle(row rowScanner) (models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.Plate, &v.Renavam, &v.Chassis, &v.Manufacturer, &v.Model, &v.Engine, &v.Year, &v.Fuel)
	return v, err
}

func (r *PostgresVehicleRepository) queryVehicles(query string, args ...any) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PostgresVehicleRepository) queryVehicle(query string, args ...any) (models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, ErrNotFound
	}
	if err != nil {
		return models.Vehicle{}, translatePgError(err)
	}
	return v, nil
}

func (r *PostgresVehicleRepository) Create(v models.Vehicle) (models.Vehicle, error) {
	return r.queryVehicle(`INSERT INTO vehicles (plate, renavam, chassis, manufacturer, model, engine, year, fuel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+vehicleColumns,
		v.Plate, v.Renavam, v.Chassis, v.Manufacturer, v.Model, v.Engine, v.Year, v.Fuel)
}

func (r *PostgresVehicleRepository) GetAll() ([]models.Vehicle, error) {
	return r.queryVehicles(`SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`)
}

func (r *PostgresVehicleRepository) GetByID(id int) (models.Vehicle, error) {
	return r.queryVehicle(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
}

func (r *PostgresVehicleRepository) GetByPlate(plate string) (models.Vehicle, error) {
	return r.queryVehicle(`SELECT `+vehicleColumns+` FROM vehicles WHERE UPPER(plate) = UPPER($1)`, plate)
}

func (r *PostgresVehicleRepository) SearchByModel(model string) ([]models.Vehicle, error) {
	return r.queryVehicles(`SELECT `+vehicleColumns+` FROM vehicles WHERE model ILIKE $1 ORDER BY id`, "%"+model+"%")
}

func (r *PostgresVehicleRepository) Update(v models.Vehicle) (models.Vehicle, error) {
	return r.queryVehicle(`UPDATE vehicles SET plate = $1, renavam = $2, chassis = $3, manufacturer = $4, model = $5,
		engine = $6, year = $7, fuel = $8 WHERE id = $9 RETURNING `+vehicleColumns,
		v.Plate, v.Renavam, v.Chassis, v.Manufacturer, v.Model, v.Engine, v.Year, v.Fuel, v.ID)
}

func (r *PostgresVehicleRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
