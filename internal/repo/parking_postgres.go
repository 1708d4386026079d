package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresParkingRepository struct {
	db *sql.DB
}

func NewPostgresParkingRepository(db *sql.DB) *PostgresParkingRepository {
	return &PostgresParkingRepository{db: db}
}

const parkingColumns = `box_id, vehicle_id, parked_at`

func scanParking(row rowScanner) (models.Parking, error) {
	var p models.Parking
	var parked time.Time
	if err := row.Scan(&p.BoxID, &p.VehicleID, &parked); err != nil {
		return models.Parking{}, err
	}
	p.ParkedAt = parked.UTC().Format(time.RFC3339)
	return p, nil
}

func (r *PostgresParkingRepository) queryParking(query string, args ...any) (models.Parking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := scanParking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Parking{}, ErrNotFound
	}
	return p, err
}

// Park relies on the primary key and the unique vehicle column to reject a taken box or vehicle.
func (r *PostgresParkingRepository) Park(p models.Parking) (models.Parking, error) {
	parked, err := r.queryParking(`INSERT INTO parking (box_id, vehicle_id) VALUES ($1, $2) RETURNING `+parkingColumns, p.BoxID, p.VehicleID)
	if err != nil {
		return models.Parking{}, fmt.Errorf("failed to park vehicle: %w", translatePgError(err))
	}
	return parked, nil
}

func (r *PostgresParkingRepository) Release(boxID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM parking WHERE box_id = $1`, boxID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresParkingRepository) GetByBox(boxID int) (models.Parking, error) {
	return r.queryParking(`SELECT `+parkingColumns+` FROM parking WHERE box_id = $1`, boxID)
}

func (r *PostgresParkingRepository) GetByVehicle(vehicleID int) (models.Parking, error) {
	return r.queryParking(`SELECT `+parkingColumns+` FROM parking WHERE vehicle_id = $1`, vehicleID)
}

func (r *PostgresParkingRepository) GetAll() ([]models.Parking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+parkingColumns+` FROM parking ORDER BY box_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Parking{}
	for rows.Next() {
		p, err := scanParking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
