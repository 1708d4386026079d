package repo

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var m Metrics

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM vehicles),
			(SELECT COUNT(*) FROM yards),
			(SELECT COUNT(*) FROM zones),
			(SELECT COUNT(*) FROM boxes),
			(SELECT COUNT(*) FROM boxes WHERE active),
			(SELECT COUNT(*) FROM tracking)
	`).Scan(&m.TotalClients, &m.TotalVehicles, &m.TotalYards, &m.TotalZones, &m.TotalBoxes, &m.ActiveBoxes, &m.TotalTrackings)
	if err != nil {
		return Metrics{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT v.plate, COUNT(*) AS cnt
		FROM tracking t
		JOIN vehicles v ON t.vehicle_id = v.id
		GROUP BY v.plate
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostTrackedVehicle.Plate, &m.MostTrackedVehicle.TrackingCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Metrics{}, err
	}

	return m, nil
}
