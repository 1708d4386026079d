package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresTrackingRepository struct {
	db *sql.DB
}

func NewPostgresTrackingRepository(db *sql.DB) *PostgresTrackingRepository {
	return &PostgresTrackingRepository{db: db}
}

const trackingColumns = `id, vehicle_id, ips_x, ips_y, ips_z, latitude, longitude, altitude, created_at`

const defaultLimit = 100

func scanTracking(row rowScanner) (models.Tracking, error) {
	var t models.Tracking
	var created time.Time
	if err := row.Scan(&t.ID, &t.VehicleID, &t.IPSX, &t.IPSY, &t.IPSZ, &t.Latitude, &t.Longitude, &t.Altitude, &created); err != nil {
		return models.Tracking{}, err
	}
	t.CreatedAt = created.UTC().Format(time.RFC3339)
	return t, nil
}

// Log inserts a new position reading
func (r *PostgresTrackingRepository) Log(t models.Tracking) (models.Tracking, error) {
	query := `INSERT INTO tracking (vehicle_id, ips_x, ips_y, ips_z, latitude, longitude, altitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + trackingColumns
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	created := time.Now().UTC()
	if t.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, t.CreatedAt)
		if err != nil {
			return models.Tracking{}, fmt.Errorf("invalid created_at: %w", err)
		}
		created = parsed
	}

	logged, err := scanTracking(r.db.QueryRowContext(ctx, query, t.VehicleID, t.IPSX, t.IPSY, t.IPSZ, t.Latitude, t.Longitude, t.Altitude, created))
	if err != nil {
		return models.Tracking{}, fmt.Errorf("failed to insert tracking: %w", err)
	}
	return logged, nil
}

// GetByVehicleID returns readings for a vehicle, newest first
func (r *PostgresTrackingRepository) GetByVehicleID(vehicleID int, tf TrackingFilter) ([]models.Tracking, int, error) {
	if tf.Offset != nil && *tf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	whereClause, args := buildTrackingWhere(vehicleID, tf)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}
	if tf.Offset != nil && *tf.Offset >= total {
		return []models.Tracking{}, total, nil
	}

	query := fmt.Sprintf("SELECT %s FROM tracking %s ORDER BY created_at DESC, id DESC", trackingColumns, whereClause)
	argIndex := len(args) + 1

	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *tf.Offset)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	readings := []models.Tracking{}
	for rows.Next() {
		t, err := scanTracking(rows)
		if err != nil {
			return nil, 0, err
		}
		readings = append(readings, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return readings, total, nil
}

func buildTrackingWhere(vehicleID int, tf TrackingFilter) (string, []any) {
	args := []any{vehicleID}
	whereClause := "WHERE vehicle_id = $1"
	argIndex := 2

	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *tf.Since)
		argIndex++
	}
	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *tf.Until)
	}
	return whereClause, args
}

func (r *PostgresTrackingRepository) getTotal(whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracking "+whereClause, args...).Scan(&total)
	return total, err
}

func (r *PostgresTrackingRepository) Latest(vehicleID int) (models.Tracking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	t, err := scanTracking(r.db.QueryRowContext(ctx,
		`SELECT `+trackingColumns+` FROM tracking WHERE vehicle_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracking{}, ErrNotFound
	}
	return t, err
}
