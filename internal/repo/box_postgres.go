package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type PostgresBoxRepository struct {
	db *sql.DB
}

func NewPostgresBoxRepository(db *sql.DB) *PostgresBoxRepository {
	return &PostgresBoxRepository{db: db}
}

const boxColumns = `id, name, active, entry_date, exit_date, notes`

func scanBox(row rowScanner) (models.Box, error) {
	var b models.Box
	var entry, exit time.Time
	if err := row.Scan(&b.ID, &b.Name, &b.Active, &entry, &exit, &b.Notes); err != nil {
		return models.Box{}, err
	}
	b.EntryDate = entry.Format(dateLayout)
	b.ExitDate = exit.Format(dateLayout)
	return b, nil
}

func (r *PostgresBoxRepository) queryBoxes(query string, args ...any) ([]models.Box, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boxes := []models.Box{}
	for rows.Next() {
		b, err := scanBox(rows)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}

func (r *PostgresBoxRepository) queryBox(query string, args ...any) (models.Box, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	b, err := scanBox(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Box{}, ErrNotFound
	}
	return b, err
}

func (r *PostgresBoxRepository) Create(b models.Box) (models.Box, error) {
	return r.queryBox(`INSERT INTO boxes (name, active, entry_date, exit_date, notes) VALUES ($1, $2, $3, $4, $5) RETURNING `+boxColumns,
		b.Name, b.Active, b.EntryDate, b.ExitDate, b.Notes)
}

func (r *PostgresBoxRepository) GetAll() ([]models.Box, error) {
	return r.queryBoxes(`SELECT ` + boxColumns + ` FROM boxes ORDER BY id`)
}

func (r *PostgresBoxRepository) GetByID(id int) (models.Box, error) {
	return r.queryBox(`SELECT `+boxColumns+` FROM boxes WHERE id = $1`, id)
}

func (r *PostgresBoxRepository) SearchByName(name string) ([]models.Box, error) {
	return r.queryBoxes(`SELECT `+boxColumns+` FROM boxes WHERE name ILIKE $1 ORDER BY id`, "%"+name+"%")
}

func (r *PostgresBoxRepository) GetByStatus(active bool) ([]models.Box, error) {
	return r.queryBoxes(`SELECT `+boxColumns+` FROM boxes WHERE active = $1 ORDER BY id`, active)
}

func (r *PostgresBoxRepository) Update(b models.Box) (models.Box, error) {
	return r.queryBox(`UPDATE boxes SET name = $1, active = $2, entry_date = $3, exit_date = $4, notes = $5 WHERE id = $6 RETURNING `+boxColumns,
		b.Name, b.Active, b.EntryDate, b.ExitDate, b.Notes, b.ID)
}

func (r *PostgresBoxRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM boxes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
